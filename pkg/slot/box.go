package slot

// Box is an optional-value container built on one [Slot].
//
// It reuses a single storage cell across many held values over time
// without any tolerance for stale access: every Put ends the previous
// occupant's construction, so handles minted before it fail with
// [ErrStaleHandle] rather than observing the replacement.
//
// Unlike Slot, Box tracks liveness itself, so its operations report
// absence with a bool instead of an error.
//
// The zero value is an empty Box.
type Box[T any] struct {
	slot Slot[T]
}

// Put stores v, replacing any previous occupant, and returns a handle
// bound to the new occupant.
func (b *Box[T]) Put(v T) Handle[T] {
	if b.slot.Live() {
		err := b.slot.Destroy()
		if err != nil {
			panic("slot: box invariant broken: " + err.Error())
		}
	}

	h, err := b.slot.Construct(v)
	if err != nil {
		panic("slot: box invariant broken: " + err.Error())
	}

	return h
}

// Get returns a copy of the held value, if any.
func (b *Box[T]) Get() (T, bool) {
	h, err := b.slot.Access()
	if err != nil {
		var zero T

		return zero, false
	}

	v, err := h.Value()
	if err != nil {
		panic("slot: box invariant broken: " + err.Error())
	}

	return v, true
}

// Take removes and returns the held value. Returns false if the box was
// already empty.
func (b *Box[T]) Take() (T, bool) {
	v, ok := b.Get()
	if !ok {
		var zero T

		return zero, false
	}

	err := b.slot.Destroy()
	if err != nil {
		panic("slot: box invariant broken: " + err.Error())
	}

	return v, true
}

// Clear removes the held value, if any, and reports whether one existed.
func (b *Box[T]) Clear() bool {
	if !b.slot.Live() {
		return false
	}

	err := b.slot.Destroy()
	if err != nil {
		panic("slot: box invariant broken: " + err.Error())
	}

	return true
}

// Handle returns a fresh handle to the held value, if any.
func (b *Box[T]) Handle() (Handle[T], bool) {
	h, err := b.slot.Access()
	if err != nil {
		return Handle[T]{}, false
	}

	return h, true
}

// Live reports whether the box holds a value.
func (b *Box[T]) Live() bool {
	return b.slot.Live()
}
