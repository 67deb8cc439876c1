package slot

// Handle is an accessor bound to exactly one construction of one slot.
//
// Handles are cheap value types and may be copied freely. A handle stays
// valid until the construction it was minted for ends: after the next
// [Slot.Destroy], every dereference returns [ErrStaleHandle], even if a
// new occupant has since been constructed. Use [Handle.Refresh] or
// [Slot.Access] to obtain a handle to the current occupant.
//
// The zero Handle is permanently stale.
type Handle[T any] struct {
	slot *Slot[T]
	gen  uint64
}

// Value returns a copy of the occupant this handle was minted for.
//
// Returns [ErrStaleHandle] if the construction has ended.
func (h Handle[T]) Value() (T, error) {
	p, err := h.resolve()
	if err != nil {
		var zero T

		return zero, err
	}

	return *p, nil
}

// Update applies fn to the occupant in place. Panics if fn is nil.
//
// Returns [ErrStaleHandle] if the construction has ended; fn does not run.
func (h Handle[T]) Update(fn func(*T)) error {
	if fn == nil {
		panic("fn is nil")
	}

	p, err := h.resolve()
	if err != nil {
		return err
	}

	fn(p)

	return nil
}

// Valid reports whether the handle still refers to the live occupant.
func (h Handle[T]) Valid() bool {
	_, err := h.resolve()

	return err == nil
}

// Generation returns the construction this handle was minted for.
// Zero for the zero Handle.
func (h Handle[T]) Generation() uint64 {
	return h.gen
}

// Refresh exchanges the handle for a fresh one against the current
// occupant of the same slot. See [Slot.Revalidate].
//
// Returns [ErrForeignHandle] for the zero Handle.
func (h Handle[T]) Refresh() (Handle[T], error) {
	if h.slot == nil {
		return Handle[T]{}, ErrForeignHandle
	}

	return h.slot.Revalidate(h)
}

// resolve derives a pointer to the occupant, enforcing that the handle's
// construction is still the live one. Read and write paths share this.
func (h Handle[T]) resolve() (*T, error) {
	if h.slot == nil {
		return nil, ErrStaleHandle
	}

	return h.slot.occupant(h.gen)
}
