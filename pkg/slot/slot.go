package slot

// Slot is a fixed storage cell holding at most one live value of type T.
//
// A Slot is created empty. [Slot.Construct] places a value into the cell,
// [Slot.Destroy] removes it, and the cell may be reused for any number of
// construct/destroy cycles. The slot exclusively owns the occupant; the
// caller owns state tracking and must not assume a handle minted for one
// construction says anything about a later one.
//
// Each construction is identified by a generation number. Handles capture
// the generation they were minted under and every dereference re-checks
// it, so a handle can never observe an occupant it was not minted for.
//
// The zero value is a valid empty slot without a finalizer.
//
// A Slot must not be copied after first use: handles identify their slot
// by address.
type Slot[T any] struct {
	val       T
	finalizer func(*T)
	gen       uint64
	live      bool
}

// New returns an empty slot.
func New[T any]() *Slot[T] {
	return &Slot[T]{}
}

// NewWithFinalizer returns an empty slot whose occupants are torn down
// with fn. Destroy calls fn with the occupant before the slot transitions
// to empty. Panics if fn is nil.
func NewWithFinalizer[T any](fn func(*T)) *Slot[T] {
	if fn == nil {
		panic("fn is nil")
	}

	return &Slot[T]{finalizer: fn}
}

// Construct places v into the slot and returns a handle bound to this
// construction.
//
// Returns [ErrOccupied] if a value is already live; the existing occupant
// is left untouched.
func (s *Slot[T]) Construct(v T) (Handle[T], error) {
	if s.live {
		return Handle[T]{}, ErrOccupied
	}

	s.gen++
	s.val = v
	s.live = true

	return Handle[T]{slot: s, gen: s.gen}, nil
}

// Access returns a fresh handle to the current occupant, derived from the
// slot at call time.
//
// Returns [ErrEmpty] if no value is live.
func (s *Slot[T]) Access() (Handle[T], error) {
	if !s.live {
		return Handle[T]{}, ErrEmpty
	}

	return Handle[T]{slot: s, gen: s.gen}, nil
}

// Destroy tears down the current occupant and transitions the slot to
// empty. If the slot has a finalizer, it runs with the occupant before
// the transition. All handles minted for this construction become stale.
//
// Returns [ErrEmpty] if no value is live.
func (s *Slot[T]) Destroy() error {
	if !s.live {
		return ErrEmpty
	}

	if s.finalizer != nil {
		s.finalizer(&s.val)
	}

	s.live = false

	// Drop references held by the old occupant so it can be collected.
	var zero T
	s.val = zero

	return nil
}

// Revalidate exchanges a possibly stale handle for a fresh handle to the
// slot's current occupant.
//
// This is the explicit re-derivation step: the returned handle observes
// the occupant live now, regardless of which construction h was minted
// for. Returns [ErrEmpty] if no value is live, or [ErrForeignHandle] if h
// was minted by a different slot.
func (s *Slot[T]) Revalidate(h Handle[T]) (Handle[T], error) {
	if h.slot != s {
		return Handle[T]{}, ErrForeignHandle
	}

	return s.Access()
}

// Live reports whether a value currently occupies the slot.
func (s *Slot[T]) Live() bool {
	return s.live
}

// Generation returns the construction counter. It starts at zero for an
// untouched slot and increments on every Construct.
func (s *Slot[T]) Generation() uint64 {
	return s.gen
}

// occupant is the single resolution path for occupant access. Both the
// read-only entry point (Handle.Value) and the mutable one (Handle.Update)
// delegate here so the state and generation checks exist exactly once.
func (s *Slot[T]) occupant(gen uint64) (*T, error) {
	if !s.live || s.gen != gen {
		return nil, ErrStaleHandle
	}

	return &s.val, nil
}
