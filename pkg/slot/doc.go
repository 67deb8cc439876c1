// Package slot provides a single-occupant typed storage cell with an
// explicit construct/destroy lifecycle.
//
// A [Slot] holds zero or one live value of its type parameter. The slot is
// created empty, transitions to live via [Slot.Construct], back to empty
// via [Slot.Destroy], and may cycle between the two states arbitrarily
// many times. Reads and writes go through a [Handle] whose validity is
// scoped to exactly one construction: once the occupant it was minted for
// is destroyed, the handle is stale and every dereference fails with
// [ErrStaleHandle], even if a new occupant has since been constructed.
//
// # Basic Usage
//
//	s := slot.New[Player]()
//
//	h, err := s.Construct(Player{ID: 1, Health: 2})
//	if err != nil {
//	    // ErrOccupied: a value is already live
//	}
//
//	v, _ := h.Value() // Player{ID: 1, Health: 2}
//
//	_ = s.Destroy()
//	_, _ = s.Construct(Player{ID: 2, Health: 3})
//
//	_, err = h.Value() // ErrStaleHandle: h predates the current occupant
//
//	h2, _ := s.Access() // fresh handle, observes Player{ID: 2, Health: 3}
//
// # Handle Revalidation
//
// A stale handle can be exchanged for a fresh one against the current
// occupant with [Slot.Revalidate] (or [Handle.Refresh]). This is the
// explicit re-derivation step: identity is never carried over from an
// earlier construction, it is always re-established against the slot.
//
// # Error Handling
//
// All errors are precondition violations and therefore programming
// errors: [ErrOccupied], [ErrEmpty], [ErrStaleHandle], [ErrForeignHandle].
// They are reported immediately and unconditionally; no operation
// silently tolerates a violated precondition. Check them with [errors.Is].
//
// # Concurrency
//
// A Slot carries no concurrency guarantees. One slot has one owner; if a
// slot is shared across goroutines, the owner must serialize all
// Construct/Access/Destroy calls externally (for example with one
// exclusive lock per slot).
package slot
