package slot

import "errors"

// Sentinel errors returned by slot operations.
//
// All of them indicate precondition violations by the caller. Callers
// should use [errors.Is] to check error types:
//
//	if errors.Is(err, slot.ErrStaleHandle) {
//	    h, err = s.Access() // re-derive a fresh handle
//	}
var (
	// ErrOccupied indicates Construct was called while a value is live.
	//
	// The existing occupant is left untouched.
	//
	// This is a programming error: the owner lost track of the slot state.
	// Recovery: Destroy the current occupant first.
	ErrOccupied = errors.New("slot: occupied")

	// ErrEmpty indicates Access, Destroy or Revalidate was called while
	// no value is live.
	//
	// This is a programming error: the owner lost track of the slot state.
	// Recovery: Construct a value first.
	ErrEmpty = errors.New("slot: empty")

	// ErrStaleHandle indicates a dereference through a handle whose
	// construction has ended.
	//
	// A handle is valid only for the occupant it was minted for. After a
	// Destroy, every read or write through the old handle fails with this
	// error, even if a new occupant has since been constructed at the
	// same slot.
	//
	// Recovery: obtain a fresh handle via [Slot.Access], or exchange the
	// stale one via [Slot.Revalidate].
	ErrStaleHandle = errors.New("slot: stale handle")

	// ErrForeignHandle indicates Revalidate was called with a handle that
	// was minted by a different slot.
	//
	// This is a programming error.
	ErrForeignHandle = errors.New("slot: foreign handle")
)
