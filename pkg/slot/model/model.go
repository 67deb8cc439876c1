// Package model provides a deliberately simple, in-memory state model of
// the slot package's publicly observable behavior.
//
// The model is intentionally easy to audit: it favors clarity over
// performance and does not share any code with the real implementation.
// Sequence tests drive the real slot and this model with the same
// operation list and compare every observation.
package model

import "github.com/calvinalkan/memslot/pkg/slot"

// SlotState is the observable state of a single slot.
//
// Value is held as `any` so the model stays independent of the type
// parameter used by the system under test.
type SlotState struct {
	Value      any
	Generation uint64
	IsLive     bool
}

// HandleState mirrors a handle minted by Construct or Access.
//
// Minted distinguishes real handles from the zero handle, which is
// permanently stale.
type HandleState struct {
	Generation uint64
	Minted     bool
}

// NewSlot returns the model of an empty slot.
func NewSlot() *SlotState {
	return &SlotState{}
}

// Clone makes a copy so metamorphic tests can fork the exact same state.
func (s *SlotState) Clone() *SlotState {
	if s == nil {
		return nil
	}

	clone := *s

	return &clone
}

// Construct places v into the slot if it is empty.
func (s *SlotState) Construct(v any) (HandleState, error) {
	if s.IsLive {
		return HandleState{}, slot.ErrOccupied
	}

	s.Generation++
	s.Value = v
	s.IsLive = true

	return HandleState{Generation: s.Generation, Minted: true}, nil
}

// Access mints a fresh handle for the live occupant.
func (s *SlotState) Access() (HandleState, error) {
	if !s.IsLive {
		return HandleState{}, slot.ErrEmpty
	}

	return HandleState{Generation: s.Generation, Minted: true}, nil
}

// Destroy removes the live occupant.
func (s *SlotState) Destroy() error {
	if !s.IsLive {
		return slot.ErrEmpty
	}

	s.IsLive = false
	s.Value = nil

	return nil
}

// Revalidate exchanges any handle minted by this slot for a fresh one.
func (s *SlotState) Revalidate(h HandleState) (HandleState, error) {
	if !h.Minted {
		return HandleState{}, slot.ErrForeignHandle
	}

	return s.Access()
}

// Read returns the value observable through h.
//
// A handle observes a value only while its construction is the live one.
func (s *SlotState) Read(h HandleState) (any, error) {
	if !h.Minted || !s.IsLive || h.Generation != s.Generation {
		return nil, slot.ErrStaleHandle
	}

	return s.Value, nil
}

// Write replaces the value observable through h.
func (s *SlotState) Write(h HandleState, v any) error {
	_, err := s.Read(h)
	if err != nil {
		return err
	}

	s.Value = v

	return nil
}
