package cli

import (
	"errors"
	"fmt"

	"github.com/calvinalkan/memslot/pkg/slot"
)

// Record is the payload type slotctl operates on.
type Record struct {
	ID     int64
	Health int64
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Index  int
	Op     Op
	Pass   bool
	Detail string
}

// RunResult is the outcome of a whole scenario run.
type RunResult struct {
	Scenario string
	Steps    []StepResult
	Failed   int
}

// Passed reports whether every step passed.
func (r RunResult) Passed() bool {
	return r.Failed == 0
}

// RunScenario executes the scenario against a fresh slot.
//
// A "retain" step saves a fresh handle; later "stale" and "refresh" steps
// operate on that saved handle. A destroy (or destroy/construct cycle)
// between the retain and the stale step is what makes the stale step
// meaningful. Before the first retain, the saved handle is the zero
// handle, which is permanently stale.
func RunScenario(scenario Scenario) RunResult {
	result := RunResult{Scenario: scenario.Name}

	s := slot.New[Record]()

	var retained slot.Handle[Record]

	for i, op := range scenario.Ops {
		step := StepResult{Index: i, Op: op, Pass: true}

		switch op.Op {
		case "construct":
			_, err := s.Construct(Record{ID: op.ID, Health: op.Health})
			checkErr(&step, err, op.WantErr)

		case "retain":
			h, err := s.Access()
			if err == nil {
				retained = h
			}

			checkErr(&step, err, op.WantErr)

		case "destroy":
			checkErr(&step, s.Destroy(), op.WantErr)

		case "expect":
			h, err := s.Access()
			if checkErr(&step, err, op.WantErr) && err == nil {
				v, readErr := h.Value()
				if readErr != nil {
					fail(&step, fmt.Sprintf("fresh handle failed to read: %v", readErr))
				} else {
					checkValue(&step, v, op)
				}
			}

		case "stale":
			v, err := retained.Value()
			if checkErr(&step, err, op.WantErr) && err == nil {
				checkValue(&step, v, op)
			}

		case "refresh":
			fresh, err := retained.Refresh()
			if checkErr(&step, err, op.WantErr) && err == nil {
				retained = fresh

				v, readErr := fresh.Value()
				if readErr != nil {
					fail(&step, fmt.Sprintf("refreshed handle failed to read: %v", readErr))
				} else {
					checkValue(&step, v, op)
				}
			}

		default:
			// Unreachable for scenarios that went through validation.
			fail(&step, fmt.Sprintf("unknown op %q", op.Op))
		}

		if !step.Pass {
			result.Failed++
		}

		result.Steps = append(result.Steps, step)
	}

	return result
}

// errSentinelName maps slot sentinels to the names used in scenario files.
func errSentinelName(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, slot.ErrOccupied):
		return "occupied"
	case errors.Is(err, slot.ErrEmpty):
		return "empty"
	case errors.Is(err, slot.ErrStaleHandle):
		return "stale"
	case errors.Is(err, slot.ErrForeignHandle):
		return "foreign"
	default:
		return err.Error()
	}
}

// checkErr compares an operation error against the step expectation.
// Returns true if the step is still passing afterwards.
func checkErr(step *StepResult, err error, wantErr string) bool {
	got := errSentinelName(err)
	if got == wantErr {
		return true
	}

	want := wantErr
	if want == "" {
		want = "success"
	}

	if got == "" {
		got = "success"
	}

	fail(step, fmt.Sprintf("want %s, got %s", want, got))

	return false
}

func checkValue(step *StepResult, v Record, op Op) {
	if v.ID != op.ID || v.Health != op.Health {
		fail(step, fmt.Sprintf("want {id:%d health:%d}, got {id:%d health:%d}",
			op.ID, op.Health, v.ID, v.Health))
	}
}

func fail(step *StepResult, detail string) {
	step.Pass = false
	step.Detail = detail
}
