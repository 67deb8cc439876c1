package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Scenario errors.
var (
	ErrScenarioNotFound = errors.New("scenario file not found")
	ErrScenarioInvalid  = errors.New("invalid scenario file")
)

// Scenario describes a scripted operation sequence run against one slot.
//
// Scenario files are JSONC: comments and trailing commas are allowed and
// stripped before decoding.
type Scenario struct {
	Name string `json:"name"`
	Ops  []Op   `json:"ops"`
}

// Op is a single scripted step.
//
// Kinds:
//   - "construct": place {id, health} into the slot
//   - "destroy":   tear down the occupant
//   - "expect":    freshly access the slot and compare {id, health}
//   - "retain":    save a fresh handle for later stale/refresh steps
//   - "stale":     read through the saved handle
//   - "refresh":   revalidate the saved handle and compare {id, health}
//
// WantErr names the sentinel the step must fail with: "occupied",
// "empty", "stale" or "foreign". Empty means the step must succeed.
type Op struct {
	Op      string `json:"op"`
	ID      int64  `json:"id,omitempty"`
	Health  int64  `json:"health,omitempty"`
	WantErr string `json:"want_err,omitempty"`
}

var validOps = map[string]bool{
	"construct": true,
	"destroy":   true,
	"expect":    true,
	"retain":    true,
	"stale":     true,
	"refresh":   true,
}

var validWantErrs = map[string]bool{
	"":         true,
	"occupied": true,
	"empty":    true,
	"stale":    true,
	"foreign":  true,
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return Scenario{}, fmt.Errorf("%w: %s", ErrScenarioNotFound, path)
		}

		return Scenario{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	scenario, parseErr := ParseScenario(data)
	if parseErr != nil {
		return Scenario{}, fmt.Errorf("%w %s: %w", ErrScenarioInvalid, path, parseErr)
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario JSONC.
func ParseScenario(data []byte) (Scenario, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var scenario Scenario

	unmarshalErr := json.Unmarshal(standardized, &scenario)
	if unmarshalErr != nil {
		return Scenario{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	validateErr := validateScenario(scenario)
	if validateErr != nil {
		return Scenario{}, validateErr
	}

	return scenario, nil
}

func validateScenario(scenario Scenario) error {
	if scenario.Name == "" {
		return errors.New("name is required")
	}

	if len(scenario.Ops) == 0 {
		return errors.New("ops must not be empty")
	}

	for i, op := range scenario.Ops {
		if !validOps[op.Op] {
			return fmt.Errorf("ops[%d]: unknown op %q", i, op.Op)
		}

		if !validWantErrs[op.WantErr] {
			return fmt.Errorf("ops[%d]: unknown want_err %q", i, op.WantErr)
		}
	}

	return nil
}
