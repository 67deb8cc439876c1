package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/memslot/internal/cli"
)

func loadTestdataScenario(t *testing.T, name string) cli.Scenario {
	t.Helper()

	scenario, err := cli.LoadScenario(filepath.Join("testdata", name))
	require.NoError(t, err)

	return scenario
}

func Test_RunScenario_Passes_Three_Cycles_Scenario(t *testing.T) {
	t.Parallel()

	result := cli.RunScenario(loadTestdataScenario(t, "three_cycles.jsonc"))

	for _, step := range result.Steps {
		assert.True(t, step.Pass, "step %d (%s) failed: %s", step.Index+1, step.Op.Op, step.Detail)
	}

	assert.True(t, result.Passed())
	assert.Zero(t, result.Failed)
}

func Test_RunScenario_Passes_Preconditions_Scenario(t *testing.T) {
	t.Parallel()

	result := cli.RunScenario(loadTestdataScenario(t, "preconditions.jsonc"))

	for _, step := range result.Steps {
		assert.True(t, step.Pass, "step %d (%s) failed: %s", step.Index+1, step.Op.Op, step.Detail)
	}

	assert.True(t, result.Passed())
}

func Test_RunScenario_Fails_Step_When_Value_Differs(t *testing.T) {
	t.Parallel()

	scenario := cli.Scenario{
		Name: "wrong-value",
		Ops: []cli.Op{
			{Op: "construct", ID: 1, Health: 2},
			{Op: "expect", ID: 99, Health: 2},
		},
	}

	result := cli.RunScenario(scenario)

	require.Equal(t, 1, result.Failed)
	assert.False(t, result.Passed())
	assert.True(t, result.Steps[0].Pass, "construct step should pass")
	assert.False(t, result.Steps[1].Pass, "expect step should fail on id mismatch")
	assert.Contains(t, result.Steps[1].Detail, "want {id:99")
}

func Test_RunScenario_Fails_Step_When_Expected_Error_Missing(t *testing.T) {
	t.Parallel()

	scenario := cli.Scenario{
		Name: "expected-error-missing",
		Ops: []cli.Op{
			{Op: "construct", ID: 1, Health: 1},
			{Op: "destroy", WantErr: "empty"},
		},
	}

	result := cli.RunScenario(scenario)

	require.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Steps[1].Detail, "want empty, got success")
}

func Test_RunScenario_Fails_Step_When_Unexpected_Error_Occurs(t *testing.T) {
	t.Parallel()

	scenario := cli.Scenario{
		Name: "unexpected-error",
		Ops: []cli.Op{
			{Op: "destroy"},
		},
	}

	result := cli.RunScenario(scenario)

	require.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Steps[0].Detail, "want success, got empty")
}

func Test_RunScenario_Keeps_Running_After_Failed_Step(t *testing.T) {
	t.Parallel()

	scenario := cli.Scenario{
		Name: "keeps-running",
		Ops: []cli.Op{
			{Op: "destroy"}, // fails: slot is empty
			{Op: "construct", ID: 1, Health: 1},
			{Op: "expect", ID: 1, Health: 1},
		},
	}

	result := cli.RunScenario(scenario)

	require.Len(t, result.Steps, 3, "all steps should run despite the failure")
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.Steps[1].Pass)
	assert.True(t, result.Steps[2].Pass)
}
