package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seaharness/internal/testutil"
)

const scenarioDir = "../../testdata/scenarios"

// TestDemoScenarios runs the scenarios shipped in testdata end to end.
func TestDemoScenarios(t *testing.T) {
	tests := []struct {
		name       string
		iterations int
		decision   string
	}{
		{"always_approve", 3, "Approved"},
		{"identifier_zone_approves", 2, "Approved"},
		{"identifier_zone_rejects", 4, "Rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadScenario(scenarioDir + "/" + tt.name + ".yaml")
			require.NoError(t, err)
			assert.Equal(t, tt.name, s.Name)
			assert.NotEmpty(t, s.Description)

			result, err := RunScenario(context.Background(), s, RunOptions{
				Tokens: testutil.NewCountingTokenGenerator(tt.name),
			})
			require.NoError(t, err)
			require.True(t, result.Pass, "failures: %v", result.Failed())
			require.Len(t, result.Iterations, tt.iterations)

			for _, it := range result.Iterations {
				require.NotEmpty(t, it.Trace)
				assert.Equal(t, EventZoneCall, it.Trace[0].Type)
				assert.Equal(t, tt.decision, it.Trace[0].Decision)
			}
		})
	}
}

// TestDemoScenariosReplay checks that two runs of a scenario produce the
// same snapshot.
func TestDemoScenariosReplay(t *testing.T) {
	paths, err := FindScenarios(scenarioDir)
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		s, err := LoadScenario(path)
		require.NoError(t, err)

		a, err := RunScenario(context.Background(), s, RunOptions{Workers: 1})
		require.NoError(t, err)
		b, err := RunScenario(context.Background(), s, RunOptions{Workers: 4})
		require.NoError(t, err)

		sa, err := Snapshot(a)
		require.NoError(t, err)
		sb, err := Snapshot(b)
		require.NoError(t, err)
		assert.Equal(t, string(sa), string(sb), path)
	}
}

func TestDemoScenarioSuite(t *testing.T) {
	paths, err := FindScenarios(scenarioDir)
	require.NoError(t, err)

	result, err := RunSuite(context.Background(), paths, RunOptions{})
	require.NoError(t, err)
	assert.True(t, result.Pass(), "failures: %v", result.Failures)
	assert.Equal(t, len(paths), result.Passed)
}
