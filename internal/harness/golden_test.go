package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_CheckedInScenarios(t *testing.T) {
	// Each checked-in scenario has a golden trace under testdata/golden.
	// To regenerate after an intentional behavior change:
	//   go test ./internal/harness -update
	entries, err := os.ReadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		t.Run(entry.Name(), func(t *testing.T) {
			scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", entry.Name()))
			require.NoError(t, err)

			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestGoldenFilesMatchScenarios(t *testing.T) {
	// Every scenario has a golden file and vice versa, so a renamed
	// scenario cannot silently orphan its fixture.
	scenarios, err := os.ReadDir("testdata/scenarios")
	require.NoError(t, err)
	goldens, err := os.ReadDir("testdata/golden")
	require.NoError(t, err)

	scenarioNames := make(map[string]bool)
	for _, entry := range scenarios {
		scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", entry.Name()))
		require.NoError(t, err)
		scenarioNames[scenario.Name] = true
	}

	goldenNames := make(map[string]bool)
	for _, entry := range goldens {
		goldenNames[strings.TrimSuffix(entry.Name(), ".golden")] = true
	}

	assert.Equal(t, scenarioNames, goldenNames)
}

func TestMarshalTrace_Deterministic(t *testing.T) {
	snapshot := TraceSnapshot{
		ScenarioName:  "sample",
		QuestionToken: "qt-1",
		Trace: []TraceEvent{
			{Question: "q", TargetColumn: "AETERM", FilterValue: "Headache", Count: 1, SubjectIDs: []string{"S1"}},
		},
	}

	first, err := MarshalTrace(snapshot)
	require.NoError(t, err)
	second, err := MarshalTrace(snapshot)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(string(first), "{\n  \"scenario_name\": \"sample\""))
}

func TestMarshalTrace_OmitsEmptyToken(t *testing.T) {
	snapshot := TraceSnapshot{
		ScenarioName: "sample",
		Trace:        []TraceEvent{},
	}

	data, err := MarshalTrace(snapshot)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "question_token")
}

func TestAssertGolden_MatchesRunWithGolden(t *testing.T) {
	// AssertGolden on a pre-computed result produces the same comparison
	// as RunWithGolden, minus the question token header.
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "no-match.yaml"))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass)

	snapshot := TraceSnapshot{
		ScenarioName:  scenario.Name,
		QuestionToken: scenario.QuestionToken,
		Trace:         result.Trace,
	}
	data, err := MarshalTrace(snapshot)
	require.NoError(t, err)

	golden, err := os.ReadFile(filepath.Join("testdata", "golden", "no-match.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(golden), string(data))
}
