package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// Serialization is deterministic: fields marshal in declaration order
// and the trace preserves scenario question order.
type TraceSnapshot struct {
	ScenarioName  string       `json:"scenario_name"`
	QuestionToken string       `json:"question_token,omitempty"`
	Trace         []TraceEvent `json:"trace"`
}

// MarshalTrace renders a snapshot as indented JSON for golden files.
func MarshalTrace(snapshot TraceSnapshot) ([]byte, error) {
	return json.MarshalIndent(snapshot, "", "  ")
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files serve as the source of truth for expected trace output.
//
// Returns error if scenario execution or marshaling fails.
// Test failure (via goldie) occurs if the trace doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	snapshot := TraceSnapshot{
		ScenarioName:  scenario.Name,
		QuestionToken: scenario.QuestionToken,
		Trace:         result.Trace,
	}

	traceJSON, err := MarshalTrace(snapshot)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return nil
}

// AssertGolden compares an already-obtained result's trace against a
// golden file, without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Trace:        result.Trace,
	}

	traceJSON, err := MarshalTrace(snapshot)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
