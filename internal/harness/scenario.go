package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios run natural-language questions against a dataset and assert
// on the interpreted queries and match results.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name for trace comparison.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Dataset is the CSV file to load. Relative paths are resolved
	// against the scenario file location.
	Dataset string `yaml:"dataset"`

	// QuestionToken is an optional fixed question token for deterministic
	// runs. If empty, defaults to "question-token-default" so golden
	// traces stay byte-identical across runs.
	QuestionToken string `yaml:"question_token,omitempty"`

	// Questions contains the main flow - questions with expected results.
	// Each step can pin the interpreted query and the match outcome.
	Questions []QuestionStep `yaml:"questions"`

	// Assertions validate the full trace after all questions ran.
	// Supported types: query_valid, result_consistent, deterministic
	Assertions []Assertion `yaml:"assertions"`
}

// QuestionStep represents one question in the scenario flow.
type QuestionStep struct {
	// Ask is the natural-language question.
	Ask string `yaml:"ask"`

	// Expect specifies the expected interpretation and match result.
	// If nil, the step only contributes to the trace.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause pins interpreted-query fields and match results.
// All fields are optional; only specified fields are validated.
type ExpectClause struct {
	// TargetColumn is the expected interpreted target column.
	TargetColumn string `yaml:"target_column,omitempty"`

	// FilterValue is the expected interpreted filter value. A pointer so
	// an explicit empty string stays distinguishable from "not checked".
	FilterValue *string `yaml:"filter_value,omitempty"`

	// Count is the expected number of distinct matching subjects.
	Count *int `yaml:"count,omitempty"`

	// Subjects is the expected subject id list, in match order.
	Subjects []string `yaml:"subjects,omitempty"`
}

// hasChecks reports whether the clause pins anything at all.
func (e *ExpectClause) hasChecks() bool {
	return e.TargetColumn != "" || e.FilterValue != nil || e.Count != nil || e.Subjects != nil
}

// Assertion validates the trace produced by a scenario run.
type Assertion struct {
	// Type specifies the assertion type:
	// - "query_valid": every interpreted target column is in the dictionary
	// - "result_consistent": counts match id lists, ids are unique and non-empty
	// - "deterministic": re-interpreting every question reproduces the trace
	Type string `yaml:"type"`
}

// Assertion type constants.
const (
	AssertQueryValid       = "query_valid"
	AssertResultConsistent = "result_consistent"
	AssertDeterministic    = "deterministic"
)

// LoadScenario reads and parses a scenario YAML file.
// The dataset path is resolved relative to the scenario file location.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "question:" vs "questions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the dataset path relative to the scenario file BEFORE validation
	if scenario.Dataset != "" && !filepath.IsAbs(scenario.Dataset) {
		scenario.Dataset = filepath.Join(filepath.Dir(path), scenario.Dataset)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Dataset == "" {
		return fmt.Errorf("dataset is required")
	}
	if _, err := os.Stat(s.Dataset); os.IsNotExist(err) {
		return fmt.Errorf("dataset file not found: %s", s.Dataset)
	}

	if len(s.Questions) == 0 {
		return fmt.Errorf("questions list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	// Validate question steps
	for i, step := range s.Questions {
		if step.Ask == "" {
			return fmt.Errorf("questions[%d]: ask is required", i)
		}
		if step.Expect != nil && !step.Expect.hasChecks() {
			return fmt.Errorf("questions[%d].expect: at least one of target_column, filter_value, count, subjects is required", i)
		}
	}

	// Validate assertions
	for i, assertion := range s.Assertions {
		switch assertion.Type {
		case AssertQueryValid, AssertResultConsistent, AssertDeterministic:
		case "":
			return fmt.Errorf("assertions[%d]: type is required", i)
		default:
			return fmt.Errorf("assertions[%d]: unknown assertion type %q", i, assertion.Type)
		}
	}

	return nil
}
