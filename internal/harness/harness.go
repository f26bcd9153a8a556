// Package harness executes question scenarios end to end.
//
// A scenario is a YAML file naming a dataset, a flow of natural-language
// questions with expected outcomes, and cross-cutting assertions over
// the resulting trace. The harness loads the dataset, interprets every
// question with the deterministic scorer, executes the interpreted
// queries, and reports pass/fail with the full trace.
//
// Determinism is the point: scenarios never call an external model, and
// a fixed question token replaces the UUIDv7 generator, so the same
// scenario file always produces a byte-identical trace. That makes
// traces comparable against golden files checked into testdata.
package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/alt-27/pharmaverse-roche/internal/dataset"
	"github.com/alt-27/pharmaverse-roche/internal/engine"
	"github.com/alt-27/pharmaverse-roche/internal/interp"
	"github.com/alt-27/pharmaverse-roche/internal/query"
	"github.com/alt-27/pharmaverse-roche/internal/schema"
	"github.com/alt-27/pharmaverse-roche/internal/testutil"
)

// Harness is the scenario execution engine.
// It runs questions through the real interpretation and execution
// pipeline with a deterministic question token.
type Harness struct {
	schema      schema.Schema
	interpreter *interp.Interpreter
	executor    *engine.Executor
	logger      *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario loads its dataset fresh for isolation.
//
// Execution flow:
// 1. Load the scenario's CSV dataset
// 2. Build the heuristic interpreter with a fixed question token
// 3. Interpret and execute each question, validating expect clauses
// 4. Evaluate trace assertions
// 5. Return result with pass/fail, trace, and errors
func Run(scenario *Scenario) (*Result, error) {
	table, err := dataset.LoadCSV(scenario.Dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario dataset: %w", err)
	}

	dict := schema.Default()
	tokens := testutil.NewFixedQuestionToken(scenario.QuestionToken)
	interpreter := interp.New(dict, table, interp.WithTokenGenerator(tokens))

	h := &Harness{
		schema:      dict,
		interpreter: interpreter,
		executor:    engine.NewExecutor(table, dict),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	ctx := context.Background()

	result := NewResult()
	if err := h.executeQuestions(ctx, scenario.Questions, result); err != nil {
		return nil, fmt.Errorf("failed to execute questions: %w", err)
	}

	// Evaluate assertions against the result
	actx := &AssertionContext{
		Ctx:         ctx,
		Schema:      dict,
		Interpreter: interpreter,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeQuestions runs all question steps and validates expect clauses.
//
// Each step:
// 1. Interprets the question (scorer path, fixed token)
// 2. Executes the interpreted query against the dataset
// 3. Appends the round trip to the trace
// 4. Validates the expect clause, recording mismatches as errors
func (h *Harness) executeQuestions(ctx context.Context, questions []QuestionStep, result *Result) error {
	for i, step := range questions {
		q, err := h.interpreter.Interpret(ctx, step.Ask)
		if err != nil {
			return fmt.Errorf("question step %d: failed to interpret: %w", i, err)
		}

		match, err := h.executor.Execute(q)
		if err != nil {
			return fmt.Errorf("question step %d: failed to execute: %w", i, err)
		}

		result.AddQuestionTrace(step.Ask, q, match)

		if step.Expect != nil {
			validateExpect(i, step.Expect, q, match, result)
		}

		h.logger.Info("question step completed",
			"step", i,
			"question", step.Ask,
			"target_column", q.TargetColumn,
			"filter_value", q.FilterValue,
			"count", match.Count,
		)
	}

	return nil
}

// validateExpect checks an expect clause against the interpreted query
// and match result. Only specified fields are validated; mismatches are
// recorded on the result rather than aborting the run.
func validateExpect(step int, expect *ExpectClause, q query.StructuredQuery, match engine.MatchResult, result *Result) {
	if expect.TargetColumn != "" && expect.TargetColumn != q.TargetColumn {
		result.AddError(fmt.Sprintf("question step %d: expected target column %q, got %q",
			step, expect.TargetColumn, q.TargetColumn))
	}
	if expect.FilterValue != nil && *expect.FilterValue != q.FilterValue {
		result.AddError(fmt.Sprintf("question step %d: expected filter value %q, got %q",
			step, *expect.FilterValue, q.FilterValue))
	}
	if expect.Count != nil && *expect.Count != match.Count {
		result.AddError(fmt.Sprintf("question step %d: expected count %d, got %d",
			step, *expect.Count, match.Count))
	}
	if expect.Subjects != nil && !slices.Equal(expect.Subjects, match.SubjectIDs) {
		result.AddError(fmt.Sprintf("question step %d: expected subjects %v, got %v",
			step, expect.Subjects, match.SubjectIDs))
	}
}
