package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/alt-27/pharmaverse-roche/internal/interp"
	"github.com/alt-27/pharmaverse-roche/internal/schema"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)

	// Expected vs Actual (most important info)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	// Full trace for context
	fmt.Fprintf(&buf, "\nFull trace:\n")
	for i, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %q -> %s=%q (%d subjects)\n",
			i+1, event.Question, event.TargetColumn, event.FilterValue, event.Count)
	}

	return buf.String()
}

// assertQueryValid checks that every interpreted target column is in the
// dictionary. The repair step guarantees this; the assertion catches a
// broken repair path.
func assertQueryValid(trace []TraceEvent, dict schema.Schema) error {
	for i, event := range trace {
		if !dict.Contains(event.TargetColumn) {
			return &AssertionError{
				Type:     AssertQueryValid,
				Expected: fmt.Sprintf("target column from %v", dict.Mappable()),
				Actual:   fmt.Sprintf("event %d has target column %q", i+1, event.TargetColumn),
				Trace:    trace,
			}
		}
	}
	return nil
}

// assertResultConsistent checks the structural invariants of every match
// result: the count equals the id list length, and the ids are unique
// and non-empty.
func assertResultConsistent(trace []TraceEvent) error {
	for i, event := range trace {
		if event.Count != len(event.SubjectIDs) {
			return &AssertionError{
				Type:     AssertResultConsistent,
				Expected: fmt.Sprintf("event %d count equal to %d subject ids", i+1, len(event.SubjectIDs)),
				Actual:   fmt.Sprintf("count %d", event.Count),
				Trace:    trace,
			}
		}

		seen := make(map[string]bool, len(event.SubjectIDs))
		for _, id := range event.SubjectIDs {
			if id == "" {
				return &AssertionError{
					Type:     AssertResultConsistent,
					Expected: fmt.Sprintf("event %d subject ids all non-empty", i+1),
					Actual:   "empty subject id",
					Trace:    trace,
				}
			}
			if seen[id] {
				return &AssertionError{
					Type:     AssertResultConsistent,
					Expected: fmt.Sprintf("event %d subject ids all distinct", i+1),
					Actual:   fmt.Sprintf("duplicate subject id %q", id),
					Trace:    trace,
				}
			}
			seen[id] = true
		}
	}
	return nil
}

// assertDeterministic re-interprets every traced question and checks the
// interpreted query comes out identical.
func assertDeterministic(ctx context.Context, interpreter *interp.Interpreter, trace []TraceEvent) error {
	for i, event := range trace {
		q, err := interpreter.Interpret(ctx, event.Question)
		if err != nil {
			return &AssertionError{
				Type:     AssertDeterministic,
				Expected: fmt.Sprintf("event %d question to interpret again", i+1),
				Actual:   fmt.Sprintf("interpret error: %v", err),
				Trace:    trace,
			}
		}
		if q.TargetColumn != event.TargetColumn || q.FilterValue != event.FilterValue {
			return &AssertionError{
				Type:     AssertDeterministic,
				Expected: fmt.Sprintf("event %d to re-interpret as %s=%q", i+1, event.TargetColumn, event.FilterValue),
				Actual:   fmt.Sprintf("%s=%q", q.TargetColumn, q.FilterValue),
				Trace:    trace,
			}
		}
	}
	return nil
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Ctx         context.Context
	Schema      schema.Schema
	Interpreter *interp.Interpreter
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides the dictionary and interpreter used by the run.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertQueryValid:
			err = assertQueryValid(result.Trace, actx.Schema)
		case AssertResultConsistent:
			err = assertResultConsistent(result.Trace)
		case AssertDeterministic:
			if actx.Interpreter == nil {
				err = fmt.Errorf("assertion[%d]: deterministic requires an interpreter context", i)
			} else {
				err = assertDeterministic(actx.Ctx, actx.Interpreter, result.Trace)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
