package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alt-27/pharmaverse-roche/internal/interp"
	"github.com/alt-27/pharmaverse-roche/internal/schema"
	"github.com/alt-27/pharmaverse-roche/internal/testutil"
)

func newAssertionInterpreter() *interp.Interpreter {
	return interp.New(schema.Default(), testutil.AdverseEvents(),
		interp.WithTokenGenerator(testutil.NewFixedQuestionToken("qt-assert")))
}

func TestAssertQueryValid_Pass(t *testing.T) {
	trace := []TraceEvent{
		{Question: "q1", TargetColumn: "AETERM", FilterValue: "Headache", Count: 2, SubjectIDs: []string{"S1", "S2"}},
		{Question: "q2", TargetColumn: "USUBJID", FilterValue: "S1", Count: 1, SubjectIDs: []string{"S1"}},
	}

	assert.NoError(t, assertQueryValid(trace, schema.Default()))
}

func TestAssertQueryValid_UnknownColumn(t *testing.T) {
	trace := []TraceEvent{
		{Question: "q1", TargetColumn: "AETERM", FilterValue: "Headache"},
		{Question: "q2", TargetColumn: "AESTDTC", FilterValue: "2024-01-01"},
	}

	err := assertQueryValid(trace, schema.Default())
	require.Error(t, err)

	assertErr, ok := err.(*AssertionError)
	require.True(t, ok)
	assert.Equal(t, AssertQueryValid, assertErr.Type)
	assert.Contains(t, assertErr.Actual, `event 2 has target column "AESTDTC"`)
}

func TestAssertResultConsistent_Pass(t *testing.T) {
	trace := []TraceEvent{
		{Question: "q1", TargetColumn: "AETERM", Count: 2, SubjectIDs: []string{"S1", "S2"}},
		{Question: "q2", TargetColumn: "AESEV", Count: 0, SubjectIDs: []string{}},
	}

	assert.NoError(t, assertResultConsistent(trace))
}

func TestAssertResultConsistent_Failures(t *testing.T) {
	tests := []struct {
		name       string
		event      TraceEvent
		wantActual string
	}{
		{
			name:       "count mismatch",
			event:      TraceEvent{Question: "q", Count: 3, SubjectIDs: []string{"S1"}},
			wantActual: "count 3",
		},
		{
			name:       "duplicate subject id",
			event:      TraceEvent{Question: "q", Count: 2, SubjectIDs: []string{"S1", "S1"}},
			wantActual: `duplicate subject id "S1"`,
		},
		{
			name:       "empty subject id",
			event:      TraceEvent{Question: "q", Count: 2, SubjectIDs: []string{"S1", ""}},
			wantActual: "empty subject id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertResultConsistent([]TraceEvent{tt.event})
			require.Error(t, err)

			assertErr, ok := err.(*AssertionError)
			require.True(t, ok)
			assert.Equal(t, AssertResultConsistent, assertErr.Type)
			assert.Contains(t, assertErr.Actual, tt.wantActual)
		})
	}
}

func TestAssertDeterministic_Pass(t *testing.T) {
	trace := []TraceEvent{
		{Question: "Which subjects experienced Headache?", TargetColumn: "AETERM", FilterValue: "Headache"},
		{Question: "List the subjects with cardiac disorders.", TargetColumn: "AESOC", FilterValue: "Cardiac disorders"},
	}

	err := assertDeterministic(context.Background(), newAssertionInterpreter(), trace)
	assert.NoError(t, err)
}

func TestAssertDeterministic_RecordedQueryDiffers(t *testing.T) {
	// The trace claims a filter the interpreter never produces for this
	// question.
	trace := []TraceEvent{
		{Question: "Which subjects experienced Headache?", TargetColumn: "AETERM", FilterValue: "Fatigue"},
	}

	err := assertDeterministic(context.Background(), newAssertionInterpreter(), trace)
	require.Error(t, err)

	assertErr, ok := err.(*AssertionError)
	require.True(t, ok)
	assert.Equal(t, AssertDeterministic, assertErr.Type)
	assert.Contains(t, assertErr.Expected, `"Fatigue"`)
	assert.Contains(t, assertErr.Actual, `"Headache"`)
}

func TestEvaluateAssertions_CollectsAllFailures(t *testing.T) {
	result := NewResult()
	result.Trace = []TraceEvent{
		// Bad column and inconsistent count in one event.
		{Question: "q", TargetColumn: "NOPE", Count: 5, SubjectIDs: []string{"S1"}},
	}

	actx := &AssertionContext{
		Ctx:         context.Background(),
		Schema:      schema.Default(),
		Interpreter: newAssertionInterpreter(),
	}
	errors := EvaluateAssertions(result, []Assertion{
		{Type: AssertQueryValid},
		{Type: AssertResultConsistent},
	}, actx)

	require.Len(t, errors, 2)
	assert.Contains(t, errors[0], "query_valid")
	assert.Contains(t, errors[1], "result_consistent")
}

func TestEvaluateAssertions_UnknownType(t *testing.T) {
	result := NewResult()

	actx := &AssertionContext{Ctx: context.Background(), Schema: schema.Default()}
	errors := EvaluateAssertions(result, []Assertion{{Type: "final_state"}}, actx)

	require.Len(t, errors, 1)
	assert.Contains(t, errors[0], `unknown assertion type "final_state"`)
}

func TestAssertionError_ErrorIncludesTrace(t *testing.T) {
	err := &AssertionError{
		Type:     AssertQueryValid,
		Expected: "something",
		Actual:   "something else",
		Trace: []TraceEvent{
			{Question: "Which subjects experienced Headache?", TargetColumn: "AETERM", FilterValue: "Headache", Count: 2},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: query_valid")
	assert.Contains(t, msg, "Expected: something")
	assert.Contains(t, msg, "Actual: something else")
	assert.Contains(t, msg, `[1] "Which subjects experienced Headache?" -> AETERM="Headache" (2 subjects)`)
}
