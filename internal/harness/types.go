package harness

import (
	"github.com/alt-27/pharmaverse-roche/internal/engine"
	"github.com/alt-27/pharmaverse-roche/internal/query"
)

// TraceEvent records one question's full round trip: the question text,
// the interpreted query, and the match result.
type TraceEvent struct {
	Question     string   `json:"question"`
	TargetColumn string   `json:"target_column"`
	FilterValue  string   `json:"filter_value"`
	Count        int      `json:"count"`
	SubjectIDs   []string `json:"subject_ids"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses and assertions hold.
	Pass bool `json:"pass"`

	// Trace contains one event per question, in scenario order.
	// Used for trace assertions and golden comparison.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddQuestionTrace appends one question round trip to the trace.
func (r *Result) AddQuestionTrace(question string, q query.StructuredQuery, match engine.MatchResult) {
	r.Trace = append(r.Trace, TraceEvent{
		Question:     question,
		TargetColumn: q.TargetColumn,
		FilterValue:  q.FilterValue,
		Count:        match.Count,
		SubjectIDs:   match.SubjectIDs,
	})
}
