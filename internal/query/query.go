// Package query defines the structured form a natural-language question is
// reduced to, and the repair rules that make any interpreted form safe to
// execute.
//
// A StructuredQuery is the whole contract between interpretation and
// execution: one target column and one filter value. Interpretation may
// produce it from a model response or from the deterministic fallback
// scorer; either way it passes through Repair before execution, so the
// executor never sees an unmappable column.
package query

// StructuredQuery is the executable reduction of a question.
//
// The JSON field names are part of the model contract: the prompt asks the
// model to return exactly these keys.
type StructuredQuery struct {
	// TargetColumn is the dataset column the filter applies to. After
	// Repair it is always a dictionary column.
	TargetColumn string `json:"target_column"`

	// FilterValue is the text matched against the target column. It may
	// be empty; the executor treats an empty filter as match-all over
	// non-missing rows.
	FilterValue string `json:"filter_value"`
}
