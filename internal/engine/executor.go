// Package engine executes structured queries against a loaded
// adverse-event dataset.
//
// Matching is exact-first: when the filter value equals one of the
// target column's distinct values case-insensitively, only rows with
// exactly that value match. Otherwise matching falls back to
// case-insensitive substring containment, where the filter text is
// always literal (never pattern syntax). The result is the distinct
// subject identifiers of the matching rows, in first-appearance order.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/alt-27/pharmaverse-roche/internal/dataset"
	"github.com/alt-27/pharmaverse-roche/internal/fold"
	"github.com/alt-27/pharmaverse-roche/internal/query"
	"github.com/alt-27/pharmaverse-roche/internal/schema"
)

// missingPlaceholder is the text a missing cell coerces to in the
// exact-match branch. A filter equal to a distinct value that folds to
// this placeholder will therefore also select rows with missing cells,
// matching how text-coerced tabular tools behave.
const missingPlaceholder = "NA"

// MatchResult is the outcome of executing one structured query. Count
// always equals len(SubjectIDs); both describe distinct subjects, not
// rows.
type MatchResult struct {
	Count      int      `json:"count"`
	SubjectIDs []string `json:"subject_ids"`
}

// Executor runs structured queries against one dataset.
//
// The dataset is read-only, so an Executor is safe for concurrent use.
type Executor struct {
	data   *dataset.Table
	schema schema.Schema
}

// NewExecutor builds an Executor over a loaded dataset.
func NewExecutor(data *dataset.Table, s schema.Schema) *Executor {
	return &Executor{data: data, schema: s}
}

// Execute selects the distinct subjects matching a repaired query.
//
// The exact branch coerces missing cells to the placeholder text; the
// substring branch never matches a missing cell. Rows whose subject
// identifier is missing are dropped from the result. The only errors are
// structural: the target or identifier column not existing in the
// dataset, which a repaired query against a conforming dataset cannot
// produce.
func (e *Executor) Execute(q query.StructuredQuery) (MatchResult, error) {
	if !e.data.HasColumn(q.TargetColumn) {
		return MatchResult{}, fmt.Errorf("target column %q not in dataset", q.TargetColumn)
	}
	if !e.data.HasColumn(schema.SubjectID) {
		return MatchResult{}, fmt.Errorf("dataset has no %q column", schema.SubjectID)
	}

	present := make(map[string]bool)
	for _, v := range e.data.DistinctValues(q.TargetColumn) {
		present[fold.Key(v)] = true
	}

	needle := fold.Key(q.FilterValue)
	exact := present[needle]

	subjects := make([]string, 0)
	seen := make(map[string]bool)
	for i := 0; i < e.data.Len(); i++ {
		cell := e.data.At(i, q.TargetColumn)

		var matched bool
		if exact {
			text := cell.Text
			if cell.Missing {
				text = missingPlaceholder
			}
			matched = fold.Key(text) == needle
		} else {
			matched = !cell.Missing && fold.Contains(cell.Text, q.FilterValue)
		}
		if !matched {
			continue
		}

		id := e.data.At(i, schema.SubjectID)
		if id.Missing || seen[id.Text] {
			continue
		}
		seen[id.Text] = true
		subjects = append(subjects, id.Text)
	}

	slog.Debug("query executed",
		"target_column", q.TargetColumn,
		"filter_value", q.FilterValue,
		"exact", exact,
		"count", len(subjects),
	)

	return MatchResult{Count: len(subjects), SubjectIDs: subjects}, nil
}
