package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alt-27/pharmaverse-roche/internal/schema"
)

// subjectIDPattern matches questions that explicitly ask to filter by a
// subject identifier. Only such questions may keep the identifier column
// as their target.
var subjectIDPattern = regexp.MustCompile(`(?i)\b(usubjid|subject id)\b`)

// RepairResult is the outcome of repairing an interpreted query.
type RepairResult struct {
	// Query is the repaired form, always safe to execute against a
	// dataset that carries the dictionary columns.
	Query StructuredQuery

	// Repairs describes each fix that was applied, in order. Empty when
	// the query passed through untouched (whitespace trimming is not
	// reported).
	Repairs []string
}

// Repair normalizes an interpreted query against the column dictionary.
//
// Three rules, applied in order:
//  1. Both fields are whitespace-trimmed.
//  2. A target that is not a dictionary column is replaced with the
//     default target.
//  3. The identifier column is only kept as a target when the question
//     explicitly mentions a subject id; otherwise it is replaced with the
//     default target. The filter value is preserved either way.
//
// Repair is a pure function: it never fails, and the same inputs always
// produce the same result.
func Repair(q StructuredQuery, question string, s schema.Schema) RepairResult {
	repaired := StructuredQuery{
		TargetColumn: strings.TrimSpace(q.TargetColumn),
		FilterValue:  strings.TrimSpace(q.FilterValue),
	}

	var repairs []string

	if !s.Contains(repaired.TargetColumn) {
		repairs = append(repairs, fmt.Sprintf(
			"target column %q is not in the dictionary, using default %q",
			repaired.TargetColumn, s.DefaultTarget(),
		))
		repaired.TargetColumn = s.DefaultTarget()
	}

	if repaired.TargetColumn == schema.SubjectID && !subjectIDPattern.MatchString(question) {
		repairs = append(repairs, fmt.Sprintf(
			"question does not ask for a subject id, replacing target %q with default %q",
			schema.SubjectID, s.DefaultTarget(),
		))
		repaired.TargetColumn = s.DefaultTarget()
	}

	return RepairResult{Query: repaired, Repairs: repairs}
}
