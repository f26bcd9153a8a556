// Package schema defines the fixed adverse-event column dictionary that
// interpretation and execution share.
//
// The dictionary is deliberately small and ordered: column order is the
// tie-break for the fallback scorer, and the descriptions double as prompt
// text for the model-backed interpreter. Changing a description changes
// both the prompt and the scorer's token pool, so the texts here are part
// of the interpretation contract, not documentation.
package schema

import (
	"fmt"
	"strings"
)

// SubjectID is the identifier column returned by every query. It is never
// a scoring candidate and is only a valid filter target when the question
// explicitly asks for it.
const SubjectID = "USUBJID"

// Column is a single dictionary entry: the dataset column name and the
// human-readable description shown to the model and mined by the scorer.
type Column struct {
	Name        string
	Description string
}

// Schema is an ordered, immutable set of adverse-event columns.
//
// Construct with Default; the zero value is empty and matches nothing.
type Schema struct {
	columns []Column
	index   map[string]int
}

// Default returns the adverse-event dictionary. Declaration order is
// significant: it is the scorer's tie-break order.
func Default() Schema {
	return newSchema([]Column{
		{Name: SubjectID, Description: "Unique subject id (RETURN ONLY; do not choose as a filter column)"},
		{Name: "AETERM", Description: "Adverse event term (e.g., Headache, Fatigue)"},
		{Name: "AESOC", Description: "Body system / System Organ Class (e.g., Skin, Cardiac, Eye disorders)"},
		{Name: "AESEV", Description: "Severity / intensity (e.g., MILD, MODERATE, SEVERE)"},
		{Name: "AEDECOD", Description: "Dictionary-derived term (coded)"},
	})
}

func newSchema(columns []Column) Schema {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c.Name] = i
	}
	return Schema{columns: columns, index: index}
}

// Columns returns every column name in declaration order.
func (s Schema) Columns() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Mappable returns the column names a structured query may target.
// The identifier column is included: an explicit subject-id question may
// filter on it.
func (s Schema) Mappable() []string {
	return s.Columns()
}

// Scorable returns the columns the fallback scorer considers, in
// tie-break order. The identifier column is excluded so that generic
// questions never resolve to it.
func (s Schema) Scorable() []string {
	names := make([]string, 0, len(s.columns))
	for _, c := range s.columns {
		if c.Name == SubjectID {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// Contains reports whether name is a dictionary column. Matching is
// exact: column names are case-sensitive identifiers.
func (s Schema) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Description returns the description for name, or the empty string for
// unknown columns.
func (s Schema) Description(name string) string {
	i, ok := s.index[name]
	if !ok {
		return ""
	}
	return s.columns[i].Description
}

// DefaultTarget is the column a query falls back to when interpretation
// cannot produce a usable target.
func (s Schema) DefaultTarget() string {
	return "AETERM"
}

// Text renders the dictionary as prompt-ready lines, one column per line:
//
//	- NAME: description
func (s Schema) Text() string {
	var b strings.Builder
	for _, c := range s.columns {
		fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
