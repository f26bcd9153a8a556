package testutil

import (
	"fmt"

	"github.com/alt-27/pharmaverse-roche/internal/dataset"
)

// TableBuilder assembles small in-memory datasets for tests without
// routing through a file loader.
type TableBuilder struct {
	columns []string
	rows    [][]dataset.Value
}

// NewTableBuilder starts a builder with the given column order.
func NewTableBuilder(columns ...string) *TableBuilder {
	return &TableBuilder{columns: columns}
}

// Row appends a row of present text cells. An empty string is stored as
// a present empty value; use RowValues with MissingCell for missing
// cells.
func (b *TableBuilder) Row(cells ...string) *TableBuilder {
	row := make([]dataset.Value, len(cells))
	for i, c := range cells {
		row[i] = dataset.Value{Text: c}
	}
	b.rows = append(b.rows, row)
	return b
}

// RowValues appends a row of explicit cells, for rows that mix text and
// missing values.
func (b *TableBuilder) RowValues(cells ...dataset.Value) *TableBuilder {
	b.rows = append(b.rows, cells)
	return b
}

// Build materializes the table.
//
// Panics on an invalid fixture; a malformed fixture is a test bug, not a
// runtime condition.
func (b *TableBuilder) Build() *dataset.Table {
	t, err := dataset.New(b.columns, b.rows)
	if err != nil {
		panic(fmt.Sprintf("testutil: invalid table fixture: %v", err))
	}
	return t
}

// Cell returns a present text cell.
func Cell(text string) dataset.Value {
	return dataset.Value{Text: text}
}

// MissingCell returns a missing cell.
func MissingCell() dataset.Value {
	return dataset.Value{Missing: true}
}

// AdverseEvents returns the canned adverse-event table shared by the
// query pipeline tests.
//
// The fixture is built to exercise every matching path: duplicate
// subjects across rows (S1, S2), severity values in all three grades, two
// eye-disorder rows, a row with missing term and coded term (S6), and a
// row with a missing subject identifier.
func AdverseEvents() *dataset.Table {
	return NewTableBuilder("USUBJID", "AETERM", "AESOC", "AESEV", "AEDECOD").
		Row("S1", "Headache", "Nervous system disorders", "MILD", "Headache").
		Row("S2", "Headache", "Nervous system disorders", "MODERATE", "Headache").
		Row("S1", "Fatigue", "General disorders", "MODERATE", "Fatigue").
		Row("S3", "Visual impairment", "Eye disorders", "SEVERE", "Visual impairment").
		Row("S4", "Eye irritation", "Eye disorders", "MILD", "Eye irritation").
		Row("S5", "Atrial fibrillation", "Cardiac disorders", "SEVERE", "Atrial fibrillation").
		Row("S2", "Rash", "Skin and subcutaneous tissue disorders", "MILD", "Rash").
		RowValues(Cell("S6"), MissingCell(), Cell("General disorders"), Cell("MODERATE"), MissingCell()).
		Row("S7", "Erythema", "Skin and subcutaneous tissue disorders", "MODERATE", "Erythema").
		RowValues(MissingCell(), Cell("Headache"), Cell("Nervous system disorders"), Cell("SEVERE"), Cell("Headache")).
		Build()
}
