// Package dataset loads adverse-event tables into memory and serves cell
// and distinct-value access to the interpreter and executor.
//
// Tables are small (clinical adverse-event extracts, not warehouses), so
// both loaders read everything up front and hand back an immutable
// in-memory Table. Queries never touch the source again after loading.
package dataset

import "fmt"

// Value is a single table cell. A missing cell carries no text; loaders
// map their source's missing representation (empty CSV field, SQL NULL)
// onto Missing.
type Value struct {
	Text    string
	Missing bool
}

// Table is an immutable, column-ordered table of adverse-event rows.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New builds a Table from a header and rows.
//
// Column names must be non-empty and unique. Rows shorter than the header
// are padded with missing cells; rows longer than the header are
// rejected.
func New(columns []string, rows [][]Value) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table has no columns")
	}

	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}

	padded := make([][]Value, len(rows))
	for i, row := range rows {
		if len(row) > len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, table has %d columns", i, len(row), len(columns))
		}
		if len(row) == len(columns) {
			padded[i] = row
			continue
		}
		full := make([]Value, len(columns))
		copy(full, row)
		for j := len(row); j < len(columns); j++ {
			full[j] = Value{Missing: true}
		}
		padded[i] = full
	}

	cols := make([]string, len(columns))
	copy(cols, columns)

	return &Table{columns: cols, index: index, rows: padded}, nil
}

// Columns returns the column names in table order. The slice is a copy.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// At returns the cell at (row, column).
//
// At panics when row is out of range or column is unknown; callers gate
// on Len and HasColumn. This mirrors slice indexing: a bad access is a
// caller bug, not a data condition.
func (t *Table) At(row int, column string) Value {
	i, ok := t.index[column]
	if !ok {
		panic(fmt.Sprintf("dataset: unknown column %q", column))
	}
	return t.rows[row][i]
}

// DistinctValues returns the distinct non-missing texts of a column in
// first-appearance order. The slice is freshly allocated; callers may
// reorder it.
//
// Distinctness is exact: values differing only in case appear separately.
// Case-insensitive callers fold the result themselves.
func (t *Table) DistinctValues(column string) []string {
	i, ok := t.index[column]
	if !ok {
		panic(fmt.Sprintf("dataset: unknown column %q", column))
	}

	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, row := range t.rows {
		cell := row[i]
		if cell.Missing || seen[cell.Text] {
			continue
		}
		seen[cell.Text] = true
		values = append(values, cell.Text)
	}
	return values
}
