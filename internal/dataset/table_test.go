package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) Value     { return Value{Text: s} }
func missing() Value          { return Value{Missing: true} }
func row(vs ...Value) []Value { return vs }

func TestNew_Valid(t *testing.T) {
	table, err := New(
		[]string{"USUBJID", "AETERM"},
		[][]Value{
			row(text("S1"), text("Headache")),
			row(text("S2"), missing()),
		},
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"USUBJID", "AETERM"}, table.Columns())
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, Value{Text: "Headache"}, table.At(0, "AETERM"))
	assert.True(t, table.At(1, "AETERM").Missing)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		rows    [][]Value
		wantErr string
	}{
		{
			name:    "no columns",
			columns: nil,
			wantErr: "no columns",
		},
		{
			name:    "empty column name",
			columns: []string{"USUBJID", ""},
			wantErr: "empty name",
		},
		{
			name:    "duplicate column",
			columns: []string{"AETERM", "AETERM"},
			wantErr: "duplicate column",
		},
		{
			name:    "overlong row",
			columns: []string{"USUBJID"},
			rows:    [][]Value{row(text("S1"), text("extra"))},
			wantErr: "has 2 cells",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.columns, tt.rows)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_PadsShortRows(t *testing.T) {
	table, err := New(
		[]string{"USUBJID", "AETERM", "AESEV"},
		[][]Value{row(text("S1"))},
	)

	require.NoError(t, err)
	assert.Equal(t, Value{Text: "S1"}, table.At(0, "USUBJID"))
	assert.True(t, table.At(0, "AETERM").Missing)
	assert.True(t, table.At(0, "AESEV").Missing)
}

func TestTable_HasColumn(t *testing.T) {
	table, err := New([]string{"USUBJID"}, nil)
	require.NoError(t, err)

	assert.True(t, table.HasColumn("USUBJID"))
	assert.False(t, table.HasColumn("usubjid"))
	assert.False(t, table.HasColumn("AETERM"))
}

func TestTable_At_PanicsOnBadAccess(t *testing.T) {
	table, err := New([]string{"USUBJID"}, [][]Value{row(text("S1"))})
	require.NoError(t, err)

	assert.Panics(t, func() { table.At(0, "AETERM") })
	assert.Panics(t, func() { table.At(1, "USUBJID") })
}

func TestTable_DistinctValues(t *testing.T) {
	table, err := New(
		[]string{"AETERM"},
		[][]Value{
			row(text("Headache")),
			row(text("Fatigue")),
			row(text("Headache")),
			row(missing()),
			row(text("HEADACHE")),
			row(text("")),
		},
	)
	require.NoError(t, err)

	values := table.DistinctValues("AETERM")

	// First-appearance order, exact-case distinctness, missing excluded.
	// The empty text was stored as a present cell and is kept.
	assert.Equal(t, []string{"Headache", "Fatigue", "HEADACHE", ""}, values)
}

func TestTable_DistinctValues_ReturnsFreshSlice(t *testing.T) {
	table, err := New(
		[]string{"AETERM"},
		[][]Value{row(text("Headache")), row(text("Fatigue"))},
	)
	require.NoError(t, err)

	first := table.DistinctValues("AETERM")
	first[0] = "mutated"

	assert.Equal(t, []string{"Headache", "Fatigue"}, table.DistinctValues("AETERM"))
}
