package dataset

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSQLite(t *testing.T, statements ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adae.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestOpenSQLite_Basic(t *testing.T) {
	path := writeSQLite(t,
		`CREATE TABLE adae (USUBJID TEXT, AETERM TEXT, AESEV TEXT)`,
		`INSERT INTO adae VALUES ('S1', 'Headache', 'MILD'), ('S2', 'Fatigue', 'SEVERE')`,
	)

	table, err := OpenSQLite(path, "adae")

	require.NoError(t, err)
	assert.Equal(t, []string{"USUBJID", "AETERM", "AESEV"}, table.Columns())
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "Fatigue", table.At(1, "AETERM").Text)
}

func TestOpenSQLite_NullIsMissing(t *testing.T) {
	path := writeSQLite(t,
		`CREATE TABLE adae (USUBJID TEXT, AETERM TEXT)`,
		`INSERT INTO adae VALUES ('S1', NULL), ('S2', '')`,
	)

	table, err := OpenSQLite(path, "adae")

	require.NoError(t, err)
	assert.True(t, table.At(0, "AETERM").Missing)
	// Empty text is distinguishable from NULL in SQLite and stays present.
	assert.Equal(t, Value{Text: ""}, table.At(1, "AETERM"))
}

func TestOpenSQLite_NumericColumnReadsAsText(t *testing.T) {
	path := writeSQLite(t,
		`CREATE TABLE adae (USUBJID TEXT, AESEQ INTEGER)`,
		`INSERT INTO adae VALUES ('S1', 3)`,
	)

	table, err := OpenSQLite(path, "adae")

	require.NoError(t, err)
	assert.Equal(t, "3", table.At(0, "AESEQ").Text)
}

func TestOpenSQLite_Errors(t *testing.T) {
	t.Run("invalid table name", func(t *testing.T) {
		_, err := OpenSQLite("unused.db", `adae"; DROP TABLE adae; --`)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid identifier")
	})

	t.Run("missing database file", func(t *testing.T) {
		_, err := OpenSQLite(filepath.Join(t.TempDir(), "nope.db"), "adae")

		require.Error(t, err)
	})

	t.Run("unknown table", func(t *testing.T) {
		path := writeSQLite(t, `CREATE TABLE adae (USUBJID TEXT)`)

		_, err := OpenSQLite(path, "other")

		require.Error(t, err)
		assert.Contains(t, err.Error(), `read table "other"`)
	})
}
