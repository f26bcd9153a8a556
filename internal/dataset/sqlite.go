package dataset

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
)

// identifierPattern restricts table names to plain SQL identifiers. The
// name is interpolated into the query text (placeholders cannot carry
// identifiers), so anything else is rejected before it reaches SQLite.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// OpenSQLite reads one table of a SQLite database into a Table.
//
// The database is opened read-only, so a missing file is an error rather
// than a silently created empty database. SQL NULL becomes a missing
// cell; empty text stays a present empty string. Non-text columns are
// read through the driver's string conversion.
func OpenSQLite(path, table string) (*Table, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("table name %q is not a valid identifier", table)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to dataset %s: %w", path, err)
	}

	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM "%s"`, table))
	if err != nil {
		return nil, fmt.Errorf("read table %q: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns of %q: %w", table, err)
	}

	var data [][]Value
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		ptrs := make([]any, len(columns))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row of %q: %w", table, err)
		}

		row := make([]Value, len(columns))
		for i, cell := range cells {
			row[i] = Value{Text: cell.String, Missing: !cell.Valid}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read table %q: %w", table, err)
	}

	t, err := New(columns, data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return t, nil
}
