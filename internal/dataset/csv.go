package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSV reads a CSV file into a Table. The first record is the header.
//
// Empty fields become missing cells. Ragged records are tolerated: short
// records are padded with missing cells, extra fields beyond the header
// width are dropped.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset %s is empty", path)
		}
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	// Files exported on Windows often carry a BOM on the first cell.
	header[0] = strings.TrimPrefix(header[0], "\uFEFF")

	var rows [][]Value
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if len(record) > len(header) {
			record = record[:len(header)]
		}
		row := make([]Value, len(record))
		for i, cell := range record {
			row[i] = Value{Text: cell, Missing: cell == ""}
		}
		rows = append(rows, row)
	}

	table, err := New(header, rows)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return table, nil
}
