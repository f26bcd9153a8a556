package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adae.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV_Basic(t *testing.T) {
	path := writeCSV(t, "USUBJID,AETERM,AESEV\nS1,Headache,MILD\nS2,Fatigue,SEVERE\n")

	table, err := LoadCSV(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"USUBJID", "AETERM", "AESEV"}, table.Columns())
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, Value{Text: "Fatigue"}, table.At(1, "AETERM"))
}

func TestLoadCSV_EmptyFieldIsMissing(t *testing.T) {
	path := writeCSV(t, "USUBJID,AETERM\nS1,\nS2,Rash\n")

	table, err := LoadCSV(path)

	require.NoError(t, err)
	assert.True(t, table.At(0, "AETERM").Missing)
	assert.False(t, table.At(1, "AETERM").Missing)
}

func TestLoadCSV_RaggedRecords(t *testing.T) {
	path := writeCSV(t, "USUBJID,AETERM,AESEV\nS1,Headache\nS2,Rash,MILD,extra\n")

	table, err := LoadCSV(path)

	require.NoError(t, err)
	// Short record padded with missing, long record truncated.
	assert.True(t, table.At(0, "AESEV").Missing)
	assert.Equal(t, Value{Text: "MILD"}, table.At(1, "AESEV"))
}

func TestLoadCSV_QuotedFields(t *testing.T) {
	path := writeCSV(t, "USUBJID,AESOC\nS1,\"General disorders, administration site\"\n")

	table, err := LoadCSV(path)

	require.NoError(t, err)
	assert.Equal(t, "General disorders, administration site", table.At(0, "AESOC").Text)
}

func TestLoadCSV_StripsByteOrderMark(t *testing.T) {
	path := writeCSV(t, "\uFEFFUSUBJID,AETERM\nS1,Headache\n")

	table, err := LoadCSV(path)

	require.NoError(t, err)
	assert.True(t, table.HasColumn("USUBJID"))
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "USUBJID,AETERM\n")

	table, err := LoadCSV(path)

	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestLoadCSV_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "open dataset")
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := LoadCSV(writeCSV(t, ""))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "is empty")
	})

	t.Run("duplicate header", func(t *testing.T) {
		_, err := LoadCSV(writeCSV(t, "AETERM,AETERM\nx,y\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate column")
	})
}
