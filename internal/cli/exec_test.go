package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecCommand_Text(t *testing.T) {
	output, err := executeCommand("exec", "--column", "AESEV", "--value", "MODERATE", "--data", testDataset)
	require.NoError(t, err)

	assert.Contains(t, output, `Query: AESEV = "MODERATE"`)
	assert.Contains(t, output, "S6")
	assert.Contains(t, output, "4 subject(s) matched.")
}

func TestExecCommand_JSON(t *testing.T) {
	output, err := executeCommand("exec", "--column", "AESEV", "--value", "MODERATE", "--data", testDataset, "--format", "json")
	require.NoError(t, err)

	var result ExecResult
	resp := decodeResponse(t, output, &result)

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "AESEV", result.TargetColumn)
	assert.Equal(t, "MODERATE", result.FilterValue)
	assert.Equal(t, 4, result.Count)
	assert.Equal(t, []string{"S2", "S1", "S6", "S7"}, result.SubjectIDs)
}

func TestExecCommand_SubstringValue(t *testing.T) {
	// "Eye" is not a distinct AESOC value, so matching is substring.
	output, err := executeCommand("exec", "--column", "AESOC", "--value", "Eye", "--data", testDataset, "--format", "json")
	require.NoError(t, err)

	var result ExecResult
	decodeResponse(t, output, &result)

	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []string{"S3", "S4"}, result.SubjectIDs)
}

func TestExecCommand_UnknownColumn(t *testing.T) {
	_, err := executeCommand("exec", "--column", "AESTDTC", "--value", "x", "--data", testDataset)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), `unknown column "AESTDTC"`)
	assert.Contains(t, err.Error(), "USUBJID, AETERM, AESOC, AESEV, AEDECOD")
}

func TestExecCommand_UnknownColumnJSON(t *testing.T) {
	output, err := executeCommand("exec", "--column", "AESTDTC", "--value", "x", "--data", testDataset, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, output, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_UNKNOWN_COLUMN", resp.Error.Code)
}

func TestExecCommand_RequiresFlags(t *testing.T) {
	_, err := executeCommand("exec", "--data", testDataset)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestExecCommand_EmptyValue(t *testing.T) {
	// An explicitly empty value is legal: it is not a distinct value, and
	// substring matching with an empty needle matches every present cell.
	output, err := executeCommand("exec", "--column", "AETERM", "--value", "", "--data", testDataset, "--format", "json")
	require.NoError(t, err)

	var result ExecResult
	decodeResponse(t, output, &result)

	// All subjects with a present AETERM and a present USUBJID.
	assert.Equal(t, []string{"S1", "S2", "S3", "S4", "S5", "S7"}, result.SubjectIDs)
	assert.Equal(t, 6, result.Count)
}
