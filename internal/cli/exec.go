package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alt-27/pharmaverse-roche/internal/query"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	Column string
	Value  string
}

// ExecResult is the outcome of running a structured query directly.
type ExecResult struct {
	TargetColumn string   `json:"target_column"`
	FilterValue  string   `json:"filter_value"`
	Count        int      `json:"count"`
	SubjectIDs   []string `json:"subject_ids"`
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Run a structured query directly",
		Long: `Run a column/value query against the dataset, bypassing question
interpretation. The column must be a dictionary column; unlike
interpreted queries there is no repair step, an unknown column is an
error.

Examples:
  aequery exec --column AESEV --value MODERATE
  aequery exec --column AESOC --value "Eye" --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Column, "column", "", "target column (required)")
	cmd.Flags().StringVar(&opts.Value, "value", "", "filter value (required)")
	_ = cmd.MarkFlagRequired("column")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func runExec(opts *ExecOptions, cmd *cobra.Command) error {
	sess, err := buildSession(opts.RootOptions)
	if err != nil {
		return err
	}

	if !sess.Schema.Contains(opts.Column) {
		return respondError(cmd, opts.RootOptions, "E_UNKNOWN_COLUMN",
			fmt.Sprintf("unknown column %q (dictionary columns: %s)", opts.Column, strings.Join(sess.Schema.Columns(), ", ")),
			nil)
	}

	q := query.StructuredQuery{TargetColumn: opts.Column, FilterValue: opts.Value}
	match, err := sess.Executor.Execute(q)
	if err != nil {
		return respondError(cmd, opts.RootOptions, "E_EXECUTE", "failed to execute query", err)
	}

	result := ExecResult{
		TargetColumn: q.TargetColumn,
		FilterValue:  q.FilterValue,
		Count:        match.Count,
		SubjectIDs:   match.SubjectIDs,
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Query: %s = %q\n", result.TargetColumn, result.FilterValue)
	fmt.Fprintln(w)
	renderSubjectTable(w, result.Count, result.SubjectIDs)
	return nil
}
