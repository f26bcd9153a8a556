package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ValuesOptions holds flags for the values command.
type ValuesOptions struct {
	*RootOptions
	Limit int
}

// ValuesResult lists the distinct values of one dataset column.
// Total counts all distinct values; Values may be shorter when a limit
// is set.
type ValuesResult struct {
	Column string   `json:"column"`
	Total  int      `json:"total"`
	Values []string `json:"values"`
}

// NewValuesCommand creates the values command.
func NewValuesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValuesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "values <column>",
		Short: "List the distinct values of a column",
		Long: `List the distinct non-missing values of a dataset column in
first-appearance order. These are the values exact matching is anchored
on; anything else falls back to substring matching.

Examples:
  aequery values AESEV
  aequery values AETERM --limit 20
  aequery values AESOC --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "limit number of values (0 = unlimited)")

	return cmd
}

func runValues(opts *ValuesOptions, column string, cmd *cobra.Command) error {
	sess, err := buildSession(opts.RootOptions)
	if err != nil {
		return err
	}

	if !sess.Data.HasColumn(column) {
		return respondError(cmd, opts.RootOptions, "E_UNKNOWN_COLUMN",
			fmt.Sprintf("column %q not in dataset (columns: %s)", column, strings.Join(sess.Data.Columns(), ", ")),
			nil)
	}

	values := sess.Data.DistinctValues(column)
	total := len(values)
	if opts.Limit > 0 && len(values) > opts.Limit {
		values = values[:opts.Limit]
	}

	result := ValuesResult{Column: column, Total: total, Values: values}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Distinct values of %s (%d of %d shown):\n", result.Column, len(result.Values), result.Total)
	for _, v := range result.Values {
		fmt.Fprintf(w, "  %s\n", v)
	}
	return nil
}
