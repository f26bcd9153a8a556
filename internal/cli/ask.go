package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// AskResult is the answer to one question: the query the question
// reduced to and the distinct subjects it matched.
type AskResult struct {
	Question     string   `json:"question"`
	TargetColumn string   `json:"target_column"`
	FilterValue  string   `json:"filter_value"`
	Count        int      `json:"count"`
	SubjectIDs   []string `json:"subject_ids"`
}

// NewAskCommand creates the ask command.
func NewAskCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question about the dataset",
		Long: `Interpret a natural-language question, run the resulting query, and
report the distinct matching subjects.

Exit codes:
  0 - Question answered
  1 - Question failed (model payload rejected, execution error)
  2 - Command error (invalid config, dataset not found, etc.)

Examples:
  aequery ask "Which subjects experienced Headache?"
  aequery ask --data ./adae.csv "How many subjects have eye disorders?"
  aequery ask --mode model --format json "Who had severe cardiac events?"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runAsk(opts *RootOptions, question string, cmd *cobra.Command) error {
	sess, err := buildSession(opts)
	if err != nil {
		return err
	}

	q, err := sess.Interpreter.Interpret(cmd.Context(), question)
	if err != nil {
		return respondError(cmd, opts, "E_INTERPRET", "failed to interpret question", err)
	}

	match, err := sess.Executor.Execute(q)
	if err != nil {
		return respondError(cmd, opts, "E_EXECUTE", "failed to execute query", err)
	}

	result := AskResult{
		Question:     question,
		TargetColumn: q.TargetColumn,
		FilterValue:  q.FilterValue,
		Count:        match.Count,
		SubjectIDs:   match.SubjectIDs,
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}
	return outputAskText(cmd, result)
}

// outputAskText renders the answer as a numbered subject table.
func outputAskText(cmd *cobra.Command, result AskResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Question: %s\n", result.Question)
	fmt.Fprintf(w, "Query: %s = %q\n", result.TargetColumn, result.FilterValue)
	fmt.Fprintln(w)

	renderSubjectTable(w, result.Count, result.SubjectIDs)
	return nil
}

// renderSubjectTable prints the matched subjects as a numbered table,
// or a no-match line when the list is empty.
func renderSubjectTable(w io.Writer, count int, subjectIDs []string) {
	if count == 0 {
		fmt.Fprintln(w, "No subjects matched.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Subject"})
	for i, id := range subjectIDs {
		table.Append([]string{strconv.Itoa(i + 1), id})
	}
	table.Render()

	fmt.Fprintf(w, "%d subject(s) matched.\n", count)
}
