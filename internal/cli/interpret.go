package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InterpretResult is the structured query a question reduced to,
// before execution.
type InterpretResult struct {
	Question     string `json:"question"`
	TargetColumn string `json:"target_column"`
	FilterValue  string `json:"filter_value"`
}

// NewInterpretCommand creates the interpret command.
func NewInterpretCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interpret <question>",
		Short: "Show the query a question reduces to",
		Long: `Interpret a natural-language question and print the structured query
without executing it. Use this to inspect what the interpreter (model
or heuristic) makes of a question.

Examples:
  aequery interpret "Which subjects experienced Headache?"
  aequery interpret --mode model --format json "Who had severe events?"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterpret(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runInterpret(opts *RootOptions, question string, cmd *cobra.Command) error {
	sess, err := buildSession(opts)
	if err != nil {
		return err
	}

	q, err := sess.Interpreter.Interpret(cmd.Context(), question)
	if err != nil {
		return respondError(cmd, opts, "E_INTERPRET", "failed to interpret question", err)
	}

	result := InterpretResult{
		Question:     question,
		TargetColumn: q.TargetColumn,
		FilterValue:  q.FilterValue,
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Question: %s\n", result.Question)
	fmt.Fprintf(w, "Target column: %s\n", result.TargetColumn)
	fmt.Fprintf(w, "Filter value: %q\n", result.FilterValue)
	return nil
}
