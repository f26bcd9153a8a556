package cli

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/alt-27/pharmaverse-roche/internal/schema"
)

// SchemaColumn is one dictionary entry in schema command output.
type SchemaColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Show the column dictionary",
		Long: `Show the adverse-event column dictionary: the columns a structured
query may target and the descriptions the interpreter matches
questions against. The dictionary is fixed; no dataset is loaded.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(rootOpts, cmd)
		},
	}

	return cmd
}

func runSchema(opts *RootOptions, cmd *cobra.Command) error {
	dict := schema.Default()

	names := dict.Columns()
	columns := make([]SchemaColumn, 0, len(names))
	for _, name := range names {
		columns = append(columns, SchemaColumn{Name: name, Description: dict.Description(name)})
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(columns)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Column", "Description"})
	for _, c := range columns {
		table.Append([]string{c.Name, c.Description})
	}
	table.Render()
	return nil
}
