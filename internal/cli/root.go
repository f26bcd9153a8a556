package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alt-27/pharmaverse-roche/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // optional config file
	Data       string // dataset path override
	DataFormat string // dataset format override ("csv" | "sqlite")
	Table      string // sqlite table override
	Mode       string // interpreter mode override ("heuristic" | "model")
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the aequery CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "aequery",
		Short: "aequery - question an adverse-event table",
		Long:  "Answer natural-language questions about a clinical adverse-event table\nby reducing them to structured column/value queries.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			// Validate mode override early; empty means "use the config"
			if opts.Mode != "" && opts.Mode != string(config.ModeHeuristic) && opts.Mode != string(config.ModeModel) {
				return fmt.Errorf("invalid mode %q: must be %q or %q", opts.Mode, config.ModeHeuristic, config.ModeModel)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&opts.Data, "data", "", "dataset path (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.DataFormat, "data-format", "", "dataset format: csv or sqlite (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Table, "table", "", "table name for sqlite datasets (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Mode, "mode", "", "interpreter mode: heuristic or model (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewAskCommand(opts))
	cmd.AddCommand(NewInterpretCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewValuesCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
