package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alt-27/pharmaverse-roche/internal/config"
	"github.com/alt-27/pharmaverse-roche/internal/dataset"
	"github.com/alt-27/pharmaverse-roche/internal/engine"
	"github.com/alt-27/pharmaverse-roche/internal/interp"
	"github.com/alt-27/pharmaverse-roche/internal/llm"
	"github.com/alt-27/pharmaverse-roche/internal/schema"
)

// Session bundles what a query command needs: the effective
// configuration, the loaded dataset, and the interpretation and
// execution stages built over it.
type Session struct {
	Config      *config.Config
	Schema      schema.Schema
	Data        *dataset.Table
	Interpreter *interp.Interpreter
	Executor    *engine.Executor
}

// buildSession resolves configuration, loads the dataset, and wires the
// interpreter and executor. Flag overrides win over both the config file
// and the environment.
func buildSession(opts *RootOptions) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	// Flag overrides
	if opts.Data != "" {
		cfg.Dataset.Path = opts.Data
	}
	if opts.DataFormat != "" {
		cfg.Dataset.Format = opts.DataFormat
	}
	if opts.Table != "" {
		cfg.Dataset.Table = opts.Table
	}
	if opts.Mode != "" {
		cfg.Interpreter.Mode = config.Mode(opts.Mode)
	}

	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	configureLogging(cfg, opts)

	table, err := loadDataset(cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load dataset", err)
	}
	slog.Debug("dataset loaded",
		"path", cfg.Dataset.Path,
		"format", cfg.Dataset.Format,
		"rows", table.Len(),
	)

	dict := schema.Default()

	var interpOpts []interp.Option
	if cfg.Interpreter.Mode == config.ModeModel {
		key := cfg.APIKey()
		if key == "" {
			return nil, NewExitError(ExitCommandError,
				fmt.Sprintf("interpreter mode %q requires %s to be set", config.ModeModel, cfg.Interpreter.APIKeyEnv))
		}
		client := llm.New(cfg.Interpreter.BaseURL, key, cfg.Interpreter.Model)
		interpOpts = append(interpOpts, interp.WithModel(client))
		slog.Debug("model interpreter configured",
			"model", cfg.Interpreter.Model,
			"base_url", cfg.Interpreter.BaseURL,
		)
	}

	return &Session{
		Config:      cfg,
		Schema:      dict,
		Data:        table,
		Interpreter: interp.New(dict, table, interpOpts...),
		Executor:    engine.NewExecutor(table, dict),
	}, nil
}

// configureLogging installs the default slog handler. The verbose flag
// lowers the level to debug regardless of the configured level.
func configureLogging(cfg *config.Config, opts *RootOptions) {
	// Validate has already rejected bad level names.
	level, _ := cfg.LogLevel()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// loadDataset reads the configured dataset into memory.
func loadDataset(cfg *config.Config) (*dataset.Table, error) {
	switch cfg.Dataset.Format {
	case "sqlite":
		return dataset.OpenSQLite(cfg.Dataset.Path, cfg.Dataset.Table)
	default:
		return dataset.LoadCSV(cfg.Dataset.Path)
	}
}
