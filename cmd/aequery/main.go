// Package main implements the aequery binary: natural-language
// questions over a clinical adverse-event table.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/alt-27/pharmaverse-roche/internal/cli"
)

func main() {
	// Pick up OPENAI_API_KEY and AEQUERY_* overrides from a local .env.
	// A missing file is not an error.
	_ = godotenv.Load()

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
