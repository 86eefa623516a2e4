package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/census/internal/cli"
	"github.com/example/census/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "census",
		Short:   "census - registry ingestion and reporting",
		Version: version.String(),
		Long: `census ingests organization and population registry files into a local
store and answers questions about the result: organization rosters, shared
friends, and favourite foods.

Re-ingesting the same files is free; changed files version the individuals
that differ while keeping prior versions as history.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.IngestCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.QueryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
