// Package main implements the portfolio_ranker CLI for ranking portfolio content by role.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "portfolio_ranker",
	Short:             "Role-relevance ranking for portfolio content",
	Long:              "portfolio_ranker ranks projects, thoughts, tech and know-how by how well they match a visitor's role, from the command line or over HTTP.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
