// Package main provides the entry point for the FitScore evaluation CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fitscore",
	Short: "FitScore candidate evaluation engine",
	Long:  "FitScore scores candidate profiles against role-specific hiring benchmarks using elite-signal pattern extraction, with optional high-fidelity verification for borderline cases.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
