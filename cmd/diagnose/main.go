// Package main provides the diagnose CLI for offline résumé analysis.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var profilePath string

var rootCmd = &cobra.Command{
	Use:           "diagnose",
	Short:         "Résumé diagnostics from the command line",
	Long:          "diagnose scores résumés for ATS readiness, matches them against job descriptions and recommends roles without running the API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "Path to an analysis profile YAML (defaults to $ANALYSIS_PROFILE or the built-in profile)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
