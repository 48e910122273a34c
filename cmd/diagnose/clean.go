package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resume-diagnostics/internal/diagnostics/textnorm"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Rewrite a résumé as ATS-friendly plain text",
	RunE:  runClean,
}

var (
	cleanFile   string
	cleanOutput string
)

func init() {
	cleanCmd.Flags().StringVarP(&cleanFile, "file", "f", "", "Path to the résumé (required)")
	cleanCmd.Flags().StringVarP(&cleanOutput, "out", "o", "", "Write text to this file instead of stdout")

	if err := cleanCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	text, err := readDocument(cmd.Context(), cleanFile)
	if err != nil {
		return err
	}
	cleaned := textnorm.CleanForATS(text)
	if cleaned != "" {
		cleaned += "\n"
	}
	return writeOutput(cmd.OutOrStdout(), cleanOutput, []byte(cleaned))
}
