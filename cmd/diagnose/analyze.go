package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-diagnostics/internal/diagnostics"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a résumé and print the full diagnostics as JSON",
	RunE:  runAnalyze,
}

var (
	analyzeFile   string
	analyzeText   string
	analyzeJD     string
	analyzeJDFile string
	analyzeOutput string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to a PDF, DOCX or text résumé")
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "Résumé text given inline")
	analyzeCmd.Flags().StringVar(&analyzeJD, "jd", "", "Job description text")
	analyzeCmd.Flags().StringVar(&analyzeJDFile, "jd-file", "", "Path to a job description file")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Write JSON to this file instead of stdout")
	analyzeCmd.MarkFlagsMutuallyExclusive("file", "text")
	analyzeCmd.MarkFlagsOneRequired("file", "text")
	analyzeCmd.MarkFlagsMutuallyExclusive("jd", "jd-file")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	resumeText := analyzeText
	if analyzeFile != "" {
		if resumeText, err = readDocument(ctx, analyzeFile); err != nil {
			return err
		}
	}

	jd := analyzeJD
	if analyzeJDFile != "" {
		raw, err := os.ReadFile(analyzeJDFile)
		if err != nil {
			return fmt.Errorf("failed to read job description file %s: %w", analyzeJDFile, err)
		}
		jd = string(raw)
	}

	result := engine.Analyze(diagnostics.Input{ResumeText: resumeText, JobDescription: jd})
	return writeJSON(cmd.OutOrStdout(), analyzeOutput, result)
}
