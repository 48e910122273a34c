package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Compare a résumé with a job description",
	RunE:  runMatch,
}

var (
	matchResumeFile string
	matchJDFile     string
	matchMode       string
)

func init() {
	matchCmd.Flags().StringVarP(&matchResumeFile, "resume-file", "r", "", "Path to the résumé (required)")
	matchCmd.Flags().StringVarP(&matchJDFile, "jd-file", "j", "", "Path to the job description (required)")
	matchCmd.Flags().StringVarP(&matchMode, "mode", "m", "tokens", "Match mode: tokens or skills")

	if err := matchCmd.MarkFlagRequired("resume-file"); err != nil {
		panic(fmt.Sprintf("failed to mark resume-file flag as required: %v", err))
	}
	if err := matchCmd.MarkFlagRequired("jd-file"); err != nil {
		panic(fmt.Sprintf("failed to mark jd-file flag as required: %v", err))
	}

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	engine, err := loadEngine()
	if err != nil {
		return err
	}
	resumeText, err := readDocument(ctx, matchResumeFile)
	if err != nil {
		return err
	}
	jd, err := readDocument(ctx, matchJDFile)
	if err != nil {
		return err
	}

	switch matchMode {
	case "tokens":
		return writeJSON(cmd.OutOrStdout(), "", engine.MatchJobDescription(resumeText, jd))
	case "skills":
		return writeJSON(cmd.OutOrStdout(), "", engine.SkillGap(resumeText, jd))
	default:
		return fmt.Errorf("unknown mode %q: use tokens or skills", matchMode)
	}
}
