package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Rank job roles for a skill list",
	RunE:  runRoles,
}

var (
	rolesSkills []string
	rolesYears  float64
)

func init() {
	rolesCmd.Flags().StringSliceVarP(&rolesSkills, "skills", "s", nil, "Comma-separated skills (required)")
	rolesCmd.Flags().Float64VarP(&rolesYears, "years", "y", 0, "Years of experience")

	if err := rolesCmd.MarkFlagRequired("skills"); err != nil {
		panic(fmt.Sprintf("failed to mark skills flag as required: %v", err))
	}

	rootCmd.AddCommand(rolesCmd)
}

type rolesOutput struct {
	SuggestedRole string `json:"suggested_role"`
	Suggestions   any    `json:"suggestions"`
}

func runRoles(cmd *cobra.Command, _ []string) error {
	if rolesYears < 0 {
		return fmt.Errorf("years must not be negative")
	}
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	skills := make([]string, 0, len(rolesSkills))
	for _, s := range rolesSkills {
		if trimmed := strings.ToLower(strings.TrimSpace(s)); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}

	return writeJSON(cmd.OutOrStdout(), "", rolesOutput{
		SuggestedRole: engine.SuggestRole(skills, rolesYears),
		Suggestions:   engine.RecommendRoles(skills, rolesYears),
	})
}
