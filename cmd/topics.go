package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbuddy/internal/quizgen"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the suggested quiz topics",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range quizgen.SuggestedTopics() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", t.Emoji, t.Name)
		}
	},
}
