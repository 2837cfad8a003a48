package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbuddy/internal/config"
	"github.com/abhisek/quizbuddy/internal/logger"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/store"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate one quiz and answer it at the terminal",
	Long: `Generate a quiz in-process and answer it interactively.

This is a stateless developer tool: no server, no profiles, no event log.
Useful for checking prompt quality for a topic and age.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("topic", "", "Quiz topic (required)")
	previewCmd.Flags().Int("age", 8, "Learner age the quiz is pitched at")
	_ = previewCmd.MarkFlagRequired("topic")
}

func runPreview(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	age, _ := cmd.Flags().GetInt("age")

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return fmt.Errorf("topic must not be blank")
	}
	if age <= 0 {
		return fmt.Errorf("invalid age %d", age)
	}
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	ctx := context.Background()
	log := logger.Nop()
	provider := buildProvider(ctx, store.NopEventRepo{}, log)
	gen := quizgen.New(provider, quizgen.DefaultConfig(), log)

	fmt.Printf("Topic: %s (age %d, %s)\n", topic, age, gen.Generator())
	fmt.Println("Generating quiz...")
	fmt.Println()

	res := gen.Generate(ctx, topic, age)
	if res.Source == quizgen.SourceFallback && provider != nil {
		fmt.Println("(generation failed, showing the fallback quiz)")
		fmt.Println()
	}

	correct := playPreview(os.Stdin, os.Stdout, res.Questions)
	fmt.Printf("── Summary: %d/%d correct ──\n", correct, len(res.Questions))
	return nil
}

// playPreview asks each question on out, reads 1-based choices from in and
// returns the number answered correctly. Blank lines skip a question.
func playPreview(in io.Reader, out io.Writer, questions quizgen.QuestionSet) int {
	scanner := bufio.NewScanner(in)
	var correct int

	for i, q := range questions {
		fmt.Fprintf(out, "── Question %d/%d ──\n", i+1, len(questions))
		fmt.Fprintln(out, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, opt)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprintln(out, "(skipped)")
			fmt.Fprintln(out)
			continue
		}

		choice, err := strconv.Atoi(answer)
		if err == nil && choice-1 == q.CorrectAnswer {
			correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Options[q.CorrectAnswer])
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}
	return correct
}
