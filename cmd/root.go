package cmd

import (
	"errors"
	"os"

	"github.com/abhisek/quizbuddy/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizbuddy",
	Short: "Quiz backend for young learners",
	Long:  "QuizBuddy serves short generated quizzes to kids over HTTP, with a terminal client to play them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite generation event log (overrides QUIZBUDDY_DB)")

	addServeFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

var errNoDB = errors.New("no event database configured: pass --db or set QUIZBUDDY_DB")

// resolveDBPath returns the event log path from --db (highest priority),
// then QUIZBUDDY_DB. An empty result means event logging is off.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = os.Getenv("QUIZBUDDY_DB")
	}
	if p == "" {
		return "", nil
	}
	return p, store.EnsureDir(p)
}

// openEventStore opens the configured event log for the inspection
// commands, which have nothing to show without one.
func openEventStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	if dbPath == "" {
		return nil, errNoDB
	}
	return store.Open(dbPath)
}
