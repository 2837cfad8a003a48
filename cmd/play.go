package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/abhisek/quizbuddy/internal/app"
	"github.com/abhisek/quizbuddy/internal/client"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play quizzes in the terminal against a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverURL, _ := cmd.Flags().GetString("server")

		c, err := client.New(serverURL)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		health, err := c.Health(ctx)
		if err != nil {
			return fmt.Errorf("reach server at %s: %w", c.BaseURL(), err)
		}
		if err := checkCompatible(version, health.Version); err != nil {
			return err
		}

		return app.Run(c)
	},
}

func init() {
	playCmd.Flags().String("server", "http://localhost:5000", "Base URL of the quiz service")
}

// checkCompatible requires client and server to share a semver major.
// Development builds and unversioned servers are always accepted.
func checkCompatible(clientVersion, serverVersion string) error {
	cv, sv := canonical(clientVersion), canonical(serverVersion)
	if cv == "" || sv == "" {
		return nil
	}
	if semver.Major(cv) != semver.Major(sv) {
		return fmt.Errorf("server version %s is incompatible with client %s", serverVersion, clientVersion)
	}
	return nil
}

// canonical returns a "v"-prefixed valid semver, or "" for dev builds.
func canonical(v string) string {
	if v == "" || v == "(devel)" || v == "dev" {
		return ""
	}
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
