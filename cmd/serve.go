package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/quizbuddy/internal/config"
	"github.com/abhisek/quizbuddy/internal/llm"
	"github.com/abhisek/quizbuddy/internal/logger"
	"github.com/abhisek/quizbuddy/internal/profile"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/server"
	"github.com/abhisek/quizbuddy/internal/session"
	"github.com/abhisek/quizbuddy/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP quiz service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("port", "", "Listen port (overrides PORT)")
	cmd.Flags().String("static", "", "Frontend bundle directory (overrides QUIZBUDDY_STATIC_DIR)")
	cmd.Flags().Bool("debug", false, "Force development logging")
}

// loadServeConfig layers flags over the environment.
func loadServeConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := config.FromEnv()

	if p, _ := cmd.Flags().GetString("port"); p != "" {
		cfg.Port = p
	}
	if dir, _ := cmd.Flags().GetString("static"); dir != "" {
		cfg.StaticDir = dir
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Mode = config.ModeDebug
	}
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve database path: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(string(cfg.Mode))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var events store.EventRepo = store.NopEventRepo{}
	if cfg.DBPath != "" {
		if err := store.EnsureDir(cfg.DBPath); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		events = st.EventRepo()
		log.Info("generation event log enabled", "path", cfg.DBPath)
	}

	provider := buildProvider(ctx, events, log)
	quizzes := quizgen.New(provider, quizgen.DefaultConfig(), log)

	srv := server.New(profile.NewStore(), session.NewStore(), quizzes, log, server.Options{
		StaticDir:      cfg.StaticDir,
		RequestTimeout: cfg.RequestTimeout,
		Version:        version,
	})
	httpSrv := srv.HTTPServer(cfg.Addr(), cfg.ReadTimeout, cfg.WriteTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", httpSrv.Addr, "mode", cfg.Mode, "generator", quizzes.Generator())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildProvider returns nil when no credential is configured or the
// provider fails to initialize; quizzes then come from the fallback set.
func buildProvider(ctx context.Context, events store.EventRepo, log *logger.Logger) llm.Provider {
	llmCfg, ok := llm.ConfigFromEnv()
	if !ok {
		log.Warn("no LLM credential found, serving fallback quizzes only")
		return nil
	}
	provider, err := llm.NewProvider(ctx, llmCfg, events, log)
	if err != nil {
		log.Warn("LLM provider unavailable, serving fallback quizzes only", "provider", llmCfg.Provider, "error", err)
		return nil
	}
	return provider
}
