package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeDebug      Mode = "debug"
	ModeProduction Mode = "production"
)

// Config holds the HTTP service settings.
type Config struct {
	Mode Mode
	Port string

	// StaticDir is the prebuilt frontend bundle served at "/".
	StaticDir string

	// DBPath is the SQLite generation event log. Empty disables it.
	DBPath string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Production reports whether the service runs with production behaviour.
func (c Config) Production() bool {
	return c.Mode == ModeProduction
}

// LoadDotEnv reads .env files into the process environment. Variables that
// are already set win; a missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func FromEnv() Config {
	mode := ModeDebug
	env := envOr("QUIZBUDDY_ENV", os.Getenv("FLASK_ENV"))
	if strings.EqualFold(env, "production") || strings.EqualFold(env, "prod") {
		mode = ModeProduction
	}
	return Config{
		Mode:            mode,
		Port:            envOr("PORT", "5000"),
		StaticDir:       envOr("QUIZBUDDY_STATIC_DIR", "dist"),
		DBPath:          os.Getenv("QUIZBUDDY_DB"),
		ReadTimeout:     envDuration("QUIZBUDDY_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    envDuration("QUIZBUDDY_WRITE_TIMEOUT", 60*time.Second),
		RequestTimeout:  envDuration("QUIZBUDDY_REQUEST_TIMEOUT", 45*time.Second),
		ShutdownTimeout: envDuration("QUIZBUDDY_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Addr is the listen address for the configured port.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
