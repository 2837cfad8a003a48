// Package server exposes the quiz service over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/quizbuddy/internal/logger"
	"github.com/abhisek/quizbuddy/internal/profile"
	"github.com/abhisek/quizbuddy/internal/quizgen"
	"github.com/abhisek/quizbuddy/internal/session"
)

// QuizGenerator produces quizzes; *quizgen.Adapter satisfies it.
type QuizGenerator interface {
	Generate(ctx context.Context, topic string, age int) quizgen.Result
	Generator() string
}

// Options configures the HTTP surface.
type Options struct {
	// StaticDir holds the frontend bundle served at "/". Empty disables it.
	StaticDir string

	// RequestTimeout bounds each request. Zero disables the limit.
	RequestTimeout time.Duration

	// Version is reported by /healthz.
	Version string
}

// Server holds the stores and the generator behind the routes.
type Server struct {
	profiles *profile.Store
	sessions *session.Store
	quizzes  QuizGenerator
	log      *logger.Logger
	opts     Options
}

// New creates a Server. A nil logger discards output.
func New(profiles *profile.Store, sessions *session.Store, quizzes QuizGenerator, log *logger.Logger, opts Options) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		profiles: profiles,
		sessions: sessions,
		quizzes:  quizzes,
		log:      log,
		opts:     opts,
	}
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(s.log), middleware.Recoverer)
	if s.opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.opts.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/topics", s.handleTopics)

		r.Post("/profile", s.handleCreateProfile)
		r.Route("/profile/{profileID}", func(r chi.Router) {
			r.Get("/", s.handleGetProfile)
			r.Get("/achievements", s.handleAchievements)
		})

		r.Route("/quiz", func(r chi.Router) {
			r.Post("/generate", s.handleGenerateQuiz)
			r.Post("/answer", s.handleSubmitAnswer)
			r.Get("/session/{sessionID}", s.handleGetSession)
		})
	})

	static := staticHandler(s.opts.StaticDir)
	r.Get("/", static)
	r.Get("/*", static)

	return r
}

// HTTPServer wraps Routes in an *http.Server with the given timeouts.
func (s *Server) HTTPServer(addr string, readTimeout, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}
}
