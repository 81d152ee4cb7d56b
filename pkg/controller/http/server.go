package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpad300/godmode-sub015/pkg/domain/model/config"
	"github.com/rpad300/godmode-sub015/pkg/usecase"
	"github.com/rpad300/godmode-sub015/pkg/utils/logging"
	"github.com/rpad300/godmode-sub015/pkg/utils/safe"
)

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	profileConfig *config.ProfileConfig
	maxTokens     int
}

type Options func(*Server)

// WithProfileConfig provides the tracked persons and profile dimensions
func WithProfileConfig(cfg *config.ProfileConfig) Options {
	return func(s *Server) {
		s.profileConfig = cfg
	}
}

// WithMaxTokens overrides the default token budget for analysis requests
func WithMaxTokens(n int) Options {
	return func(s *Server) {
		s.maxTokens = n
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api/projects/{projectID}/persons/{personID}", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/profile", s.handleGetProfile)
		r.Get("/runs", s.handleListRuns)
		r.Get("/evidence", s.handleListPersonEvidence)
	})

	r.Get("/api/projects/{projectID}/evidence", s.handleListEvidence)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, []byte(`{"status":"ok"}`))
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
