// Package api exposes the coloring pipeline over HTTP.
//
// The server wraps a [pipeline.Runner], so API requests share the same
// caching and validation behavior as the CLI. Routes:
//
//	GET  /healthz       liveness probe
//	POST /v1/colorings  color a mesh posted as JSON
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/meshtools/meshcolor/pkg/pipeline"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "localhost:8400"

const shutdownTimeout = 10 * time.Second

// Server serves the coloring API.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	logger *log.Logger
	addr   string
}

// NewServer creates a server around an existing runner. A nil logger
// disables request logging.
func NewServer(runner *pipeline.Runner, logger *log.Logger, addr string) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if addr == "" {
		addr = DefaultAddr
	}
	s := &Server{runner: runner, logger: logger, addr: addr}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/colorings", s.handleColoring)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler, so the server can be driven by
// httptest without binding a port.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down api server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	s.logger.Info("api server listening", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}

type ctxKey int

const requestIDKey ctxKey = 0

// requestID assigns a UUID to each request and echoes it in the
// X-Request-ID response header.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// reqID returns the request id assigned by the requestID middleware.
func reqID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
