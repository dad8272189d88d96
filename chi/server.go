// Package chi serves the companion page for browsing, filtering and
// deleting captured content, routed with go-chi.
package chi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/pagekeep/browse"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultAddr is the default listen address of the companion page.
const DefaultAddr = "127.0.0.1:5050"

// DefaultRequestTimeout bounds a single request, including sequential deletes.
const DefaultRequestTimeout = 60 * time.Second

// Server renders a browse.Model over HTTP.
type Server struct {
	model   *browse.Model
	router  chi.Router
	logger  *slog.Logger
	origins []string
	timeout time.Duration
	server  *http.Server

	// ServerURL is shown in error messages when the content server is down.
	ServerURL string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAllowedOrigins sets the CORS allowed origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithRequestTimeout sets the per-request timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// NewServer creates a Server over model.
func NewServer(model *browse.Model, opts ...Option) *Server {
	s := &Server{
		model:   model,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		origins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(rejectCrossSite)
	r.Use(middleware.Heartbeat("/health"))
	r.Use(middleware.Timeout(s.timeout))
	r.Use(middleware.Compress(5))

	r.Get("/", s.handleIndex)
	r.Post("/refresh", s.handleRefresh)
	r.Post("/filter", s.handleFilter)
	r.Post("/filter/clear", s.handleClearFilter)
	r.Post("/select", s.handleSelect)
	r.Post("/select-all", s.handleSelectAll)
	r.Post("/deselect-all", s.handleDeselectAll)
	r.Post("/delete", s.handleDelete)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- s.server.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

// rejectCrossSite refuses state-changing requests sent from other sites'
// pages, such as a plain form post to /delete. Browsers label those with
// Sec-Fetch-Site or an Origin that differs from the host; requests from
// non-browser clients carry neither and pass.
func rejectCrossSite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		switch r.Header.Get("Sec-Fetch-Site") {
		case "cross-site", "same-site":
			http.Error(w, "cross-site request refused", http.StatusForbidden)
			return
		}
		if origin := r.Header.Get("Origin"); origin != "" {
			u, err := url.Parse(origin)
			if err != nil || u.Host != r.Host {
				http.Error(w, "cross-site request refused", http.StatusForbidden)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
