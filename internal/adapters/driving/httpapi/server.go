// Package httpapi serves the backend endpoints over HTTP for local
// development. It speaks the same wire format the rest client consumes, so
// the TUI can run against `ideapad serve` without the remote service.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/ideapad/internal/core/ports/driven"
	"github.com/custodia-labs/ideapad/internal/logger"
)

// BasePath prefixes every backend endpoint.
const BasePath = "/project2025"

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Ideas    driven.IdeaStore
	Pages    driven.PageStore
	Hashtags driven.HashtagStore

	// AllowedOrigins lists CORS origins. "*" allows any origin.
	AllowedOrigins []string

	// RateLimit is requests per second across all clients. Zero disables limiting.
	RateLimit float64
	Burst     int

	// Registry receives the server metrics. A private registry is used when nil.
	Registry *prometheus.Registry
}

// Server is the development backend.
type Server struct {
	router   *mux.Router
	ideas    driven.IdeaStore
	pages    driven.PageStore
	hashtags driven.HashtagStore
	origins  map[string]bool
	limiter  *rate.Limiter
	metrics  *metrics
	registry *prometheus.Registry
}

// NewServer creates a server and registers its routes.
func NewServer(opts Options) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		router:   mux.NewRouter(),
		ideas:    opts.Ideas,
		pages:    opts.Pages,
		hashtags: opts.Hashtags,
		origins:  make(map[string]bool),
		metrics:  newMetrics(reg),
		registry: reg,
	}
	for _, o := range opts.AllowedOrigins {
		s.origins[o] = true
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := s.router.PathPrefix(BasePath).Subrouter()
	api.Use(s.requestID, s.cors, s.instrument, s.rateLimit)

	api.HandleFunc("/get_user_ideas.php", s.handleListIdeas).Methods(http.MethodGet)
	api.HandleFunc("/capture_idea.php", s.handleCaptureIdea).Methods(http.MethodPost)
	api.HandleFunc("/delete_idea.php", s.handleDeleteIdea).Methods(http.MethodPost)
	api.HandleFunc("/get_ideas_by_hashtag.php", s.handleIdeasByHashtag).Methods(http.MethodGet)

	api.HandleFunc("/left_pane_dynamic_menu_fetch.php", s.handleListPages).Methods(http.MethodGet)
	api.HandleFunc("/save_dynamic_page.php", s.handleSavePage).Methods(http.MethodPost)
	api.HandleFunc("/delete_dynamic_page.php", s.handleDeletePage).Methods(http.MethodPost)

	api.HandleFunc("/pophashtagwindow.php", s.handleSuggestHashtags).Methods(http.MethodGet)
	api.HandleFunc("/create_new_hashtag_from_pop_window.php", s.handleCreateHashtag).Methods(http.MethodPost)
	api.HandleFunc("/fetch_all_hashtag_messages.php", s.handleListHashtags).Methods(http.MethodGet)
	api.HandleFunc("/fetch_messages_by_hashtag.php", s.handleHashtagMessages).Methods(http.MethodGet)

	// Preflight for every endpoint; the cors middleware answers it.
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serve: listening on %s%s", addr, BasePath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("serve: shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
