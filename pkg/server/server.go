// Package server exposes the journal over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tableflip.dev/reflectly/pkg/journal"
	"tableflip.dev/reflectly/pkg/motivation"
	"tableflip.dev/reflectly/pkg/views"
)

// Options configures a Server.
type Options struct {
	Journal        *journal.Store
	Motivation     motivation.Source
	Metrics        *Metrics
	Logger         *zap.Logger
	AllowedOrigins []string
	Clock          func() time.Time
}

// Server serves the entries, insights, moods and motivation endpoints.
type Server struct {
	journal  *journal.Store
	history  *views.History
	insights *views.Insights
	source   motivation.Source
	metrics  *Metrics
	logger   *zap.Logger
	origins  []string
	now      func() time.Time

	cancel func()
}

// New builds a server. Close releases its journal subscriptions.
func New(opts Options) *Server {
	if opts.Journal == nil {
		opts.Journal = journal.New(nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	s := &Server{
		journal:  opts.Journal,
		history:  views.NewHistory(opts.Journal),
		insights: views.NewInsights(opts.Journal),
		source:   opts.Motivation,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		origins:  opts.AllowedOrigins,
		now:      opts.Clock,
	}
	s.metrics.Entries.Set(float64(len(opts.Journal.List())))
	s.cancel = opts.Journal.Subscribe(func(snap journal.Snapshot) {
		s.metrics.Entries.Set(float64(len(snap.Entries)))
	})
	return s
}

// Close detaches the server from the journal.
func (s *Server) Close() {
	s.cancel()
	s.history.Stop()
	s.insights.Stop()
}

// Handler configures all routes and middleware.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))
	router.Use(instrument(s.metrics))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", s.healthCheck)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", s.listEntries)
			r.Post("/", s.createEntry)
			r.Get("/{entryID}", s.getEntry)
			r.Put("/{entryID}", s.updateEntry)
			r.Delete("/{entryID}", s.deleteEntry)
		})
		r.Get("/insights", s.getInsights)
		r.Get("/moods", s.listMoods)
		r.Get("/motivation", s.getMotivation)
	})

	return router
}

func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ListenAndServe serves h on addr until ctx is done, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
