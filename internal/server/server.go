// Package server implements the toldot HTTP API.
//
// Routes:
//
//	GET /healthz                          liveness and dataset summary
//	GET /metrics                          Prometheus metrics
//	GET /api/timeline/people              filtered dataset (the source payload shape)
//	GET /api/timeline/people/{slug}       one person
//	GET /api/timeline/bounds              year domain and ticks
//	GET /api/timeline/layout              positioned period blocks
//	GET /api/timeline/render.{format}     rendered timeline (svg, png, pdf, json, txt, dot)
//	GET /api/timeline/hierarchy.svg       Graphviz hierarchy diagram
//
// Every timeline route accepts the filter query parameters of pkg/filter.
// Layout and render responses are cached through the runner's cache.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/toldot/toldot/pkg/pipeline"
	"github.com/toldot/toldot/pkg/source"
	"github.com/toldot/toldot/pkg/timeline"
)

// Timeouts applied to the HTTP server.
const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 60 * time.Second
	IdleTimeout     = 120 * time.Second
	ShutdownTimeout = 10 * time.Second
	RequestTimeout  = 45 * time.Second
)

// Server serves one dataset. The dataset is loaded once and replaced by
// [Server.Reload]; requests in flight keep the snapshot they started with.
type Server struct {
	runner *pipeline.Runner
	base   pipeline.Options
	logger *log.Logger
	router chi.Router

	mu       sync.RWMutex
	dataset  timeline.Dataset
	loadedAt time.Time
	reloads  int
}

// New creates a server that loads base.Source through runner. base also
// supplies the render and layout defaults that query parameters override.
func New(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner: runner,
		base:   base,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/timeline", func(r chi.Router) {
		r.Use(chimw.Timeout(RequestTimeout))
		r.Get("/people", s.handlePeople)
		r.Get("/people/{slug}", s.handlePerson)
		r.Get("/bounds", s.handleBounds)
		r.Get("/layout", s.handleLayout)
		r.Get("/render.{format}", s.handleRender)
		r.Get("/hierarchy.svg", s.handleHierarchy)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Reload loads the dataset again, bypassing the dataset cache. On failure
// the previous dataset stays in place.
func (s *Server) Reload(ctx context.Context) error {
	opts := s.base
	opts.Refresh = true
	opts.Formats = nil
	ds, err := s.runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.dataset = ds
	s.loadedAt = time.Now()
	s.reloads++
	s.mu.Unlock()

	s.logger.Info("dataset loaded", "source", s.base.Source, "people", len(ds.People), "periods", len(ds.Periods))
	return nil
}

// snapshot returns the current dataset.
func (s *Server) snapshot() (timeline.Dataset, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset, s.loadedAt
}

// Watch reloads the dataset whenever path changes, until ctx is done.
func (s *Server) Watch(ctx context.Context, path string) error {
	w, err := source.NewWatcher(path, source.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	go w.Run(ctx)

	s.logger.Info("watching dataset", "path", path)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.Changes():
				if err := s.Reload(ctx); err != nil {
					s.logger.Error("reload failed, keeping previous dataset", "error", err)
				}
			case err := <-w.Errors():
				s.logger.Warn("watcher error", "error", err)
			}
		}
	}()
	return nil
}

// Run loads the dataset, optionally watches a local dataset file and serves
// on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, watch bool) error {
	if err := s.Reload(ctx); err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if watch && s.watchable() {
		if err := s.Watch(ctx, s.base.Source); err != nil {
			s.logger.Warn("hot reload disabled", "error", err)
		}
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// watchable reports whether the configured source is a local file.
func (s *Server) watchable() bool {
	src, err := pipeline.OpenSource(s.base)
	if err != nil {
		return false
	}
	_, ok := src.(*source.FileSource)
	return ok
}
