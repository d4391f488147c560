// Package server exposes a loaded graph over HTTP: a browser shell page,
// the dataset and color artifacts, and a websocket endpoint where each
// connection gets its own interactive graph session.
package server

import (
	"context"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/oakbrad/dungeonchurch-oracle/internal/config"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/force"
	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
)

// Server serves the graph visualization for one dataset.
type Server struct {
	cfg     *config.Config
	dataset *graph.Dataset
	colors  *graph.ColorTable
	tuning  force.Tuning
	logger  *charmlog.Logger

	router     chi.Router
	httpServer *http.Server
}

// New creates a server over a loaded dataset.
func New(cfg *config.Config, d *graph.Dataset, colors *graph.ColorTable, tuning force.Tuning, logger *charmlog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		dataset: d,
		colors:  colors,
		tuning:  tuning,
		logger:  logger,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleShell)
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/dataset", s.handleDataset)
	r.Get("/api/colors", s.handleColors)
	r.Get("/ws", s.handleWebSocket)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// requestLogger logs completed requests at debug level. Websocket upgrades
// stay open for the session lifetime, so they are logged on connect instead.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleDataset serves the dataset artifact as produced by the extraction
// pipeline, without runtime layout state.
func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, s.cfg.Dataset)
}

func (s *Server) handleColors(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.cfg.Colors == "" {
		w.Write([]byte(`{}`))
		return
	}
	http.ServeFile(w, r, s.cfg.Colors)
}

// Start listens on the configured address until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", s.cfg.Listen, "dataset", s.dataset.String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
