// Package server provides the operational HTTP endpoint: liveness,
// last-cycle status, and prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/HerbHall/dockpulse/internal/monitor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// StatusSource reports the last completed monitoring cycle.
// Defined here (consumer-side) rather than importing the concrete engine.
type StatusSource interface {
	LastReport() (monitor.CycleReport, bool)
}

// Server is the dockpulse ops HTTP server.
type Server struct {
	httpServer *http.Server
	source     StatusSource
	logger     *zap.Logger
}

// New creates a server exposing /healthz, /api/v1/status and /metrics.
func New(addr string, source StatusSource, registry *prometheus.Registry, logger *zap.Logger) *Server {
	s := &Server{
		source: source,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Start begins serving. Blocks until Shutdown is called or serving fails.
func (s *Server) Start() error {
	s.logger.Info("ops server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleStatus returns the snapshot and events of the last completed
// cycle, or 503 if no cycle has completed yet.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	report, ok := s.source.LastReport()
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "no cycle completed yet"})
		return
	}

	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.logger.Warn("failed to encode status response", zap.Error(err))
	}
}
