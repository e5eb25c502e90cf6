// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ruanlop/placarlive/internal/render"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the app service.
type Dependencies interface {
	// Snapshot returns the latest display model.
	Snapshot() render.DisplayModel

	// GetStats reports operational counters.
	GetStats() map[string]interface{}

	// ForceAnimation enqueues a debug notification for a category.
	ForceAnimation(ctx context.Context, category string) error
}

// Server wires HTTP routes for the live-match API.
type Server struct {
	healthHandler   *HealthHandler
	snapshotHandler *SnapshotHandler
	statsHandler    *StatsHandler
	animateHandler  *AnimateHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		snapshotHandler: NewSnapshotHandler(deps),
		statsHandler:    NewStatsHandler(deps),
		animateHandler:  NewAnimateHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/snapshot", MetricsMiddleware(s.snapshotHandler.HandleGetSnapshot, "snapshot"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/debug/animate", MetricsMiddleware(s.animateHandler.HandleAnimate, "animate"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
