// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/curio/internal/adapters/repository"
	"github.com/okian/curio/internal/domain/model"
)

// Item mirrors the read shape returned by registry queries.
type Item = model.Item

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// CreateItem stores a new item and returns it with its assigned id.
	CreateItem(ctx context.Context, name string, description *string) (Item, error)

	// ListItems returns all items in insertion order.
	ListItems(ctx context.Context) []Item

	// GetItem returns the item for id, or a not-found error.
	GetItem(ctx context.Context, id int64) (Item, error)

	// DeleteItem removes the item for id, or returns a not-found error.
	DeleteItem(ctx context.Context, id int64) error
}

// Server wires HTTP routes for the registry API.
type Server struct {
	healthHandler  *HealthHandler
	metricsHandler *MetricsHandler
	statsHandler   *StatsHandler
	itemsHandler   *ItemsHandler
}

// NewServer creates a new API server with all handlers. env is the
// deployment environment reported by /health.
func NewServer(deps Dependencies, statsProvider StatsProvider, env string) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(env),
		metricsHandler: NewMetricsHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		itemsHandler:   NewItemsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/health", RequestIDMiddleware(MetricsMiddleware(s.healthHandler.HandleHealth, "health")))
	mux.HandleFunc("/metrics", s.metricsHandler.HandleMetrics)
	mux.HandleFunc("/stats", RequestIDMiddleware(MetricsMiddleware(s.statsHandler.HandleStats, "stats")))
	mux.HandleFunc("/items", RequestIDMiddleware(MetricsMiddleware(s.itemsHandler.HandleCollection, "items")))
	mux.HandleFunc("/items/", RequestIDMiddleware(MetricsMiddleware(s.itemsHandler.HandleItem, "item")))
}

// createItemRequest mirrors the OpenAPI schema for POST /items.
type createItemRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (c createItemRequest) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("missing name")
	}
	return nil
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

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
