// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	"github.com/okian/curio/internal/adapters/repository"
	"github.com/okian/curio/internal/domain/model"
	"github.com/okian/curio/pkg/logger"
)

// Service implements the API dependencies for the item registry.
type Service struct {
	mu sync.Mutex

	// Core components
	store repository.Store

	// Configuration
	initialCapacity int
	seedItems       []string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a pre-built store. Used by tests; Start builds a
// MemStore when none is provided.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithInitialCapacity pre-sizes the default store.
func WithInitialCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.initialCapacity = capacity
		}
	}
}

// WithSeedItems pre-populates the store with named items at startup.
func WithSeedItems(names []string) Option {
	return func(s *Service) {
		s.seedItems = names
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		logger: nil, // resolved at Start when not injected
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting item registry service")

	if s.store == nil {
		var opts []repository.Option
		if s.initialCapacity > 0 {
			opts = append(opts, repository.WithInitialCapacity(s.initialCapacity))
		}
		s.store = repository.NewMemStore(ctx, opts...)
	}

	for _, name := range s.seedItems {
		if _, err := s.store.Create(ctx, name, nil); err != nil {
			s.logger.Warn(ctx, "skipping seed item", logger.String("name", name), logger.Error(err))
		}
	}

	s.started = true
	return nil
}

// Stop tears the service down. The store is in-memory only, so there is
// nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// CreateItem validates uniqueness via the store and returns the stored item
// with its assigned identifier.
func (s *Service) CreateItem(ctx context.Context, name string, description *string) (model.Item, error) {
	item, err := s.store.Create(ctx, name, description)
	if err != nil {
		s.logger.Warn(ctx, "item create rejected", logger.String("name", name), logger.Error(err))
		return model.Item{}, err
	}
	s.logger.Info(ctx, "created item", logger.Int64("id", item.ID), logger.String("name", item.Name))
	return item, nil
}

// ListItems returns a snapshot of all stored items in insertion order.
func (s *Service) ListItems(ctx context.Context) []model.Item {
	items := s.store.List(ctx)
	s.logger.Info(ctx, "list items", logger.Int("count", len(items)))
	return items
}

// GetItem returns the item for the given identifier.
func (s *Service) GetItem(ctx context.Context, id int64) (model.Item, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		s.logger.Warn(ctx, "item not found", logger.Int64("id", id))
		return model.Item{}, err
	}
	s.logger.Info(ctx, "retrieved item", logger.Int64("id", item.ID))
	return item, nil
}

// DeleteItem removes the item for the given identifier.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn(ctx, "item not found for deletion", logger.Int64("id", id))
		return err
	}
	s.logger.Info(ctx, "deleted item", logger.Int64("id", id))
	return nil
}

// GetStats returns current service statistics for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	count := 0
	if s.store != nil {
		count = s.store.Count(context.Background())
	}

	return map[string]interface{}{
		"started":   started,
		"itemCount": count,
		"seedItems": len(s.seedItems),
	}
}
