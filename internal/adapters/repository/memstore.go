package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/curio/internal/domain/model"
	"github.com/okian/curio/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultInitialCapacity = 64
	firstID                = 1
)

// MemStore implements Store with an insertion-ordered slice guarded by a
// read-write mutex. Identifiers start at 1 and increase strictly; deletion
// never frees an identifier for reuse.
type MemStore struct {
	mu     sync.RWMutex
	items  []model.Item
	byID   map[int64]int    // id -> position in items
	byName map[string]int64 // normalized name -> id
	nextID int64
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		items:  make([]model.Item, 0, defaultInitialCapacity),
		byID:   make(map[int64]int, defaultInitialCapacity),
		byName: make(map[string]int64, defaultInitialCapacity),
		nextID: firstID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create assigns the next identifier and appends the item.
func (s *MemStore) Create(_ context.Context, name string, description *string) (model.Item, error) {
	start := time.Now()
	defer observe("create", start)

	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := model.NormalizeName(name)
	if _, exists := s.byName[normalized]; exists {
		metrics.RecordDuplicateName()
		return model.Item{}, ErrDuplicateName
	}

	item := model.Item{
		ID:          s.nextID,
		Name:        name,
		Description: description,
	}
	s.nextID++

	s.byID[item.ID] = len(s.items)
	s.byName[normalized] = item.ID
	s.items = append(s.items, item)

	metrics.RecordItemCreated()
	metrics.UpdateItemsTotal(len(s.items))
	return item, nil
}

// List returns a snapshot of all items in insertion order.
func (s *MemStore) List(_ context.Context) []model.Item {
	start := time.Now()
	defer observe("list", start)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with the given identifier.
func (s *MemStore) Get(_ context.Context, id int64) (model.Item, error) {
	start := time.Now()
	defer observe("get", start)

	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.byID[id]
	if !ok {
		metrics.RecordNotFoundLookup()
		return model.Item{}, ErrNotFound
	}
	return s.items[pos], nil
}

// Delete removes the item with the given identifier.
func (s *MemStore) Delete(_ context.Context, id int64) error {
	start := time.Now()
	defer observe("delete", start)

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.byID[id]
	if !ok {
		metrics.RecordNotFoundLookup()
		return ErrNotFound
	}

	delete(s.byName, model.NormalizeName(s.items[pos].Name))
	delete(s.byID, id)

	// Close the gap, preserving insertion order for later items.
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	for i := pos; i < len(s.items); i++ {
		s.byID[s.items[i].ID] = i
	}

	metrics.RecordItemDeleted()
	metrics.UpdateItemsTotal(len(s.items))
	return nil
}

// Count returns the number of items currently stored.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func observe(op string, start time.Time) {
	metrics.RecordStoreOpDuration(op, float64(time.Since(start).Microseconds())/1000.0)
}
