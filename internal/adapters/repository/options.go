// Package repository defines the item store interface and errors.
package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialCapacity pre-sizes the backing slice and indexes.
func WithInitialCapacity(capacity int) Option {
	return func(s *MemStore) {
		if capacity > 0 && len(s.items) == 0 {
			s.items = make([]Item, 0, capacity)
		}
	}
}
