// Package repository defines the item store interface and errors.
package repository

import (
	"context"

	"github.com/okian/curio/internal/domain/model"
)

// Item is the stored entity.
type Item = model.Item

// Store provides read/write access to the item collection.
type Store interface {
	// Create assigns the next unused identifier and appends the item.
	// Returns ErrDuplicateName when an item with the same normalized name
	// already exists; the collection is left untouched in that case.
	Create(ctx context.Context, name string, description *string) (Item, error)

	// List returns all items in insertion order. The returned slice is a
	// snapshot; later mutations do not change it.
	List(ctx context.Context) []Item

	// Get returns the item with the given identifier.
	// Returns ErrNotFound if the identifier is unknown.
	Get(ctx context.Context, id int64) (Item, error)

	// Delete removes the item with the given identifier.
	// Returns ErrNotFound if the identifier is unknown; identifiers of
	// deleted items are never reused.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of items currently stored.
	Count(ctx context.Context) int
}
