// Package model contains domain models passed between layers.
package model

import "strings"

// Item represents a registered entry in the registry.
// Fields mirror the OpenAPI schema for /items.
type Item struct {
	ID          int64   `json:"id"`                    // unique, store-assigned, never reused
	Name        string  `json:"name"`                  // required, unique ignoring case and surrounding spaces
	Description *string `json:"description,omitempty"` // optional free-form text
}

// NormalizeName trims surrounding spaces and lowercases a name so that
// uniqueness checks treat "Apple" and " apple " as the same item.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
