package repository

import "errors"

// Sentinel kinds for item store errors.
var (
	ErrNotFound      = errors.New("item not found")
	ErrDuplicateName = errors.New("item with this name already exists")
)
