package repository

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on unique-constraint style collisions,
	// e.g. duplicate user emails or shop names.
	ErrConflict = errors.New("already exists")
)
