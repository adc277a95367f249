package store

import "errors"

var (
	// ErrStorage marks any failure of the underlying SQLite layer. A lost
	// local write is a consistency violation, so callers abort the
	// operation that caused it instead of swallowing the error.
	ErrStorage = errors.New("storage failure")

	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("row not found")
)
