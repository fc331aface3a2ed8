package tabular

import "errors"

// Errors returned for contract violations. Out-of-range pages, unknown sort
// keys and non-matching filters are never errors.
var (
	// ErrInvalidPageSize is returned when a page size is zero or negative.
	ErrInvalidPageSize = errors.New("page size must be a positive integer")

	// ErrDuplicateColumn is returned when a column schema repeats a key.
	ErrDuplicateColumn = errors.New("duplicate column key")

	// ErrEmptyColumnKey is returned when a column has an empty key.
	ErrEmptyColumnKey = errors.New("column key cannot be empty")
)
