// Package tabular provides a framework-agnostic view model for tabular data.
//
// A ViewModel owns an in-memory row set and a column schema and derives the
// visible slice on every state change using a fixed pipeline:
//   - Filter: case-insensitive substring match across schema columns
//   - Sort: stable, type-aware, single active column with a tri-state toggle
//   - Paginate: zero-based page index clamped into the filtered range
//
// The source rows are never reordered or mutated. A ViewModel holds no
// internal synchronization; callers that share one across goroutines must
// serialize access themselves.
package tabular
