// Package pagination maps CLI pagination and sort flags onto a tabular view model.
//
// This package contains shared pagination logic used across CLI commands, including:
//   - Params: CLI flag parsing and validation (1-based pages)
//   - Meta: response metadata for paginated results
//   - ParseSort: "field" or "field:order" sort expressions
package pagination
