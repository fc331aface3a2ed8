// Package dataset supplies column schemas and rows to tablekit views.
//
// A Dataset comes either from the built-in demo set or from a file on disk
// (JSON, YAML, CSV or XLSX). Loaders coerce raw cell values according to the
// column type hints so the view model sorts numbers and dates by value.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/rshade/tablekit/internal/tabular"
)

// Errors returned by loaders.
var (
	ErrUnknownDataset    = errors.New("unknown dataset")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrInvalidValue      = errors.New("invalid cell value")
	ErrNoColumns         = errors.New("dataset has no columns")
)

// Dataset is a column schema plus rows, ready to feed a view model.
type Dataset struct {
	Name     string
	Title    string
	PageSize int
	Columns  []tabular.Column
	Rows     []tabular.Row
	// Source is the file path, or "builtin" for the demo datasets.
	Source string
}

// SourceBuiltin marks datasets that did not come from a file.
const SourceBuiltin = "builtin"

// ViewModel builds a view model over the dataset. The dataset page size is
// applied first so callers can override it with their own options.
func (d *Dataset) ViewModel(opts ...tabular.Option) (*tabular.ViewModel, error) {
	all := make([]tabular.Option, 0, len(opts)+1)
	if d.PageSize > 0 {
		all = append(all, tabular.WithPageSize(d.PageSize))
	}
	all = append(all, opts...)

	vm, err := tabular.New(d.Columns, all...)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", d.Name, err)
	}
	vm.SetRows(d.Rows)
	return vm, nil
}

// DisplayTitle returns the title, falling back to the name.
func (d *Dataset) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Resolve returns the builtin dataset called nameOrPath, or loads it as a file.
func Resolve(nameOrPath string) (*Dataset, error) {
	if ds, ok := Builtin(nameOrPath); ok {
		return ds, nil
	}

	if _, err := os.Stat(nameOrPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q is neither a builtin (%s) nor an existing file",
			ErrUnknownDataset, nameOrPath, strings.Join(Names(), ", "))
	}
	return Load(nameOrPath)
}

// inferColumns builds a sortable schema from the union of row keys, sorted.
func inferColumns(rows []tabular.Row) []tabular.Column {
	seen := make(map[string]struct{})
	for _, r := range rows {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	cols := make([]tabular.Column, len(keys))
	for i, k := range keys {
		cols[i] = tabular.Column{Key: k, Label: k, Sortable: true}
	}
	return cols
}

// normalizeColumns canonicalizes type hint aliases such as "int" or "time".
func normalizeColumns(cols []tabular.Column) error {
	for i := range cols {
		t, err := tabular.ParseColumnType(string(cols[i].Type))
		if err != nil {
			return fmt.Errorf("column %q: %w", cols[i].Key, err)
		}
		cols[i].Type = t
	}
	return nil
}
