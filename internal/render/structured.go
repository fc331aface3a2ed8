package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rshade/tablekit/internal/cli/pagination"
	"github.com/rshade/tablekit/internal/tabular"
)

// Document is the structured form of a rendered page.
type Document struct {
	Columns    []tabular.Column `json:"columns"          yaml:"columns"`
	Rows       []map[string]any `json:"rows"             yaml:"rows"`
	Sort       *SortInfo        `json:"sort,omitempty"   yaml:"sort,omitempty"`
	Filter     string           `json:"filter,omitempty" yaml:"filter,omitempty"`
	Pagination pagination.Meta  `json:"pagination"       yaml:"pagination"`
}

// SortInfo describes the active sort in a Document.
type SortInfo struct {
	Column    string `json:"column"    yaml:"column"`
	Direction string `json:"direction" yaml:"direction"`
}

// NewDocument captures the visible page of vm.
func NewDocument(vm *tabular.ViewModel) Document {
	doc := Document{
		Columns:    vm.Columns(),
		Rows:       project(vm.Columns(), vm.VisibleRows()),
		Filter:     vm.FilterState().Query,
		Pagination: pagination.NewMeta(vm),
	}
	if s := vm.SortState(); s.IsSorted() {
		doc.Sort = &SortInfo{Column: s.ColumnKey, Direction: s.Direction.String()}
	}
	return doc
}

// JSON writes the visible page as indented JSON.
func JSON(w io.Writer, vm *tabular.ViewModel) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(vm)); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// YAML writes the visible page as YAML.
func YAML(w io.Writer, vm *tabular.ViewModel) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(vm)); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing YAML: %w", err)
	}
	return nil
}

// project limits rows to the schema columns. With an empty schema rows are
// returned unchanged.
func project(cols []tabular.Column, rows []tabular.Row) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		if len(cols) == 0 {
			out[i] = map[string]any(r)
			continue
		}
		m := make(map[string]any, len(cols))
		for _, c := range cols {
			m[c.Key] = r[c.Key]
		}
		out[i] = m
	}
	return out
}
