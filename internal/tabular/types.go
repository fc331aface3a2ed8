package tabular

import (
	"fmt"
	"strings"
)

// DefaultPageSize is the page size used when none is supplied.
const DefaultPageSize = 10

// ColumnType is an optional hint describing how raw values for a column should
// be coerced by data loaders. The view model compares values by their runtime
// type and does not consult the hint.
type ColumnType string

// Column type hints.
const (
	TypeAuto   ColumnType = ""
	TypeString ColumnType = "string"
	TypeNumber ColumnType = "number"
	TypeBool   ColumnType = "bool"
	TypeDate   ColumnType = "date"
)

// ParseColumnType converts a user supplied hint into a ColumnType.
// Unknown hints return an error.
func ParseColumnType(s string) (ColumnType, error) {
	switch ColumnType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeAuto, "auto":
		return TypeAuto, nil
	case TypeString, "text":
		return TypeString, nil
	case TypeNumber, "int", "float":
		return TypeNumber, nil
	case TypeBool, "boolean":
		return TypeBool, nil
	case TypeDate, "time", "timestamp":
		return TypeDate, nil
	default:
		return TypeAuto, fmt.Errorf("unknown column type %q", s)
	}
}

// Column describes one field of the schema. Key must be unique within a table.
type Column struct {
	Key      string     `json:"key"                yaml:"key"`
	Label    string     `json:"label"              yaml:"label"`
	Sortable bool       `json:"sortable"           yaml:"sortable"`
	Type     ColumnType `json:"type,omitempty"     yaml:"type,omitempty"`
}

// Title returns the label, falling back to the key when no label is set.
func (c Column) Title() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Key
}

// Row maps column keys to values. Supported value types are string, the Go
// integer and float kinds, bool, time.Time, *time.Time and nil. Keys that are
// absent are treated the same as nil.
type Row map[string]any

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	// SortNone indicates no sorting; rows keep their insertion order.
	SortNone SortDirection = iota
	// SortAscending indicates ascending sort order.
	SortAscending
	// SortDescending indicates descending sort order.
	SortDescending
)

// String returns the string representation of a SortDirection.
func (sd SortDirection) String() string {
	switch sd {
	case SortNone:
		return "none"
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return fmt.Sprintf("unknown(%d)", int(sd))
	}
}

// next returns the following phase of the tri-state toggle.
func (sd SortDirection) next() SortDirection {
	switch sd {
	case SortNone:
		return SortAscending
	case SortAscending:
		return SortDescending
	default:
		return SortNone
	}
}

// SortState represents the current sorting configuration.
type SortState struct {
	// ColumnKey is the active sort column, empty when unsorted.
	ColumnKey string `json:"column_key,omitempty" yaml:"column_key,omitempty"`
	// Direction is the sort direction.
	Direction SortDirection `json:"direction" yaml:"direction"`
}

// IsSorted returns true if this state represents an active sort.
func (s SortState) IsSorted() bool {
	return s.ColumnKey != "" && s.Direction != SortNone
}

// FilterState holds the normalized filter query. An empty query matches every row.
type FilterState struct {
	Query string `json:"query" yaml:"query"`
}

// Active reports whether a non-empty filter is applied.
func (f FilterState) Active() bool {
	return f.Query != ""
}

// PageState holds the zero-based page index and the page size.
type PageState struct {
	PageIndex int `json:"page_index" yaml:"page_index"`
	PageSize  int `json:"page_size"  yaml:"page_size"`
}

// Offset returns the index of the first row on the current page.
func (p PageState) Offset() int {
	return p.PageIndex * p.PageSize
}
