// Package render writes a view model's current state as text, structured
// data or spreadsheet exports for non-interactive output.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rshade/tablekit/internal/tabular"
)

// Format is an output format name.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

// ErrUnknownFormat is returned by ParseFormat for unrecognised names.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists every supported format in display order.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatXLSX}
}

// ParseFormat converts a flag value into a Format. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatXLSX:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: table, json, yaml, csv, xlsx)", ErrUnknownFormat, s)
	}
}

// Write renders the visible page of vm to w in the given format.
func Write(w io.Writer, vm *tabular.ViewModel, format Format) error {
	switch format {
	case FormatTable:
		return Table(w, vm)
	case FormatJSON:
		return JSON(w, vm)
	case FormatYAML:
		return YAML(w, vm)
	case FormatCSV:
		return CSV(w, vm, ScopePage)
	case FormatXLSX:
		return WriteXLSX(w, vm, ScopePage)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// CellText returns the display text for a cell value.
func CellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case time.Time:
		return timeText(x)
	case *time.Time:
		if x == nil {
			return ""
		}
		return timeText(*x)
	case fmt.Stringer:
		return x.String()
	}
	if s, ok := tabular.NumberText(v); ok {
		return s
	}
	return fmt.Sprint(v)
}

// timeText prints dates without a time of day as YYYY-MM-DD.
func timeText(t time.Time) string {
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format(time.DateOnly)
	}
	return u.Format(time.RFC3339)
}
