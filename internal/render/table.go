package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/tablekit/internal/tabular"
)

const (
	// maxCellWidth caps a column's display width; longer cells are truncated.
	maxCellWidth = 40
	columnGap    = "  "
	ellipsis     = "…"

	sortAscMarker  = "▲"
	sortDescMarker = "▼"

	// EmptyMessage is shown in place of rows when nothing passes the filter.
	EmptyMessage = "No data available"
)

//nolint:gochecknoglobals // Shared printer for localized counts.
var printer = message.NewPrinter(language.English)

// HeaderText returns the column title with a sort marker when the column is
// the active sort key.
func HeaderText(c tabular.Column, s tabular.SortState) string {
	if s.ColumnKey != c.Key {
		return c.Title()
	}
	switch s.Direction {
	case tabular.SortAscending:
		return c.Title() + " " + sortAscMarker
	case tabular.SortDescending:
		return c.Title() + " " + sortDescMarker
	default:
		return c.Title()
	}
}

// Footer summarises the pager state, e.g. "Page 2 of 3 · 25 of 40 rows".
func Footer(vm *tabular.ViewModel) string {
	return printer.Sprintf("Page %d of %d · %d of %d rows",
		vm.PageState().PageIndex+1, vm.PageCount(), vm.FilteredCount(), vm.TotalCount())
}

// Table writes the visible page as an aligned plain-text table followed by
// the pager footer.
func Table(w io.Writer, vm *tabular.ViewModel) error {
	cols := vm.Columns()
	rows := vm.VisibleRows()
	sortState := vm.SortState()

	headers := make([]string, len(cols))
	widths := make([]int, len(cols))
	for i, c := range cols {
		headers[i] = HeaderText(c, sortState)
		widths[i] = runewidth.StringWidth(headers[i])
	}

	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i, c := range cols {
			text := runewidth.Truncate(oneLine(CellText(row[c.Key])), maxCellWidth, ellipsis)
			cells[r][i] = text
			widths[i] = max(widths[i], runewidth.StringWidth(text))
		}
	}

	if err := writeLine(w, headers, widths); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	rules := make([]string, len(cols))
	for i := range cols {
		rules[i] = strings.Repeat("-", widths[i])
	}
	if err := writeLine(w, rules, widths); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	if len(rows) == 0 {
		if _, err := fmt.Fprintln(w, EmptyMessage); err != nil {
			return fmt.Errorf("writing empty state: %w", err)
		}
	}
	for _, line := range cells {
		if err := writeLine(w, line, widths); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", Footer(vm)); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}
	return nil
}

func writeLine(w io.Writer, fields []string, widths []int) error {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString(columnGap)
		}
		b.WriteString(runewidth.FillRight(f, widths[i]))
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	return err
}

func oneLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
}
