package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"

	"github.com/rshade/tablekit/internal/tabular"
)

// Scope selects which rows an export includes.
type Scope int

const (
	// ScopePage exports the visible page only.
	ScopePage Scope = iota
	// ScopeAll exports every filtered row in sorted order.
	ScopeAll
)

// xlsxSheet is the name of the single sheet written by XLSX exports.
const xlsxSheet = "Data"

func scopedRows(vm *tabular.ViewModel, scope Scope) []tabular.Row {
	if scope == ScopeAll {
		return vm.FilteredRows()
	}
	return vm.VisibleRows()
}

// CSV writes a header of column titles followed by one record per row.
func CSV(w io.Writer, vm *tabular.ViewModel, scope Scope) error {
	cols := vm.Columns()
	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Title()
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	record := make([]string, len(cols))
	for _, row := range scopedRows(vm, scope) {
		for i, c := range cols {
			record[i] = CellText(row[c.Key])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// CSVFile writes the CSV export to path, creating parent directories.
func CSVFile(path string, vm *tabular.ViewModel, scope Scope) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err = CSV(f, vm, scope); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// XLSX writes the export to a workbook file at path.
func XLSX(path string, vm *tabular.ViewModel, scope Scope) error {
	f, err := buildWorkbook(vm, scope)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// WriteXLSX streams the workbook to w.
func WriteXLSX(w io.Writer, vm *tabular.ViewModel, scope Scope) error {
	f, err := buildWorkbook(vm, scope)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func buildWorkbook(vm *tabular.ViewModel, scope Scope) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if err := fillSheet(f, vm, scope); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func fillSheet(f *excelize.File, vm *tabular.ViewModel, scope Scope) error {
	cols := vm.Columns()
	widths := make([]int, len(cols))

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.Title()
		widths[i] = runewidth.StringWidth(c.Title())
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err = f.SetRowStyle(xlsxSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header row: %w", err)
	}

	for r, row := range scopedRows(vm, scope) {
		values := make([]any, len(cols))
		for i, c := range cols {
			values[i] = xlsxValue(row[c.Key])
			widths[i] = max(widths[i], runewidth.StringWidth(CellText(row[c.Key])))
		}
		cell, cellErr := excelize.CoordinatesToCellName(1, r+2)
		if cellErr != nil {
			return cellErr
		}
		if err = f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", r+1, err)
		}
	}

	for i, w := range widths {
		name, nameErr := excelize.ColumnNumberToName(i + 1)
		if nameErr != nil {
			return nameErr
		}
		if err = f.SetColWidth(xlsxSheet, name, name, float64(min(w, maxCellWidth)+2)); err != nil {
			return fmt.Errorf("sizing column %s: %w", name, err)
		}
	}
	return nil
}

// xlsxValue keeps numbers, booleans and times native so spreadsheets can sort
// and format them.
func xlsxValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string, bool, time.Time:
		return x
	}
	if _, ok := tabular.NumberText(v); ok {
		return v
	}
	return CellText(v)
}
