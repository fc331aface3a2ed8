package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tablekit/internal/tabular"
)

// fileDataset is the on-disk shape of JSON and YAML datasets.
type fileDataset struct {
	Title    string           `json:"title"     yaml:"title"`
	PageSize int              `json:"page_size" yaml:"page_size"`
	Columns  []tabular.Column `json:"columns"   yaml:"columns"`
	Rows     []map[string]any `json:"rows"      yaml:"rows"`
}

// Load reads a dataset file, choosing the decoder by extension.
func Load(path string) (*Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var (
		ds  *Dataset
		err error
	)
	switch ext {
	case ".json":
		ds, err = loadStructured(path, decodeJSON)
	case ".yaml", ".yml":
		ds, err = loadStructured(path, decodeYAML)
	case ".csv":
		ds, err = loadCSV(path)
	case ".xlsx":
		ds, err = loadXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %q (supported: .json, .yaml, .yml, .csv, .xlsx)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", path, err)
	}

	ds.Name = name
	ds.Source = path
	return ds, nil
}

type decodeFunc func(data []byte) (fileDataset, error)

func loadStructured(path string, decode decodeFunc) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fd, err := decode(data)
	if err != nil {
		return nil, err
	}

	rows := make([]tabular.Row, len(fd.Rows))
	for i, r := range fd.Rows {
		rows[i] = tabular.Row(r)
	}

	cols := fd.Columns
	if len(cols) == 0 {
		cols = inferColumns(rows)
	}
	if err = normalizeColumns(cols); err != nil {
		return nil, err
	}
	if err = coerceRows(cols, rows); err != nil {
		return nil, err
	}

	return &Dataset{Title: fd.Title, PageSize: fd.PageSize, Columns: cols, Rows: rows}, nil
}

func decodeJSON(data []byte) (fileDataset, error) {
	var fd fileDataset
	if isArray(data) {
		if err := json.Unmarshal(data, &fd.Rows); err != nil {
			return fd, fmt.Errorf("parsing JSON rows: %w", err)
		}
		return fd, nil
	}
	if err := json.Unmarshal(data, &fd); err != nil {
		return fd, fmt.Errorf("parsing JSON dataset: %w", err)
	}
	return fd, nil
}

func decodeYAML(data []byte) (fileDataset, error) {
	var fd fileDataset
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fd, fmt.Errorf("parsing YAML dataset: %w", err)
	}
	if len(node.Content) == 0 {
		return fd, nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		if err := node.Content[0].Decode(&fd.Rows); err != nil {
			return fd, fmt.Errorf("parsing YAML rows: %w", err)
		}
		return fd, nil
	}
	if err := node.Content[0].Decode(&fd); err != nil {
		return fd, fmt.Errorf("parsing YAML dataset: %w", err)
	}
	return fd, nil
}

func isArray(data []byte) bool {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	return len(trimmed) > 0 && trimmed[0] == '['
}

func loadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var records [][]string
	for {
		rec, readErr := r.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("parsing CSV: %w", readErr)
		}
		records = append(records, rec)
	}
	return fromRecords(records)
}

func loadXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoColumns
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	ds, err := fromRecords(records)
	if err != nil {
		return nil, err
	}
	ds.Title = sheets[0]
	return ds, nil
}

// fromRecords turns a header row plus data rows into a dataset. Every column
// is sortable and its type is inferred from the cells.
func fromRecords(records [][]string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrNoColumns
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	cols := make([]tabular.Column, 0, len(header))
	for _, h := range header {
		key := strings.TrimSpace(h)
		if key == "" {
			continue
		}
		cols = append(cols, tabular.Column{Key: key, Label: key, Sortable: true})
	}
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}

	rows := make([]tabular.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(tabular.Row, len(header))
		for i, h := range header {
			key := strings.TrimSpace(h)
			if key == "" {
				continue
			}
			if i >= len(rec) || strings.TrimSpace(rec[i]) == "" {
				row[key] = nil
				continue
			}
			row[key] = rec[i]
		}
		rows = append(rows, row)
	}

	inferTypes(cols, rows)
	if err := coerceRows(cols, rows); err != nil {
		return nil, err
	}
	return &Dataset{Columns: cols, Rows: rows}, nil
}
