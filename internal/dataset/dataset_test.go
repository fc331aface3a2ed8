package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rshade/tablekit/internal/tabular"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"products", "projects", "users"}, Names())
}

func TestBuiltin_Users(t *testing.T) {
	ds, ok := Builtin("users")
	require.True(t, ok)
	assert.Equal(t, 50, ds.PageSize)
	assert.Len(t, ds.Rows, 5)
	assert.Equal(t, SourceBuiltin, ds.Source)

	vm, err := ds.ViewModel()
	require.NoError(t, err)
	assert.Equal(t, 50, vm.PageState().PageSize)

	// Email is not sortable.
	vm.SetSort("email")
	assert.False(t, vm.SortState().IsSorted())

	vm.SetSort("name")
	assert.Equal(t, "Alice Williams", vm.VisibleRows()[0]["name"])
}

func TestBuiltin_ReturnsFreshCopies(t *testing.T) {
	a, _ := Builtin("products")
	a.Rows[0]["name"] = "changed"
	b, _ := Builtin("products")
	assert.Equal(t, "Laptop Pro", b.Rows[0]["name"])
}

func TestBuiltin_ProjectsSortByDueDate(t *testing.T) {
	ds, ok := Builtin("projects")
	require.True(t, ok)
	vm, err := ds.ViewModel()
	require.NoError(t, err)

	vm.SetSort("dueDate")
	assert.Equal(t, "API Integration", vm.VisibleRows()[0]["name"])

	vm.SetFilter("2025-12-01")
	require.Equal(t, 1, vm.FilteredCount())
	assert.Equal(t, "Mobile App", vm.VisibleRows()[0]["name"])
}

func TestBuiltin_Unknown(t *testing.T) {
	_, ok := Builtin("nope")
	assert.False(t, ok)
}

func TestViewModel_OptionsOverridePageSize(t *testing.T) {
	ds, _ := Builtin("users")
	vm, err := ds.ViewModel(tabular.WithPageSize(2))
	require.NoError(t, err)
	assert.Equal(t, 2, vm.PageState().PageSize)
	assert.Len(t, vm.VisibleRows(), 2)
}

func TestLoad_JSONObject(t *testing.T) {
	path := writeFile(t, "people.json", `{
		"title": "People",
		"page_size": 2,
		"columns": [
			{"key": "id", "label": "ID", "sortable": true, "type": "int"},
			{"key": "joined", "label": "Joined", "sortable": true, "type": "date"},
			{"key": "admin", "label": "Admin", "type": "bool"}
		],
		"rows": [
			{"id": "2", "joined": "2024-03-01", "admin": "true"},
			{"id": 1, "joined": "2023-01-15T10:00:00Z", "admin": false},
			{"id": 3, "joined": "", "admin": null}
		]
	}`)

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "people", ds.Name)
	assert.Equal(t, "People", ds.Title)
	assert.Equal(t, 2, ds.PageSize)
	assert.Equal(t, path, ds.Source)
	assert.Equal(t, tabular.TypeNumber, ds.Columns[0].Type)

	assert.Equal(t, int64(2), ds.Rows[0]["id"])
	assert.Equal(t, true, ds.Rows[0]["admin"])
	assert.IsType(t, time.Time{}, ds.Rows[0]["joined"])
	assert.Nil(t, ds.Rows[2]["joined"])

	vm, err := ds.ViewModel()
	require.NoError(t, err)
	vm.SetSort("joined")
	visible := vm.VisibleRows()
	assert.Equal(t, float64(1), visible[0]["id"])
}

func TestLoad_JSONArrayInfersColumns(t *testing.T) {
	path := writeFile(t, "bare.json", `[{"b": 1, "a": "x"}, {"c": true}]`)

	ds, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ds.Columns, 3)
	assert.Equal(t, "a", ds.Columns[0].Key)
	assert.Equal(t, "c", ds.Columns[2].Key)
	for _, c := range ds.Columns {
		assert.True(t, c.Sortable)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "items.yaml", `
title: Items
columns:
  - key: name
    label: Name
    sortable: true
  - key: qty
    label: Qty
    sortable: true
    type: number
rows:
  - {name: bolt, qty: 10}
  - {name: nut, qty: "9"}
`)

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Items", ds.Title)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, int64(9), ds.Rows[1]["qty"])

	vm, err := ds.ViewModel()
	require.NoError(t, err)
	vm.SetSort("qty")
	assert.Equal(t, "nut", vm.VisibleRows()[0]["name"])
}

func TestLoad_YAMLSequence(t *testing.T) {
	path := writeFile(t, "list.yml", "- {k: v}\n- {k: w}\n")
	ds, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, ds.Rows, 2)
	assert.Equal(t, "k", ds.Columns[0].Key)
}

func TestLoad_CSVInfersTypes(t *testing.T) {
	path := writeFile(t, "scores.csv", "\ufeffname,score,active,seen\n"+
		"ann,10,true,2024-01-02\n"+
		"bob,9,false,\n"+
		"cy,,true,2024-01-01\n")

	ds, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ds.Columns, 4)
	assert.Equal(t, "name", ds.Columns[0].Key)
	assert.Equal(t, tabular.TypeString, ds.Columns[0].Type)
	assert.Equal(t, tabular.TypeNumber, ds.Columns[1].Type)
	assert.Equal(t, tabular.TypeBool, ds.Columns[2].Type)
	assert.Equal(t, tabular.TypeDate, ds.Columns[3].Type)
	assert.Nil(t, ds.Rows[2]["score"])
	assert.Nil(t, ds.Rows[1]["seen"])

	vm, err := ds.ViewModel()
	require.NoError(t, err)
	vm.SetSort("score")
	assert.Equal(t, []any{"bob", "ann", "cy"}, pluck(vm.VisibleRows(), "name"))
}

func TestLoad_CSVShortRecords(t *testing.T) {
	path := writeFile(t, "short.csv", "a,b\n1\n")
	ds, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, ds.Rows[0]["b"])
}

func TestLoad_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"city", "population"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Oslo", 709000}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Bergen", 291000}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sheet, ds.Title)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, tabular.TypeNumber, ds.Columns[1].Type)
	assert.Equal(t, int64(291000), ds.Rows[1]["population"])
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{name: "unsupported extension", file: "data.txt", content: "x", wantErr: ErrUnsupportedFormat},
		{name: "bad number", file: "bad.json", content: `{"columns":[{"key":"n","type":"number"}],"rows":[{"n":"abc"}]}`, wantErr: ErrInvalidValue},
		{name: "bad date", file: "bad.yaml", content: "columns: [{key: d, type: date}]\nrows: [{d: soon}]\n", wantErr: ErrInvalidValue},
		{name: "empty csv", file: "empty.csv", content: "", wantErr: ErrNoColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_UnknownColumnType(t *testing.T) {
	_, err := Load(writeFile(t, "t.json", `{"columns":[{"key":"n","type":"money"}],"rows":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "money")
}

func TestResolve(t *testing.T) {
	ds, err := Resolve("users")
	require.NoError(t, err)
	assert.Equal(t, "users", ds.Name)

	path := writeFile(t, "x.csv", "a\n1\n")
	ds, err = Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "x", ds.Name)

	_, err = Resolve(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, ErrUnknownDataset)
	assert.Contains(t, err.Error(), "products, projects, users")
}

func TestLoadAll_KeepsOrder(t *testing.T) {
	a := writeFile(t, "a.csv", "k\n1\n")
	b := writeFile(t, "b.csv", "k\n1\n2\n")

	got, err := LoadAll(context.Background(), []string{b, "users", a})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, "users", got[1].Name)
	assert.Equal(t, "a", got[2].Name)
}

func TestLoadAll_FirstErrorFails(t *testing.T) {
	_, err := LoadAll(context.Background(), []string{"users", "does-not-exist"})
	require.ErrorIs(t, err, ErrUnknownDataset)
}

func TestLoadAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadAll(ctx, []string{"users"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "live.csv", "n\n1\n")

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan *Dataset, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(ds *Dataset) { changes <- ds }, func(error) {})
	}()

	var got *Dataset
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("n\n1\n2\n"), 0o600)
		select {
		case got = <-changes:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)
	assert.Len(t, got.Rows, 2)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "x.csv"), nil, nil)
	require.Error(t, err)
}

func pluck(rows []tabular.Row, key string) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r[key]
	}
	return out
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		in   any
		typ  tabular.ColumnType
		want any
	}{
		{name: "auto passthrough", in: "x", typ: tabular.TypeAuto, want: "x"},
		{name: "auto keeps empty", in: "", typ: tabular.TypeAuto, want: ""},
		{name: "string from number", in: 3, typ: tabular.TypeString, want: "3"},
		{name: "float text", in: "2.5", typ: tabular.TypeNumber, want: 2.5},
		{name: "integral text", in: " 7 ", typ: tabular.TypeNumber, want: int64(7)},
		{name: "number kept", in: 4.0, typ: tabular.TypeNumber, want: 4.0},
		{name: "bool text", in: "FALSE", typ: tabular.TypeBool, want: false},
		{name: "empty to nil", in: "  ", typ: tabular.TypeNumber, want: nil},
		{name: "nil stays nil", in: nil, typ: tabular.TypeDate, want: nil},
		{name: "date only", in: "2025-10-28", typ: tabular.TypeDate, want: time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339 to utc", in: "2025-10-28T02:00:00+02:00", typ: tabular.TypeDate, want: time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerce(tt.in, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
