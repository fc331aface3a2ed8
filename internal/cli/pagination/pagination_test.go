package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tablekit/internal/tabular"
)

func newTestModel(t *testing.T, n int) *tabular.ViewModel {
	t.Helper()
	vm, err := tabular.New([]tabular.Column{
		{Key: "id", Label: "ID", Sortable: true},
		{Key: "name", Label: "Name", Sortable: true},
		{Key: "email", Label: "Email"},
	})
	require.NoError(t, err)

	rows := make([]tabular.Row, n)
	for i := range rows {
		rows[i] = tabular.Row{"id": i + 1, "name": fmt.Sprintf("user %02d", i+1)}
	}
	vm.SetRows(rows)
	return vm
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "zero value", params: Params{}},
		{name: "page zero selects first", params: Params{Page: 0, PageSize: 10}},
		{name: "valid page", params: Params{Page: 2, PageSize: 10}},
		{name: "valid sort", params: Params{Sort: "name:desc"}},
		{name: "negative page", params: Params{Page: -1}, wantErr: ErrInvalidPage},
		{name: "page size too small", params: Params{PageSize: -4}, wantErr: ErrInvalidPageSize},
		{name: "page size too large", params: Params{PageSize: MaxPageSize + 1}, wantErr: ErrInvalidPageSize},
		{name: "bad sort order", params: Params{Sort: "name:up"}, wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestErrInvalidPage_MentionsZero(t *testing.T) {
	err := Params{Page: -3}.Validate()
	require.ErrorIs(t, err, ErrInvalidPage)
	assert.Contains(t, err.Error(), ">= 1")
	assert.Contains(t, err.Error(), "0 selects the first page")
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name      string
		sortStr   string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{name: "field only", sortStr: "name", wantField: "name", wantOrder: "asc"},
		{name: "field and asc", sortStr: "name:asc", wantField: "name", wantOrder: "asc"},
		{name: "field and desc", sortStr: "id:DESC", wantField: "id", wantOrder: "desc"},
		{name: "whitespace", sortStr: " id : desc ", wantField: "id", wantOrder: "desc"},
		{name: "too many parts", sortStr: "a:b:c", wantErr: ErrInvalidSortFormat},
		{name: "empty field", sortStr: ":asc", wantErr: ErrEmptySortField},
		{name: "empty string", sortStr: "", wantErr: ErrEmptySortField},
		{name: "bad order", sortStr: "name:sideways", wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, order, err := ParseSort(tt.sortStr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestParams_Apply(t *testing.T) {
	vm := newTestModel(t, 25)

	err := Params{Page: 2, PageSize: 5, Sort: "id:desc", Filter: "user"}.Apply(vm)
	require.NoError(t, err)

	assert.Equal(t, tabular.PageState{PageIndex: 1, PageSize: 5}, vm.PageState())
	assert.Equal(t, tabular.SortState{ColumnKey: "id", Direction: tabular.SortDescending}, vm.SortState())

	visible := vm.VisibleRows()
	require.Len(t, visible, 5)
	assert.Equal(t, 20, visible[0]["id"])
}

func TestParams_ApplyClampsPageAfterFilter(t *testing.T) {
	vm := newTestModel(t, 25)

	require.NoError(t, Params{Page: 9, PageSize: 10, Filter: "user 1"}.Apply(vm))
	assert.Equal(t, 10, vm.FilteredCount())
	assert.Equal(t, 0, vm.PageState().PageIndex)
}

func TestParams_ApplyRejectsUnsortableField(t *testing.T) {
	vm := newTestModel(t, 3)

	err := Params{Sort: "email"}.Apply(vm)
	require.ErrorIs(t, err, ErrUnknownSortField)
	assert.Contains(t, err.Error(), "id, name")

	err = Params{Sort: "nope:desc"}.Apply(vm)
	require.ErrorIs(t, err, ErrUnknownSortField)
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name   string
		rows   int
		params Params
		want   Meta
	}{
		{
			name:   "first of three pages",
			rows:   25,
			params: Params{PageSize: 10},
			want: Meta{
				CurrentPage: 1, PageSize: 10, TotalPages: 3, TotalItems: 25, FilteredItems: 25,
				HasPrevious: false, HasNext: true,
			},
		},
		{
			name:   "last page",
			rows:   25,
			params: Params{Page: 3, PageSize: 10},
			want: Meta{
				CurrentPage: 3, PageSize: 10, TotalPages: 3, TotalItems: 25, FilteredItems: 25,
				HasPrevious: true, HasNext: false,
			},
		},
		{
			name:   "nothing matches",
			rows:   25,
			params: Params{Filter: "zzz"},
			want: Meta{
				CurrentPage: 1, PageSize: tabular.DefaultPageSize, TotalPages: 0, TotalItems: 25,
				FilteredItems: 0,
			},
		},
		{
			name:   "empty table",
			rows:   0,
			params: Params{},
			want:   Meta{CurrentPage: 1, PageSize: tabular.DefaultPageSize},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestModel(t, tt.rows)
			require.NoError(t, tt.params.Apply(vm))
			assert.Equal(t, tt.want, NewMeta(vm))
		})
	}
}

func TestSortableFields(t *testing.T) {
	vm := newTestModel(t, 0)
	assert.Equal(t, []string{"id", "name"}, SortableFields(vm))
}
