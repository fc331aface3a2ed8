package tabular

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Option configures a ViewModel at construction time.
type Option func(*ViewModel)

// WithPageSize sets the initial page size. Non-positive values are ignored.
func WithPageSize(size int) Option {
	return func(vm *ViewModel) {
		if size > 0 {
			vm.page.PageSize = size
		}
	}
}

// WithLogger attaches a logger used for debug tracing of state changes.
func WithLogger(logger zerolog.Logger) Option {
	return func(vm *ViewModel) {
		vm.logger = logger
	}
}

// ViewModel maintains rows plus sort, filter and page state and exposes the
// currently visible slice. It is not safe for concurrent use.
type ViewModel struct {
	columns []Column
	index   map[string]int // column key -> position in columns

	rows    []Row // source rows, never reordered
	derived []Row // filtered and sorted rows

	sort   SortState
	filter FilterState
	page   PageState

	logger zerolog.Logger
}

// New creates a ViewModel with the given column schema and an empty row set.
// It returns ErrDuplicateColumn or ErrEmptyColumnKey for an invalid schema.
func New(columns []Column, opts ...Option) (*ViewModel, error) {
	vm := &ViewModel{
		page:   PageState{PageIndex: 0, PageSize: DefaultPageSize},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(vm)
	}

	if err := vm.SetColumns(columns); err != nil {
		return nil, err
	}
	return vm, nil
}

// SetColumns replaces the column schema. If the active sort column is absent
// from the new schema, or no longer sortable, the sort state resets to none.
// An invalid schema leaves the model unchanged.
func (vm *ViewModel) SetColumns(columns []Column) error {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c.Key == "" {
			return fmt.Errorf("%w: column %d", ErrEmptyColumnKey, i)
		}
		if _, dup := index[c.Key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Key)
		}
		index[c.Key] = i
	}

	vm.columns = slices.Clone(columns)
	vm.index = index

	if vm.sort.ColumnKey != "" {
		if col, ok := vm.column(vm.sort.ColumnKey); !ok || !col.Sortable {
			vm.logger.Debug().Str("column", vm.sort.ColumnKey).Msg("sort column dropped from schema, clearing sort")
			vm.sort = SortState{}
		}
	}

	vm.derive()
	return nil
}

// SetRows replaces the full row set. The page index is re-clamped, not reset.
func (vm *ViewModel) SetRows(rows []Row) {
	vm.rows = slices.Clone(rows)
	vm.derive()
}

// SetSort toggles sorting on the named column through none, ascending and
// descending. Selecting a different column starts at ascending. Unknown or
// non-sortable columns are ignored.
func (vm *ViewModel) SetSort(columnKey string) {
	if !vm.sortable(columnKey) {
		return
	}

	if vm.sort.ColumnKey == columnKey {
		vm.sort.Direction = vm.sort.Direction.next()
	} else {
		vm.sort = SortState{ColumnKey: columnKey, Direction: SortAscending}
	}
	if vm.sort.Direction == SortNone {
		vm.sort = SortState{}
	}

	vm.derive()
}

// SetSortDirection sets an explicit direction on the named column. SortNone
// clears the sort. Unknown or non-sortable columns are ignored.
func (vm *ViewModel) SetSortDirection(columnKey string, dir SortDirection) {
	if !vm.sortable(columnKey) {
		return
	}

	switch dir {
	case SortAscending, SortDescending:
		vm.sort = SortState{ColumnKey: columnKey, Direction: dir}
	default:
		vm.sort = SortState{}
	}

	vm.derive()
}

// ClearSort restores insertion order.
func (vm *ViewModel) ClearSort() {
	vm.sort = SortState{}
	vm.derive()
}

// SetFilter sets the filter query and resets the page index to zero.
// The query is trimmed and lower-cased before matching.
func (vm *ViewModel) SetFilter(query string) {
	vm.filter = FilterState{Query: strings.ToLower(strings.TrimSpace(query))}
	vm.page.PageIndex = 0
	vm.derive()
}

// SetPage sets the current page, clamped into [0, MaxPage()].
func (vm *ViewModel) SetPage(pageIndex int) {
	vm.page.PageIndex = pageIndex
	vm.clampPage()
}

// SetPageSize sets the number of rows per page and re-clamps the page index.
// Non-positive sizes return ErrInvalidPageSize and leave the state unchanged.
func (vm *ViewModel) SetPageSize(pageSize int) error {
	if pageSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
	}
	vm.page.PageSize = pageSize
	vm.clampPage()
	return nil
}

// NextPage advances one page if possible.
func (vm *ViewModel) NextPage() { vm.SetPage(vm.page.PageIndex + 1) }

// PrevPage moves back one page if possible.
func (vm *ViewModel) PrevPage() { vm.SetPage(vm.page.PageIndex - 1) }

// FirstPage moves to the first page.
func (vm *ViewModel) FirstPage() { vm.SetPage(0) }

// LastPage moves to the last page.
func (vm *ViewModel) LastPage() { vm.SetPage(vm.MaxPage()) }

// VisibleRows returns the rows on the current page of the filtered and sorted set.
func (vm *ViewModel) VisibleRows() []Row {
	start := vm.page.Offset()
	if start >= len(vm.derived) {
		return []Row{}
	}
	end := start + vm.page.PageSize
	if end > len(vm.derived) {
		end = len(vm.derived)
	}
	return slices.Clone(vm.derived[start:end])
}

// FilteredRows returns every row that passes the filter, in sorted order.
func (vm *ViewModel) FilteredRows() []Row {
	return slices.Clone(vm.derived)
}

// FilteredCount returns the number of rows that pass the filter.
func (vm *ViewModel) FilteredCount() int {
	return len(vm.derived)
}

// TotalCount returns the number of source rows.
func (vm *ViewModel) TotalCount() int {
	return len(vm.rows)
}

// Columns returns a copy of the column schema.
func (vm *ViewModel) Columns() []Column {
	return slices.Clone(vm.columns)
}

// SortState returns the current sort configuration.
func (vm *ViewModel) SortState() SortState { return vm.sort }

// FilterState returns the current normalized filter.
func (vm *ViewModel) FilterState() FilterState { return vm.filter }

// PageState returns the current page index and size.
func (vm *ViewModel) PageState() PageState { return vm.page }

// PageCount returns the number of pages in the filtered set, at least one.
func (vm *ViewModel) PageCount() int {
	return vm.MaxPage() + 1
}

// MaxPage returns the highest valid zero-based page index.
func (vm *ViewModel) MaxPage() int {
	n := len(vm.derived)
	if n == 0 {
		return 0
	}
	return (n+vm.page.PageSize-1)/vm.page.PageSize - 1
}

// derive recomputes the filtered and sorted set and re-clamps the page.
func (vm *ViewModel) derive() {
	vm.derived = vm.applySort(vm.applyFilter(vm.rows))
	vm.clampPage()

	vm.logger.Debug().
		Int("total", len(vm.rows)).
		Int("filtered", len(vm.derived)).
		Str("sort_column", vm.sort.ColumnKey).
		Stringer("sort_direction", vm.sort.Direction).
		Int("page_index", vm.page.PageIndex).
		Msg("view derived")
}

func (vm *ViewModel) clampPage() {
	maxPage := vm.MaxPage()
	switch {
	case vm.page.PageIndex < 0:
		vm.page.PageIndex = 0
	case vm.page.PageIndex > maxPage:
		vm.page.PageIndex = maxPage
	}
}

// applyFilter returns a new slice holding the rows that match the query.
func (vm *ViewModel) applyFilter(rows []Row) []Row {
	if vm.filter.Query == "" {
		return slices.Clone(rows)
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if vm.matches(row) {
			out = append(out, row)
		}
	}
	return out
}

// matches scans the schema columns, or every row key when the schema is empty.
func (vm *ViewModel) matches(row Row) bool {
	keys := vm.searchKeys(row)
	for _, key := range keys {
		text, ok := SearchText(row[key])
		if ok && strings.Contains(text, vm.filter.Query) {
			return true
		}
	}
	return false
}

func (vm *ViewModel) searchKeys(row Row) []string {
	if len(vm.columns) > 0 {
		keys := make([]string, len(vm.columns))
		for i, c := range vm.columns {
			keys[i] = c.Key
		}
		return keys
	}

	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// applySort stable-sorts rows in place by the active column. Nulls always sort
// last; descending negates the comparator so ties keep their filtered order.
func (vm *ViewModel) applySort(rows []Row) []Row {
	if !vm.sort.IsSorted() {
		return rows
	}

	key := vm.sort.ColumnKey
	desc := vm.sort.Direction == SortDescending

	slices.SortStableFunc(rows, func(a, b Row) int {
		av, bv := a[key], b[key]
		aNull, bNull := IsNull(av), IsNull(bv)
		switch {
		case aNull && bNull:
			return 0
		case aNull:
			return 1
		case bNull:
			return -1
		}

		c := CompareValues(av, bv)
		if desc {
			return -c
		}
		return c
	})
	return rows
}

func (vm *ViewModel) column(key string) (Column, bool) {
	i, ok := vm.index[key]
	if !ok {
		return Column{}, false
	}
	return vm.columns[i], true
}

func (vm *ViewModel) sortable(key string) bool {
	col, ok := vm.column(key)
	if !ok || !col.Sortable {
		vm.logger.Debug().Str("column", key).Msg("ignoring sort on unknown or non-sortable column")
		return false
	}
	return true
}
