package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/tablekit/internal/tabular"
)

// Pagination defaults and validation limits.
const (
	DefaultPage      = 1
	MinPageSize      = 1
	MaxPageSize      = 1000
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1 (0 selects the first page)")
	ErrInvalidPageSize   = errors.New("page-size must be between 1 and 1000")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrUnknownSortField  = errors.New("unknown or non-sortable sort field")
)

// Params holds CLI pagination, sort and filter flags.
// Page is 1-based; zero means "first page". PageSize zero means "keep the
// view model's current page size".
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of rows per page.
	PageSize int

	// Sort is a sort expression in "field" or "field:order" form.
	Sort string

	// Filter is a case-insensitive substring query.
	Filter string
}

// Validate checks that the parameters are within bounds (value receiver).
func (p Params) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize != 0 && (p.PageSize < MinPageSize || p.PageSize > MaxPageSize) {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	if p.Sort != "" {
		if _, _, err := ParseSort(p.Sort); err != nil {
			return err
		}
	}
	return nil
}

// Apply pushes the parameters into the view model in filter, sort, page size,
// page order, so the requested page is clamped against the final filtered set.
// An unknown or non-sortable sort field returns ErrUnknownSortField.
func (p Params) Apply(vm *tabular.ViewModel) error {
	if err := p.Validate(); err != nil {
		return err
	}

	vm.SetFilter(p.Filter)

	if p.Sort != "" {
		field, order, _ := ParseSort(p.Sort)
		if !isSortable(vm, field) {
			return fmt.Errorf("%w: %q (valid: %s)", ErrUnknownSortField, field, strings.Join(SortableFields(vm), ", "))
		}
		dir := tabular.SortAscending
		if order == SortOrderDesc {
			dir = tabular.SortDescending
		}
		vm.SetSortDirection(field, dir)
	}

	if p.PageSize > 0 {
		if err := vm.SetPageSize(p.PageSize); err != nil {
			return err
		}
	}

	if p.Page > 0 {
		vm.SetPage(p.Page - 1)
	}
	return nil
}

// SortableFields returns the keys of sortable columns in schema order.
func SortableFields(vm *tabular.ViewModel) []string {
	var fields []string
	for _, c := range vm.Columns() {
		if c.Sortable {
			fields = append(fields, c.Key)
		}
	}
	return fields
}

func isSortable(vm *tabular.ViewModel, field string) bool {
	for _, f := range SortableFields(vm) {
		if f == field {
			return true
		}
	}
	return false
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "id:desc", "status:asc".
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
