package pagination

import "github.com/rshade/tablekit/internal/tabular"

// Meta contains metadata about a paginated view.
type Meta struct {
	CurrentPage   int  `json:"current_page"   yaml:"current_page"`
	PageSize      int  `json:"page_size"      yaml:"page_size"`
	TotalPages    int  `json:"total_pages"    yaml:"total_pages"`
	TotalItems    int  `json:"total_items"    yaml:"total_items"`
	FilteredItems int  `json:"filtered_items" yaml:"filtered_items"`
	HasPrevious   bool `json:"has_previous"   yaml:"has_previous"`
	HasNext       bool `json:"has_next"       yaml:"has_next"`
}

// NewMeta builds pagination metadata from the view model's current state.
// CurrentPage is 1-based. TotalPages is zero when nothing passes the filter.
func NewMeta(vm *tabular.ViewModel) Meta {
	ps := vm.PageState()
	filtered := vm.FilteredCount()

	totalPages := 0
	if filtered > 0 {
		totalPages = vm.PageCount()
	}
	currentPage := ps.PageIndex + 1

	return Meta{
		CurrentPage:   currentPage,
		PageSize:      ps.PageSize,
		TotalPages:    totalPages,
		TotalItems:    vm.TotalCount(),
		FilteredItems: filtered,
		HasPrevious:   currentPage > 1,
		HasNext:       currentPage < totalPages,
	}
}
