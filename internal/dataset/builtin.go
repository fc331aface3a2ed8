package dataset

import (
	"maps"
	"slices"
	"time"

	"github.com/rshade/tablekit/internal/tabular"
)

// builtins returns fresh copies on every call so callers may mutate rows.
//
//nolint:gochecknoglobals // Read-only registry of demo datasets.
var builtins = map[string]func() *Dataset{
	"users":    users,
	"products": products,
	"projects": projects,
}

// Names lists the builtin dataset names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// Builtin returns the demo dataset called name.
func Builtin(name string) (*Dataset, bool) {
	fn, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

func users() *Dataset {
	return &Dataset{
		Name:     "users",
		Title:    "Users Table",
		PageSize: 50,
		Source:   SourceBuiltin,
		Columns: []tabular.Column{
			{Key: "id", Label: "ID", Sortable: true, Type: tabular.TypeNumber},
			{Key: "name", Label: "Name", Sortable: true},
			{Key: "email", Label: "Email", Sortable: false},
			{Key: "role", Label: "Role", Sortable: true},
			{Key: "status", Label: "Status", Sortable: true},
		},
		Rows: []tabular.Row{
			{"id": 1, "name": "John Doe", "email": "john@example.com", "role": "Admin", "status": "Active"},
			{"id": 2, "name": "Jane Smith", "email": "jane@example.com", "role": "Editor", "status": "Active"},
			{"id": 3, "name": "Bob Johnson", "email": "bob@example.com", "role": "Viewer", "status": "Active"},
			{"id": 4, "name": "Alice Williams", "email": "alice@example.com", "role": "Editor", "status": "Inactive"},
			{"id": 5, "name": "Charlie Brown", "email": "charlie@example.com", "role": "Viewer", "status": "Active"},
		},
	}
}

func products() *Dataset {
	return &Dataset{
		Name:   "products",
		Title:  "Products Table",
		Source: SourceBuiltin,
		Columns: []tabular.Column{
			{Key: "id", Label: "ID", Sortable: true, Type: tabular.TypeNumber},
			{Key: "name", Label: "Product Name", Sortable: true},
			{Key: "price", Label: "Price", Sortable: true},
			{Key: "stock", Label: "In Stock", Sortable: true, Type: tabular.TypeNumber},
			{Key: "category", Label: "Category", Sortable: true},
		},
		Rows: []tabular.Row{
			{"id": 101, "name": "Laptop Pro", "price": "$1,299", "stock": 15, "category": "Electronics"},
			{"id": 102, "name": "Wireless Mouse", "price": "$29", "stock": 150, "category": "Accessories"},
			{"id": 103, "name": "USB-C Cable", "price": "$19", "stock": 200, "category": "Accessories"},
			{"id": 104, "name": "Monitor 4K", "price": "$499", "stock": 8, "category": "Electronics"},
			{"id": 105, "name": "Keyboard", "price": "$79", "stock": 45, "category": "Accessories"},
		},
	}
}

func projects() *Dataset {
	due := func(s string) time.Time {
		t, _ := time.Parse(dateOnly, s)
		return t
	}
	return &Dataset{
		Name:   "projects",
		Title:  "Projects Table",
		Source: SourceBuiltin,
		Columns: []tabular.Column{
			{Key: "id", Label: "ID", Sortable: true, Type: tabular.TypeNumber},
			{Key: "name", Label: "Project Name", Sortable: true},
			{Key: "status", Label: "Status", Sortable: true},
			{Key: "progress", Label: "Progress", Sortable: true},
			{Key: "dueDate", Label: "Due Date", Sortable: true, Type: tabular.TypeDate},
		},
		Rows: []tabular.Row{
			{"id": 1, "name": "Website Redesign", "status": "In Progress", "progress": "75%", "dueDate": due("2025-11-15")},
			{"id": 2, "name": "Mobile App", "status": "In Progress", "progress": "45%", "dueDate": due("2025-12-01")},
			{"id": 3, "name": "API Integration", "status": "Completed", "progress": "100%", "dueDate": due("2025-10-28")},
			{"id": 4, "name": "Database Migration", "status": "Pending", "progress": "20%", "dueDate": due("2025-11-30")},
		},
	}
}
