package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/internal/cli/pagination"
	"github.com/rshade/tablekit/internal/config"
	"github.com/rshade/tablekit/internal/dataset"
	"github.com/rshade/tablekit/internal/logging"
	"github.com/rshade/tablekit/internal/tabular"
)

// viewFlags are the sort, filter and page flags shared by show and export.
type viewFlags struct {
	pagination.Params
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Sort, "sort", "", "sort by field, e.g. name or name:desc")
	cmd.Flags().StringVar(&f.Filter, "filter", "", "case-insensitive substring filter across all columns")
	cmd.Flags().IntVar(&f.Page, "page", 0, "page number starting at 1")
	cmd.Flags().IntVar(&f.PageSize, "page-size", 0, "rows per page (default from dataset or config)")
}

// openView resolves a dataset reference and applies the flags to a fresh view
// model. The page size falls back from the flag to the dataset and then to the
// configured default.
func openView(ctx context.Context, ref string, f viewFlags) (*dataset.Dataset, *tabular.ViewModel, error) {
	log := logging.FromContext(ctx)

	if err := f.Validate(); err != nil {
		return nil, nil, err
	}

	ds, err := dataset.Resolve(ref)
	if err != nil {
		return nil, nil, err
	}

	opts := []tabular.Option{tabular.WithLogger(logging.ComponentLogger(*log, "tabular"))}
	if ds.PageSize <= 0 {
		opts = append(opts, tabular.WithPageSize(config.GetPageSize()))
	}
	vm, err := ds.ViewModel(opts...)
	if err != nil {
		return nil, nil, err
	}

	if err = f.Apply(vm); err != nil {
		return nil, nil, fmt.Errorf("applying view options: %w", err)
	}

	log.Debug().Ctx(ctx).
		Str("dataset", ds.Name).
		Str("source", ds.Source).
		Int("rows", vm.TotalCount()).
		Int("filtered", vm.FilteredCount()).
		Msg("view opened")
	return ds, vm, nil
}
