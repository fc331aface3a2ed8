package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/internal/dataset"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// NewDatasetsCmd creates the datasets command, which lists the built-in
// datasets followed by any dataset files named on the command line.
func NewDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets [file...]",
		Short: "List the built-in datasets and summarize dataset files",
		Example: `  # List datasets, then show one
  tablekit datasets
  tablekit show projects

  # Summarize dataset files alongside the builtins
  tablekit datasets sales.csv inventory.yaml`,
		Args: cobra.ArbitraryArgs,
		RunE: runDatasets,
	}
}

func runDatasets(cmd *cobra.Command, args []string) error {
	all := make([]*dataset.Dataset, 0, len(dataset.Names())+len(args))
	for _, name := range dataset.Names() {
		ds, ok := dataset.Builtin(name)
		if !ok {
			return fmt.Errorf("%w: %s", dataset.ErrUnknownDataset, name)
		}
		all = append(all, ds)
	}

	files, err := dataset.LoadAll(cmd.Context(), args)
	if err != nil {
		return err
	}
	all = append(all, files...)
	logger.Debug().Ctx(cmd.Context()).Int("files", len(files)).Msg("datasets loaded")

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tROWS\tPAGE SIZE")
	for _, ds := range all {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", ds.Name, ds.DisplayTitle(), len(ds.Rows), ds.PageSize)
	}
	return w.Flush()
}
