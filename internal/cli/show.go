package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/internal/config"
	"github.com/rshade/tablekit/internal/render"
)

// NewShowCmd creates the show command, which prints one page of a dataset.
func NewShowCmd() *cobra.Command {
	var (
		flags  viewFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "show <dataset|file>",
		Short: "Print one page of a dataset",
		Long: `Prints a single page of a built-in dataset or a JSON, YAML, CSV or XLSX file.

Sorting, filtering and paging are applied in that order: the filter keeps rows
whose cells contain the query (case-insensitive), the sort orders them, and the
page selects a slice.`,
		Example: `  # First page of the users demo table
  tablekit show users

  # Products sorted by stock, largest first, as YAML
  tablekit show products --sort stock:desc --output yaml

  # Second page of a CSV file, five rows per page
  tablekit show people.csv --page 2 --page-size 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], flags, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, yaml or csv (default from config)")

	return cmd
}

func runShow(cmd *cobra.Command, ref string, flags viewFlags, output string) error {
	format, err := render.ParseFormat(config.GetOutputFormat(output))
	if err != nil {
		return err
	}
	if format == render.FormatXLSX {
		return fmt.Errorf("%w: xlsx is binary, use 'tablekit export --format xlsx'", render.ErrUnknownFormat)
	}

	ds, vm, err := openView(cmd.Context(), ref, flags)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if format == render.FormatTable {
		if _, err = fmt.Fprintf(w, "%s\n\n", ds.DisplayTitle()); err != nil {
			return err
		}
	}
	return render.Write(w, vm, format)
}
