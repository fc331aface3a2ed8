package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/internal/render"
	"github.com/rshade/tablekit/internal/tabular"
	"github.com/rshade/tablekit/internal/tui"
)

// ErrOutputExists is returned when --out names an existing file and the
// overwrite was not confirmed.
var ErrOutputExists = errors.New("output file already exists, use --force to overwrite")

// stdoutPath is the --out value that streams the export to standard output.
const stdoutPath = "-"

type exportOptions struct {
	view   viewFlags
	format string
	out    string
	all    bool
	force  bool
}

// NewExportCmd creates the export command, which writes a dataset to CSV or XLSX.
func NewExportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export <dataset|file>",
		Short: "Export a dataset to CSV or XLSX",
		Long: `Exports the current page, or with --all every filtered and sorted row, to a
CSV or Excel file. The format defaults to the extension of --out. With
--out - the export is written to standard output as CSV unless --format
says otherwise.`,
		Example: `  # Export the first page of products to CSV
  tablekit export products --out products.csv

  # Export every user matching "admin", sorted by name, to Excel
  tablekit export users --filter admin --sort name --all --out admins.xlsx

  # Stream every project as CSV into another tool
  tablekit export projects --all --out - | cut -d, -f1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], opts)
		},
	}

	opts.view.register(cmd)
	cmd.Flags().StringVar(&opts.format, "format", "", "export format: csv or xlsx (default from --out extension)")
	cmd.Flags().StringVar(&opts.out, "out", "", "output file path, or - for standard output")
	cmd.Flags().BoolVar(&opts.all, "all", false, "export all filtered rows instead of the current page")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing output file")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(cmd *cobra.Command, ref string, opts exportOptions) error {
	format, err := exportFormat(opts.format, opts.out)
	if err != nil {
		return err
	}

	_, vm, err := openView(cmd.Context(), ref, opts.view)
	if err != nil {
		return err
	}

	scope := render.ScopePage
	if opts.all {
		scope = render.ScopeAll
	}

	if opts.out == stdoutPath {
		return exportStdout(cmd, vm, format, scope)
	}

	if err = checkOverwrite(cmd, opts.out, opts.force); err != nil {
		return err
	}

	switch format {
	case render.FormatXLSX:
		err = render.XLSX(opts.out, vm, scope)
	default:
		err = render.CSVFile(opts.out, vm, scope)
	}
	if err != nil {
		return err
	}

	rows := vm.FilteredCount()
	if scope == render.ScopePage {
		rows = len(vm.VisibleRows())
	}
	logger.Info().Ctx(cmd.Context()).
		Str("path", opts.out).
		Str("format", string(format)).
		Int("rows", rows).
		Msg("export written")
	cmd.Printf("Exported %d rows to %s\n", rows, opts.out)
	return nil
}

// exportStdout writes the export to the command's output stream. The page
// scope goes through render.Write like show does.
func exportStdout(cmd *cobra.Command, vm *tabular.ViewModel, format render.Format, scope render.Scope) error {
	w := cmd.OutOrStdout()
	var err error
	switch {
	case scope == render.ScopePage:
		err = render.Write(w, vm, format)
	case format == render.FormatXLSX:
		err = render.WriteXLSX(w, vm, scope)
	default:
		err = render.CSV(w, vm, scope)
	}
	if err != nil {
		return err
	}
	logger.Info().Ctx(cmd.Context()).
		Str("path", stdoutPath).
		Str("format", string(format)).
		Bool("all", scope == render.ScopeAll).
		Msg("export written")
	return nil
}

// exportFormat resolves --format, falling back to the --out extension, or to
// CSV when writing to standard output.
func exportFormat(flag, out string) (render.Format, error) {
	name := flag
	if name == "" && out == stdoutPath {
		name = string(render.FormatCSV)
	}
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return "", err
	}
	if format != render.FormatCSV && format != render.FormatXLSX {
		return "", fmt.Errorf("%w: export supports csv and xlsx, got %q", render.ErrUnknownFormat, name)
	}
	return format, nil
}

// checkOverwrite refuses to replace an existing file unless --force is set or
// the user confirms on an interactive terminal.
func checkOverwrite(cmd *cobra.Command, path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access output path %s: %w", path, err)
	}

	in := cmd.InOrStdin()
	if !tui.IsTerminal(in) {
		return ErrOutputExists
	}
	if !ConfirmOverwrite(cmd.OutOrStdout(), in, path).Accepted {
		return ErrOutputExists
	}
	return nil
}
