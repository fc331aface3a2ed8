package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/internal/config"
	"github.com/rshade/tablekit/internal/dataset"
	"github.com/rshade/tablekit/internal/render"
	"github.com/rshade/tablekit/internal/theme"
	"github.com/rshade/tablekit/internal/tui"
)

type browseOptions struct {
	watch            bool
	plain            bool
	noColor          bool
	forceInteractive bool
	exportPath       string
}

// NewBrowseCmd creates the browse command, which opens a dataset in the TUI.
func NewBrowseCmd() *cobra.Command {
	var opts browseOptions

	cmd := &cobra.Command{
		Use:   "browse <dataset|file>",
		Short: "Browse a dataset interactively",
		Long: `Opens a dataset in an interactive table with sorting, filtering, paging,
theme toggling and CSV export. When stdout is not a terminal the first page is
printed instead, as 'tablekit show' would.

Keys: / filter, 1-9 sort by column, tab select column, s sort selected column,
left/right page, g/G first/last page, +/- page size, t theme, e export, q quit.`,
		Example: `  # Browse the built-in projects table
  tablekit browse projects

  # Browse a YAML file and reload it whenever it is saved
  tablekit browse people.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.watch, "watch", false, "reload the file when it changes")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print a plain table instead of starting the TUI")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colors in the TUI")
	cmd.Flags().BoolVar(&opts.forceInteractive, "force-interactive", false, "start the TUI even when stdout is not a terminal")
	cmd.Flags().StringVar(&opts.exportPath, "export-path", "", "file written by the e key (default <dataset>-export.csv)")

	return cmd
}

func runBrowse(cmd *cobra.Command, ref string, opts browseOptions) error {
	ctx := cmd.Context()
	mode := tui.DetectOutputModeFor(cmd.OutOrStdout(), opts.plain, opts.noColor, opts.forceInteractive)
	logger.Debug().Ctx(ctx).Str("mode", mode.String()).Msg("output mode detected")

	if mode == tui.OutputModePlain {
		return runShow(cmd, ref, viewFlags{}, string(render.FormatTable))
	}

	ds, err := dataset.Resolve(ref)
	if err != nil {
		return err
	}

	model, err := tui.NewTableModel(ctx, ds, browseModelOptions(ds, opts))
	if err != nil {
		return err
	}

	tui.ApplyColorProfile(mode)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	if opts.watch {
		startWatch(ctx, p, ds)
	}

	if _, err = p.Run(); err != nil {
		return fmt.Errorf("running interactive TUI: %w", err)
	}
	return nil
}

func browseModelOptions(ds *dataset.Dataset, opts browseOptions) tui.Options {
	out := tui.Options{
		PageSizeOptions:   config.GetPageSizeOptions(),
		FilterPlaceholder: config.GetGlobalConfig().Output.FilterPlaceholder,
		ExportPath:        opts.exportPath,
		Theme:             themeService(),
	}
	if ds.PageSize <= 0 {
		out.PageSize = config.GetPageSize()
	}
	return out
}

// themeService binds the theme to the config file. An unreadable config keeps
// the preference in memory.
func themeService() *theme.Service {
	cfg, err := persistedConfig()
	if err != nil {
		logger.Warn().Err(err).Msg("theme preference will not be saved")
		svc, _ := theme.NewService(nil)
		return svc
	}
	svc, err := theme.NewService(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("using default theme")
	}
	return svc
}

// startWatch forwards file changes to the program until ctx is cancelled.
// Built-in datasets have no file and are not watched.
func startWatch(ctx context.Context, p *tea.Program, ds *dataset.Dataset) {
	if ds.Source == dataset.SourceBuiltin {
		logger.Warn().Ctx(ctx).Str("dataset", ds.Name).Msg("--watch ignored for built-in dataset")
		return
	}

	go func() {
		err := dataset.Watch(ctx, ds.Source,
			func(updated *dataset.Dataset) { p.Send(tui.RowsReloadedMsg{Dataset: updated}) },
			func(err error) { p.Send(tui.RowsReloadedMsg{Err: err}) },
		)
		if err != nil {
			logger.Error().Ctx(ctx).Err(err).Str("path", ds.Source).Msg("watcher stopped")
		}
	}()
}
