// Package cli implements the tablekit command tree.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/internal/config"
	"github.com/rshade/tablekit/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the tablekit CLI.
// It wires config loading, logging and tracing ahead of every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "tablekit",
		Short:         "Sort, filter and page tabular datasets",
		Long:          "tablekit: browse, render and export tabular data with tri-state sorting, filtering and pagination",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $TABLEKIT_HOME/config.yaml)")
	cmd.AddCommand(
		NewShowCmd(), NewExportCmd(), NewBrowseCmd(), NewDatasetsCmd(),
		newConfigCmd(), NewThemeCmd(), NewVersionCmd(ver),
	)

	return cmd
}

// loadConfig replaces the global config when --config names a file.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		config.InitGlobalConfig()
		return nil
	}
	cfg, err := config.NewFromFile(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// persistedConfig reads the config file without the project overlay or
// environment overrides, so that saving it does not bake them in.
func persistedConfig() (*config.Config, error) {
	cfg, err := config.Load(config.GetGlobalConfig().Path())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

const rootCmdExample = `  # Show the built-in users table sorted by name
  tablekit show users --sort name

  # Filter a CSV file and print page 2 as JSON
  tablekit show people.csv --filter admin --page 2 --output json

  # Export every matching row to Excel
  tablekit export products --filter accessories --all --out products.xlsx

  # Browse a file interactively and reload it when it changes
  tablekit browse people.yaml --watch

  # Set the default page size
  tablekit config set output.page_size 25`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
