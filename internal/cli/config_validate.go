package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: the config file, the project-local
.tablekit.yaml overlay and environment overrides.`,
		Example: `  # Validate current configuration
  tablekit config validate

  # Validate and show detailed information
  tablekit config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		cmd.Println()
		cmd.Println("Configuration details:")
		cmd.Printf("  Config file: %s\n", cfg.Path())
		for _, o := range cfg.Overlays() {
			cmd.Printf("  Overlay: %s (%s)\n", o.Path, strings.Join(o.Sections, ", "))
		}
		for _, s := range cfg.SkippedOverlays() {
			cmd.Printf("  Skipped overlay: %s (%v)\n", s.Path, s.Err)
		}
		cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
		cmd.Printf("  Page size: %d\n", cfg.Output.PageSize)
		cmd.Printf("  Page size options: %v\n", cfg.Output.PageSizeOptions)
		cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
		cmd.Printf("  Theme: %s\n", cfg.Theme.Mode)
	}

	return nil
}
