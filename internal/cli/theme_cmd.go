package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/internal/config"
	"github.com/rshade/tablekit/internal/theme"
)

// NewThemeCmd creates the theme command, which shows or changes the persisted
// light/dark preference used by browse.
func NewThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the TUI theme",
		Example: `  tablekit theme
  tablekit theme toggle
  tablekit theme set dark`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := persistedTheme()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.Mode())
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				svc, err := persistedTheme()
				if err != nil {
					return err
				}
				mode, err := svc.Toggle()
				if err != nil {
					return err
				}
				cmd.Printf("Theme set to %s\n", mode)
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <light|dark>",
			Short:     "Set the theme",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{config.ThemeLight, config.ThemeDark},
			RunE: func(cmd *cobra.Command, args []string) error {
				name := strings.ToLower(strings.TrimSpace(args[0]))
				if name != config.ThemeLight && name != config.ThemeDark {
					return fmt.Errorf("%w: got %q", config.ErrInvalidTheme, args[0])
				}
				svc, err := persistedTheme()
				if err != nil {
					return err
				}
				if err = svc.Set(theme.Mode(name)); err != nil {
					return err
				}
				cmd.Printf("Theme set to %s\n", name)
				return nil
			},
		},
	)

	return cmd
}

func persistedTheme() (*theme.Service, error) {
	cfg, err := persistedConfig()
	if err != nil {
		return nil, err
	}
	return theme.NewService(cfg)
}
