package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/tablekit/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(ver string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Normalize(ver))
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			if version.IsPrerelease(ver) {
				cmd.Println("This is a pre-release build.")
			}
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")

	return cmd
}
