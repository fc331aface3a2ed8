// Command tablekit sorts, filters, pages, renders and exports tabular datasets.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/tablekit/internal/cli"
	"github.com/rshade/tablekit/pkg/version"
)

func main() {
	os.Exit(exitCode(run(os.Args[1:])))
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// exitCode maps a command error to the process exit status. cobra has already
// printed the error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
