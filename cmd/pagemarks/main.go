package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagemarks/internal/cli"
	perrors "github.com/matzehuels/pagemarks/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "error:", perrors.UserMessage(err))
	}
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process exit status. Bad input
// (scene or config) exits 2 so scripts can tell it apart from runtime failures.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case perrors.Is(err, perrors.ErrCodeInvalidScene), perrors.Is(err, perrors.ErrCodeInvalidConfig):
		return 2
	default:
		return 1
	}
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "enable verbose logging")

	// Flags are parsed before PersistentPreRunE runs, so the level is set
	// there, ahead of config loading.
	next := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if next == nil {
			return nil
		}
		return next(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
