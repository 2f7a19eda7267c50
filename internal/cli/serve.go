package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pagemarks/pkg/cache"
	"github.com/matzehuels/pagemarks/pkg/pipeline"
	"github.com/matzehuels/pagemarks/pkg/server"
)

// serveCommand creates the command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

  POST /v1/layout   scene JSON (or TOML/YAML by Content-Type) → placed markers
  GET  /healthz     liveness and cache reachability
  GET  /version     build information

The server shares the configured cache; API entries are kept apart from CLI
runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache, timeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&timeout, "request-timeout", 30*time.Second, "per-request timeout")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, timeout time.Duration) error {
	store, err := c.newCache(noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, "api:"), c.Logger)
	defer runner.Close()

	opts := c.runOptions(-1, false)
	opts.Logger = nil
	srv := server.New(runner, server.Config{
		Addr:           addr,
		RequestTimeout: timeout,
		Defaults:       opts,
	}, c.Logger)

	err = srv.ListenAndServe(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
