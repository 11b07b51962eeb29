package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cfg     server.Config
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the grid API over HTTP",
		Long: `Serve exposes column counting, item geometry, layout validation and rendering
as a JSON API. Requests are rate limited per client; the server shuts down
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c.Config.applyServer(&cfg)

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			observability.NewLogHooks(c.Logger).Install()
			defer observability.Reset()

			return server.New(runner, c.Logger, cfg).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", "", "listen address (default "+server.DefaultAddr+")")
	cmd.Flags().Float64Var(&cfg.RateLimit, "rate-limit", 0, "requests per second per client, negative disables (default 20)")
	cmd.Flags().IntVar(&cfg.Burst, "burst", 0, "rate limit burst size (default 40)")
	cmd.Flags().DurationVar(&cfg.RequestTimeout, "request-timeout", 0, "per-request timeout (default 30s)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
