package cli

import (
	"github.com/spf13/cobra"

	"github.com/toldot/toldot/internal/server"
	"github.com/toldot/toldot/pkg/cache"
	"github.com/toldot/toldot/pkg/observability"
	"github.com/toldot/toldot/pkg/pipeline"
)

// serveKeyPrefix separates server cache entries from CLI ones in a shared
// backend.
const serveKeyPrefix = "serve:"

// serveCommand creates the serve command, which exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		watch bool
		lf    layoutFlags
		rf    renderFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the timeline API",
		Long: `Serve the timeline API and rendered artifacts over HTTP.

Query parameters on /api/timeline/* override the configured defaults per
request. A local dataset file is reloaded when it changes unless --watch=false.
Prometheus metrics are exposed at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("watch") {
				watch = c.Config.Server.Watch
			}

			opts := c.baseOptions()
			lf.apply(cmd, &opts)
			rf.apply(cmd, &opts)

			cc, err := c.newCache(ctx)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, serveKeyPrefix), c.Logger)
			defer runner.Close()

			observability.NewPrometheusHooks().Register()
			defer observability.Reset()

			newPrinter(cmd.ErrOrStderr()).info("Serving %s on %s", opts.Source, StyleLink.Render(addr))
			return server.New(runner, opts, c.Logger).Run(ctx, addr, watch)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload a local dataset file when it changes")
	lf.register(cmd)
	rf.register(cmd)
	return cmd
}
