package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meshtools/meshcolor/internal/api"
)

// serveCommand creates the serve command for running the coloring API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the coloring HTTP API",
		Long: `Run the coloring HTTP API.

The server exposes the same pipeline as the CLI:

  GET  /healthz       liveness probe
  POST /v1/colorings  color a mesh posted as JSON

Colorings are cached with the same backend as the CLI, so a mesh colored on
the command line is a cache hit for the API and vice versa. Configure a
Redis address in the config file to share the cache across instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			server := api.NewServer(runner, c.Logger, addr)
			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default localhost:8400)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
