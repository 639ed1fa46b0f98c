package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wirechain/internal/server"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the decomposition HTTP API",
		Long: `Serve the decomposition API. The cache backend and the result store come
from the config file; without a store.mongo_uri results are kept in memory.`,
		Example: `  wirechain serve --addr :8080
  WIRECHAIN_MONGO_URI=mongodb://localhost:27017 wirechain serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache, true)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			srv := server.New(runner, server.Options{
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				Logger:       c.Logger,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
