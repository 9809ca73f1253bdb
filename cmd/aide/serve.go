package main

import (
	"os"

	"github.com/aretw0/aide/internal/cli"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the stateless HTTP server",
		Long: `Serves the tree, the video catalog, rendered nodes and Prometheus metrics
over HTTP. The catalog is also exposed on the legacy videos path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, os.LookupEnv)
			if err != nil {
				return err
			}
			logger, err := cli.CreateLogger(cfg.Log)
			if err != nil {
				return err
			}

			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()
			return cli.Serve(ctx, cfg, logger)
		},
	}
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (env AIDE_ADDR)")
	return serveCmd
}
