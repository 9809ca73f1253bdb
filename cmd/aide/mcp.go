package main

import (
	"os"

	"github.com/aretw0/aide"
	"github.com/aretw0/aide/internal/cli"
	"github.com/aretw0/aide/pkg/adapters/mcp"
	"github.com/aretw0/aide/pkg/observability"
	"github.com/aretw0/aide/pkg/sink"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes the conversation as MCP tools (start, choose, reset, render_node)
and the tree as the aide://tree resource over stdio. Logs go to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, os.LookupEnv)
			if err != nil {
				return err
			}
			logger, err := cli.CreateLogger(cfg.Log)
			if err != nil {
				return err
			}

			recorder := sink.NewRecorder()
			assistant, cleanup, err := cli.NewAssistant(cmd.Context(), cfg, logger,
				aide.WithSink(recorder),
				aide.WithLifecycleHooks(observability.LoggingHooks(logger)),
			)
			if err != nil {
				return err
			}
			defer cleanup()

			srv := mcp.NewServer(assistant, recorder, aide.Version, mcp.WithLogger(logger))
			logger.Info("starting aide MCP server (stdio)")
			return srv.ServeStdio()
		},
	}
}
