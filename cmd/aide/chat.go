package main

import (
	"os"

	"github.com/aretw0/aide/internal/cli"
	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant in the terminal",
		Long: `Starts a conversation at the root node. Answer with the number or the
label of a choice, 'reset' to start over or 'quit' to leave.

With --json every event is written as a JSON line and input lines may be
JSON objects such as {"choice": 1} or {"command": "reset"}.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, os.LookupEnv)
			if err != nil {
				return err
			}
			logger, err := cli.CreateLogger(cfg.Log)
			if err != nil {
				return err
			}
			jsonMode, _ := cmd.Flags().GetBool("json")

			return cli.RunSession(cmd.Context(), cli.SessionOptions{
				Config: cfg,
				JSON:   jsonMode,
				In:     cmd.InOrStdin(),
				Out:    cmd.OutOrStdout(),
				Logger: logger,
			})
		},
	}
	chatCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	return chatCmd
}
