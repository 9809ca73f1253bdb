package main

import (
	"fmt"
	"os"

	"github.com/aretw0/aide/internal/cli"
	"github.com/aretw0/aide/internal/logging"
	"github.com/aretw0/aide/internal/presentation/graph"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Export the tree as a Mermaid diagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, os.LookupEnv)
			if err != nil {
				return err
			}
			cfg.Strict = false

			assistant, cleanup, err := cli.NewAssistant(cmd.Context(), cfg, logging.NewNop())
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(assistant.Inspect(), assistant.EntryNodeID(), nil))
			return nil
		},
	}
}
