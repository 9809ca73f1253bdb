package main

import (
	"fmt"
	"os"

	"github.com/aretw0/aide/internal/cli"
	"github.com/aretw0/aide/internal/logging"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the tree for consistency",
		Long: `Crawls the tree from the root node and reports broken links, unreachable
nodes and video indexes outside the catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, os.LookupEnv)
			if err != nil {
				return err
			}
			// Problems are reported below, not at load time.
			cfg.Strict = false

			assistant, cleanup, err := cli.NewAssistant(cmd.Context(), cfg, logging.NewNop())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := assistant.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Tree is valid!")
			return nil
		},
	}
}
