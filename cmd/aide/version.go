package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/aide"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of aide",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "aide version %s\n", strings.TrimSpace(aide.Version))
		},
	}
}
