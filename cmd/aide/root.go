package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/aide/internal/config"
	"github.com/aretw0/aide/pkg/adapters/remote"
	"github.com/aretw0/aide/pkg/treestore"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aide",
		Short: "aide is a decision-tree help assistant",
		Long: `aide walks users through a tree of help answers, showing tutorial
videos from a catalog along the way. It runs as a terminal chat, an HTTP API
or an MCP server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML configuration file (env AIDE_CONFIG)")
	flags.String("tree", treestore.DefaultSource, "Tree source: JSON/YAML file, node directory or http(s) URL")
	flags.String("videos-file", "", "JSON or YAML video catalog injected as-is")
	flags.String("videos-url", "", "Endpoint serving the video catalog")
	flags.String("base-url", "", "Site serving the catalog at "+remote.DefaultVideosPath+" (default: origin of an http(s) tree)")
	flags.String("redis-addr", "", "Redis address caching the fetched catalog")
	flags.Duration("cache-ttl", 10*time.Minute, "Lifetime of the cached catalog")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.String("entry", "start", "Root node id")
	flags.Bool("strict", false, "Reject trees with broken links or unreachable nodes at startup")

	rootCmd.AddCommand(
		newChatCmd(),
		newServeCmd(),
		newMCPCmd(),
		newValidateCmd(),
		newGraphCmd(),
		newVersionCmd(),
	)

	// Chat is the default when no command is provided.
	chat := newChatCmd()
	rootCmd.Flags().AddFlagSet(chat.Flags())
	rootCmd.RunE = chat.RunE
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig merges defaults, the config file, the environment and the
// flags, later sources winning.
func resolveConfig(cmd *cobra.Command, lookup func(string) (string, bool)) (config.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	if !flags.Changed("config") {
		if v, ok := lookup(config.EnvConfigFile); ok {
			path = v
		}
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	setString := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	setString("tree", &cfg.Tree)
	setString("videos-file", &cfg.VideosFile)
	setString("videos-url", &cfg.VideosURL)
	setString("base-url", &cfg.BaseURL)
	setString("redis-addr", &cfg.Redis.Addr)
	setString("log-level", &cfg.Log.Level)
	setString("log-format", &cfg.Log.Format)
	setString("entry", &cfg.Entry)
	if flags.Changed("cache-ttl") {
		cfg.CacheTTL, _ = flags.GetDuration("cache-ttl")
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}
	return cfg, nil
}
