// Package config holds the settings shared by the aide commands.
// Values are resolved as flag > environment > file > default; flags are
// applied by the command layer.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aretw0/aide/pkg/treestore"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvTree         = "AIDE_TREE"
	EnvVideosURL    = "AIDE_VIDEOS_URL"
	EnvVideosFile   = "AIDE_VIDEOS_FILE"
	EnvBaseURL      = "AIDE_BASE_URL"
	EnvRedisAddr    = "AIDE_REDIS_ADDR"
	EnvCacheTTL     = "AIDE_CACHE_TTL"
	EnvLogLevel     = "AIDE_LOG_LEVEL"
	EnvLogFormat    = "AIDE_LOG_FORMAT"
	EnvEntry        = "AIDE_ENTRY"
	EnvStrict       = "AIDE_STRICT"
	EnvServeAddress = "AIDE_ADDR"

	// EnvConfigFile names the YAML file; it is read by the command layer.
	EnvConfigFile = "AIDE_CONFIG"
)

// Config is the resolved configuration.
type Config struct {
	Tree       string        `yaml:"tree"`
	VideosFile string        `yaml:"videos_file"`
	VideosURL  string        `yaml:"videos_url"`
	BaseURL    string        `yaml:"base_url"`
	Redis      RedisConfig   `yaml:"redis"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
	Log        LogConfig     `yaml:"log"`
	Entry      string        `yaml:"entry"`
	Strict     bool          `yaml:"strict"`
	Addr       string        `yaml:"addr"`
}

// RedisConfig locates the optional catalog cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tree:     treestore.DefaultSource,
		CacheTTL: 10 * time.Minute,
		Log:      LogConfig{Level: "info", Format: "text"},
		Entry:    "start",
		Addr:     ":8080",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with the AIDE_* variables found by lookup
// (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvTree, &c.Tree)
	str(EnvVideosURL, &c.VideosURL)
	str(EnvVideosFile, &c.VideosFile)
	str(EnvBaseURL, &c.BaseURL)
	str(EnvRedisAddr, &c.Redis.Addr)
	str(EnvLogLevel, &c.Log.Level)
	str(EnvLogFormat, &c.Log.Format)
	str(EnvEntry, &c.Entry)
	str(EnvServeAddress, &c.Addr)

	if v, ok := lookup(EnvCacheTTL); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheTTL, err)
		}
		c.CacheTTL = ttl
	}
	if v, ok := lookup(EnvStrict); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrict, err)
		}
		c.Strict = strict
	}
	return nil
}
