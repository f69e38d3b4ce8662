// Package config provides Viper-based configuration management for the
// wikiedits server and CLI.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/olgasafonova/wikiedits-mcp-server/internal/base"
)

// EnvPrefix is prepended to every environment variable, e.g. WIKIEDITS_API_BASE_URL
const EnvPrefix = "WIKIEDITS"

// Config represents the complete configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
}

// APIConfig contains Wikimedia API settings
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// ServerConfig contains MCP server settings
type ServerConfig struct {
	// HTTPAddr enables the streamable HTTP transport when set; stdio otherwise
	HTTPAddr string `mapstructure:"http_addr"`
}

// flagKeys maps command line flag names to config keys
var flagKeys = map[string]string{
	"base-url":   "api.base_url",
	"user-agent": "api.user_agent",
	"timeout":    "api.timeout",
	"log-level":  "logging.level",
	"http":       "server.http_addr",
}

// Load reads configuration from file, environment variables and flags.
// Flags that are not defined in flags are skipped; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".wikiedits")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wikiedits")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", base.DefaultBaseURL)
	v.SetDefault("api.user_agent", base.DefaultUserAgent)
	v.SetDefault("api.timeout", base.DefaultTimeout)

	v.SetDefault("logging.level", "info")

	v.SetDefault("server.http_addr", "")
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api.base_url: %q (must be an absolute http or https URL)", cfg.API.BaseURL)
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("invalid api.timeout: %s (must be positive)", cfg.API.Timeout)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	return nil
}

// Base returns the immutable request configuration for the API client
func (c *Config) Base() base.Config {
	return base.Config{
		BaseURL:   c.API.BaseURL,
		UserAgent: c.API.UserAgent,
		Timeout:   c.API.Timeout,
	}
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
