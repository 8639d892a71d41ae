// Package config resolves dashboard settings from the config file,
// environment and defaults. Flags are applied on top by the cli layer.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultServer is used when no server is configured anywhere.
const DefaultServer = "http://localhost:8080"

// Config holds everything the dashboard needs to start.
type Config struct {
	// Server is the Quarterdeck server base URL.
	Server string `mapstructure:"server"`
	// Token is the bearer token sent with every request. Empty means
	// unauthenticated.
	Token string `mapstructure:"token"`
	// Theme selects the color scheme (charm, dracula, catppuccin, nord).
	Theme string `mapstructure:"theme"`
	// Demo runs against built-in data instead of a server.
	Demo bool `mapstructure:"demo"`
	// RefreshInterval overrides the per-screen refresh intervals when
	// non-zero.
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`

	// Logging. The TUI owns the terminal, so logs go to a file or
	// nowhere.
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration from the config file and environment.
// Resolution order: environment variables override the config file,
// which overrides defaults. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/quarterdeck")
	v.AddConfigPath(".")

	// Defaults
	v.SetDefault("server", DefaultServer)
	v.SetDefault("token", "")
	v.SetDefault("theme", "charm")
	v.SetDefault("demo", false)
	v.SetDefault("refresh_interval", time.Duration(0))
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	// Environment variables: QUARTERDECK_SERVER, QUARTERDECK_TOKEN, ...
	v.SetEnvPrefix("QUARTERDECK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found; using defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration, used when Load fails but
// the program should still come up.
func Default() *Config {
	return &Config{
		Server:    DefaultServer,
		Theme:     "charm",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Validate checks the parts of the configuration that would otherwise
// fail much later with a worse message.
func (c *Config) Validate() error {
	server := strings.TrimSpace(c.Server)
	if server == "" {
		return fmt.Errorf("server URL is empty")
	}
	u, err := url.Parse(server)
	if err != nil {
		return fmt.Errorf("server URL %q: %w", server, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server URL %q: scheme must be http or https", server)
	}
	if u.Host == "" {
		return fmt.Errorf("server URL %q: missing host", server)
	}
	c.Server = server

	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh interval must not be negative")
	}
	if c.RefreshInterval > 0 && c.RefreshInterval < time.Second {
		return fmt.Errorf("refresh interval %s is below the 1s minimum", c.RefreshInterval)
	}
	return nil
}
