// Package config handles configuration for the diary server: defaults, an
// optional JSON overlay (-c or -config) and command-line flags, in that order.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/travelbook/internal/flagx"
	"github.com/dmitrijs2005/travelbook/internal/timex"
)

// Config holds runtime settings for the diary server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Prefix is prepended to every route, e.g. "/api/v1".
	Prefix          string
	LogLevel        string
	ShutdownTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.Prefix = "/api/v1"
	c.LogLevel = "info"
	c.ShutdownTimeout = 5 * time.Second
}

// Load builds a Config from defaults, the JSON file and then flags. args
// excludes the program name.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// JSONConfig is the on-disk shape of the config file.
type JSONConfig struct {
	Addr            string          `json:"addr"`
	Prefix          *string         `json:"prefix"`
	LogLevel        string          `json:"log_level"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.Prefix != nil {
		cfg.Prefix = *jc.Prefix
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	return nil
}

// parseFlags overlays cfg with:
//
//	-a string     listen address
//	-p string     route prefix ("" serves at the root)
//	-l string     log level
//	-s duration   graceful shutdown timeout
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("diaryserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	fs.StringVar(&cfg.Prefix, "p", cfg.Prefix, "route prefix")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.DurationVar(&cfg.ShutdownTimeout, "s", cfg.ShutdownTimeout, "graceful shutdown timeout")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"a", "p", "l", "s"})); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
