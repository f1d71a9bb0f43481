package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/travelbook/internal/client/client"
	"github.com/dmitrijs2005/travelbook/internal/filex"
)

// Config holds runtime settings for the travelbook CLI.
type Config struct {
	// DatabasePath is the SQLite file; ":memory:" keeps everything in RAM.
	DatabasePath string
	// RemoteBaseURL is the root of the diary API, without a trailing slash.
	RemoteBaseURL  string
	RequestTimeout time.Duration
	LogLevel       string

	// ImageRoot resolves relative image paths.
	ImageRoot string

	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "~/.travelbook/travelbook.db"
	c.RemoteBaseURL = client.DefaultBaseURL
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.ImageRoot = ""
	c.S3Region = "us-east-1"
}

// Load constructs a Config from defaults, then the JSON file named by -c or
// -config (if any), then flags. Later sources take precedence. args excludes
// the program name.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	path, err := filex.ExpandHome(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}
	cfg.DatabasePath = path

	root, err := filex.ExpandHome(cfg.ImageRoot)
	if err != nil {
		return nil, fmt.Errorf("image root: %w", err)
	}
	cfg.ImageRoot = root

	return cfg, nil
}
