package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/travelbook/internal/flagx"
	"github.com/dmitrijs2005/travelbook/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Absent or empty
// fields leave the current value alone.
type JSONConfig struct {
	DatabasePath   string          `json:"database_path"`
	RemoteBaseURL  string          `json:"remote_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       string          `json:"log_level"`
	ImageRoot      string          `json:"image_root"`
	S3Region       string          `json:"s3_region"`
	S3Endpoint     string          `json:"s3_endpoint"`
	S3AccessKey    string          `json:"s3_access_key"`
	S3SecretKey    string          `json:"s3_secret_key"`
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

	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.RemoteBaseURL, jc.RemoteBaseURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.ImageRoot, jc.ImageRoot)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
