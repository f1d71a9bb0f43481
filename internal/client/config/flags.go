package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/travelbook/internal/flagx"
)

var knownFlags = []string{
	"d", "u", "t", "l", "r",
	"s3-region", "s3-endpoint", "s3-access-key", "s3-secret-key",
}

// parseFlags overlays cfg with command-line flags:
//
//	-d string          database file
//	-u string          diary API base url
//	-t duration        request timeout, e.g. 15s
//	-l string          log level (debug, info, warn, error)
//	-r string          directory for relative image paths
//	-s3-region string
//	-s3-endpoint string
//	-s3-access-key string
//	-s3-secret-key string
//
// Flags owned by other components (such as -c) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("travelbook", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "database file")
	fs.StringVar(&cfg.RemoteBaseURL, "u", cfg.RemoteBaseURL, "diary API base url")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.ImageRoot, "r", cfg.ImageRoot, "directory for relative image paths")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "s3 region")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "s3 endpoint (MinIO)")
	fs.StringVar(&cfg.S3AccessKey, "s3-access-key", cfg.S3AccessKey, "s3 access key")
	fs.StringVar(&cfg.S3SecretKey, "s3-secret-key", cfg.S3SecretKey, "s3 secret key")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
