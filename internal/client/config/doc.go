// Package config loads runtime configuration for the travelbook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Durations may be strings like "15s" or integer nanoseconds:
//
//	{
//	  "database_path": "~/.travelbook/travelbook.db",
//	  "remote_base_url": "https://travel-diary.moetz.dev/api/v1",
//	  "request_timeout": "30s",
//	  "log_level": "info",
//	  "image_root": "~/Pictures",
//	  "s3_region": "us-east-1",
//	  "s3_endpoint": "http://localhost:9000",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin"
//	}
//
// A leading "~/" in database_path and image_root is expanded to the home
// directory. Environment variables are not read.
package config
