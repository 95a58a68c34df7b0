// Package config loads runtime configuration for the PlanA CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the PlanA API
//	-f string   front-end URL used for the CAS service parameter
//	-d string   path of the local sqlite database
//	-t int      request timeout (seconds)
//	-r float    outbound request rate (req/s, 0 disables)
//	-l string   log backend: slog or zap
//	-v          debug logging
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or
// integer nanoseconds. Only keys present in the file override defaults:
//
//	{
//	  "api_base_url": "https://plana.example.org/api",
//	  "front_url": "https://plana.example.org",
//	  "database_path": "plana.db",
//	  "request_timeout": "10s",
//	  "rate_limit": 5,
//	  "log_backend": "zap",
//	  "templates_dir": "templates",
//	  "s3_bucket": "plana-templates",
//	  "s3_region": "eu-west-3",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "minio",
//	  "s3_secret_key": "minio123"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
