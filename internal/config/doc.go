// Package config loads runtime configuration for garmin2obsidian.
//
// Sources & precedence (later wins)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional YAML or JSON file selected with -c or -config; the format
//     follows the file extension, unknown extensions try YAML then JSON.
//  3. A .env file in the working directory, if present. It never overrides
//     variables already set in the process environment.
//  4. Process environment.
//  5. Command-line flags.
//
// # Environment
//
//	GARMIN_EMAIL          account email (required)
//	GARMIN_PASSWORD       account password (required)
//	OBSIDIAN_PATH         vault root directory (required; OBS_PATH also accepted)
//	OBSIDIAN_NOTE_LAYOUT  Go time layout of the note path, default "2006/01/02.md"
//	GARMIN_HTTP_TIMEOUT   per-request timeout, e.g. "30s"
//	GARMIN_SSO_URL        SSO base URL
//	GARMIN_API_URL        Connect API base URL
//	LOG_LEVEL             debug, info, warn or error
//	METRICS_TEXTFILE      path of a Prometheus textfile written at exit
//
// # Flags
//
//	-c, -config string   config file
//	-date string         day to sync as YYYY-MM-DD (default: today)
//
// Every failure is wrapped with common.ErrConfiguration.
package config
