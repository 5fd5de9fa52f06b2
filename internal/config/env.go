package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

const (
	envEmail           = "GARMIN_EMAIL"
	envPassword        = "GARMIN_PASSWORD"
	envVaultPath       = "OBSIDIAN_PATH"
	envVaultPathLegacy = "OBS_PATH"
	envNoteLayout      = "OBSIDIAN_NOTE_LAYOUT"
	envHTTPTimeout     = "GARMIN_HTTP_TIMEOUT"
	envSSOURL          = "GARMIN_SSO_URL"
	envAPIURL          = "GARMIN_API_URL"
	envLogLevel        = "LOG_LEVEL"
	envMetricsTextfile = "METRICS_TEXTFILE"
	envConsumerKey     = "GARMIN_CONSUMER_KEY"
	envConsumerSecret  = "GARMIN_CONSUMER_SECRET"
	envConsumerURL     = "GARMIN_CONSUMER_URL"
)

// lookupFunc has the signature of os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// loadDotEnv exports variables from path into the process environment
// without overriding ones that are already set. A missing file is fine.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays cfg with non-empty environment values.
func parseEnv(cfg *Config, lookup lookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		return v, ok && v != ""
	}

	if v, ok := get(envEmail); ok {
		cfg.Email = v
	}
	if v, ok := get(envPassword); ok {
		cfg.Password = []byte(v)
	}
	if v, ok := get(envVaultPathLegacy); ok {
		cfg.VaultPath = v
	}
	if v, ok := get(envVaultPath); ok {
		cfg.VaultPath = v
	}
	if v, ok := get(envNoteLayout); ok {
		cfg.NoteLayout = v
	}
	if v, ok := get(envHTTPTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envHTTPTimeout, err)
		}
		cfg.HTTPTimeout = d
	}
	if v, ok := get(envSSOURL); ok {
		cfg.SSOURL = v
	}
	if v, ok := get(envAPIURL); ok {
		cfg.APIURL = v
	}
	if v, ok := get(envLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(envMetricsTextfile); ok {
		cfg.MetricsTextfile = v
	}
	if v, ok := get(envConsumerKey); ok {
		cfg.ConsumerKey = v
	}
	if v, ok := get(envConsumerSecret); ok {
		cfg.ConsumerSecret = v
	}
	if v, ok := get(envConsumerURL); ok {
		cfg.ConsumerURL = v
	}
	return nil
}
