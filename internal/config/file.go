package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/garmin2obsidian/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the optional config file. Only
// non-empty values override what is already in Config.
type fileConfig struct {
	Email           string         `yaml:"garmin_email" json:"garmin_email"`
	Password        string         `yaml:"garmin_password" json:"garmin_password"`
	VaultPath       string         `yaml:"obsidian_path" json:"obsidian_path"`
	NoteLayout      string         `yaml:"note_layout" json:"note_layout"`
	HTTPTimeout     timex.Duration `yaml:"http_timeout" json:"http_timeout"`
	SSOURL          string         `yaml:"sso_url" json:"sso_url"`
	APIURL          string         `yaml:"api_url" json:"api_url"`
	LogLevel        string         `yaml:"log_level" json:"log_level"`
	MetricsTextfile string         `yaml:"metrics_textfile" json:"metrics_textfile"`
	ConsumerKey     string         `yaml:"consumer_key" json:"consumer_key"`
	ConsumerSecret  string         `yaml:"consumer_secret" json:"consumer_secret"`
	ConsumerURL     string         `yaml:"consumer_url" json:"consumer_url"`
}

// parseFile overlays cfg with values from a YAML or JSON file.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("parse JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &fc); err != nil {
			if jsonErr := json.Unmarshal(data, &fc); jsonErr != nil {
				return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %w, JSON error: %v", err, jsonErr)
			}
		}
	}

	overlay(&cfg.Email, fc.Email)
	if fc.Password != "" {
		cfg.Password = []byte(fc.Password)
	}
	overlay(&cfg.VaultPath, fc.VaultPath)
	overlay(&cfg.NoteLayout, fc.NoteLayout)
	if fc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = fc.HTTPTimeout.Duration
	}
	overlay(&cfg.SSOURL, fc.SSOURL)
	overlay(&cfg.APIURL, fc.APIURL)
	overlay(&cfg.LogLevel, fc.LogLevel)
	overlay(&cfg.MetricsTextfile, fc.MetricsTextfile)
	overlay(&cfg.ConsumerKey, fc.ConsumerKey)
	overlay(&cfg.ConsumerSecret, fc.ConsumerSecret)
	overlay(&cfg.ConsumerURL, fc.ConsumerURL)
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
