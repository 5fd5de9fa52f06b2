package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/garmin2obsidian/internal/common"
	"github.com/dmitrijs2005/garmin2obsidian/internal/filex"
	"github.com/dmitrijs2005/garmin2obsidian/internal/timex"
)

const (
	DefaultNoteLayout  = "2006/01/02.md"
	DefaultSSOURL      = "https://sso.garmin.com"
	DefaultAPIURL      = "https://connectapi.garmin.com"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultLogLevel    = "info"
	dotEnvFile         = ".env"
)

// Config holds everything a single sync run needs.
//
// Password is kept as bytes so it can be wiped once the session is
// established. Date is zero unless -date was given; use TargetDate.
type Config struct {
	Email           string
	Password        []byte
	VaultPath       string
	NoteLayout      string
	Date            time.Time
	HTTPTimeout     time.Duration
	SSOURL          string
	APIURL          string
	LogLevel        string
	MetricsTextfile string

	// OAuth1 consumer for the Garmin ticket exchange. When both are empty
	// the credentials are fetched from ConsumerURL, or the published
	// default when that is empty too.
	ConsumerKey    string
	ConsumerSecret string
	ConsumerURL    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.NoteLayout = DefaultNoteLayout
	c.HTTPTimeout = DefaultHTTPTimeout
	c.SSOURL = DefaultSSOURL
	c.APIURL = DefaultAPIURL
	c.LogLevel = DefaultLogLevel
}

// LoadConfig builds a Config from defaults, the optional config file, .env,
// the process environment and args (usually os.Args[1:]), then validates it.
// No network access happens here.
func LoadConfig(args []string) (*Config, error) {
	a, err := ParseArgs(args)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	cfg.LoadDefaults()

	if a.ConfigFile != "" {
		if err := parseFile(cfg, a.ConfigFile); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
		}
	}

	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}

	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}

	if err := applyArgs(cfg, a); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and normalises the vault path. All
// problems are reported together.
func (c *Config) Validate() error {
	var problems []error

	if c.Email == "" {
		problems = append(problems, errors.New(envEmail+" is not set"))
	}
	if len(c.Password) == 0 {
		problems = append(problems, errors.New(envPassword+" is not set"))
	}

	if c.VaultPath == "" {
		problems = append(problems, errors.New(envVaultPath+" is not set"))
	} else if err := c.resolveVault(); err != nil {
		problems = append(problems, err)
	}

	if c.NoteLayout == "" {
		problems = append(problems, errors.New("note layout is empty"))
	}
	if c.HTTPTimeout <= 0 {
		problems = append(problems, fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout))
	}
	if err := checkBaseURL(c.SSOURL); err != nil {
		problems = append(problems, fmt.Errorf("sso url: %w", err))
	}
	if err := checkBaseURL(c.APIURL); err != nil {
		problems = append(problems, fmt.Errorf("api url: %w", err))
	}
	if (c.ConsumerKey == "") != (c.ConsumerSecret == "") {
		problems = append(problems, errors.New(envConsumerKey+" and "+envConsumerSecret+" must be set together"))
	}
	if c.ConsumerURL != "" {
		if err := checkBaseURL(c.ConsumerURL); err != nil {
			problems = append(problems, fmt.Errorf("consumer url: %w", err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", common.ErrConfiguration, errors.Join(problems...))
	}
	return nil
}

// TargetDate returns the day to sync: the -date value, or the calendar day
// of now.
func (c *Config) TargetDate(now time.Time) time.Time {
	if !c.Date.IsZero() {
		return c.Date
	}
	return timex.StartOfDay(now)
}

func (c *Config) resolveVault() error {
	path, err := filex.ExpandHome(c.VaultPath)
	if err != nil {
		return fmt.Errorf("vault path: %w", err)
	}
	if err := filex.IsDir(path); err != nil {
		return fmt.Errorf("vault path is not an accessible directory: %w", err)
	}
	c.VaultPath = path
	return nil
}

func checkBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme in %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
