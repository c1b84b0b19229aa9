// Package config provides configuration management for the terminal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	apperrors "intel-terminal/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Terminal    TerminalConfig  `mapstructure:"terminal"`
	Feeds       FeedsConfig     `mapstructure:"feeds"`
	UI          UIConfig        `mapstructure:"ui"`
	Credentials Credentials     `mapstructure:"-"` // Loaded separately
	Overrides   OverridesConfig `mapstructure:"-"` // Loaded separately
}

// TerminalConfig holds refresh and display configuration.
type TerminalConfig struct {
	// DisplayLimit caps the ranked intelligence wire shown per pass.
	DisplayLimit    int           `mapstructure:"display_limit"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	HistoryPeriod   string        `mapstructure:"history_period"` // e.g. "1y"
	DefaultTicker   string        `mapstructure:"default_ticker"`
	PortfolioFile   string        `mapstructure:"portfolio_file"`
	ArchiveEnabled  bool          `mapstructure:"archive_enabled"`
}

// FeedsConfig holds per-feed fetch configuration.
type FeedsConfig struct {
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	RegulatoryURL  string        `mapstructure:"regulatory_url"`
	InsiderURL     string        `mapstructure:"insider_url"`
	WhaleWireFile  string        `mapstructure:"whale_wire_file"`
	MembershipTTL  time.Duration `mapstructure:"membership_ttl"`
	InsiderPerTick int           `mapstructure:"insider_per_ticker"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// Credentials holds API credentials.
type Credentials struct {
	Insider InsiderCredentials `mapstructure:"insider"`
}

// InsiderCredentials holds the insider-trade feed API key. An empty key is
// a known state: the insider feed is disabled, not an error.
type InsiderCredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// OverridesConfig is the curated per-ticker override data asset. These
// tables exist because upstream calendar/officer data is known to be wrong
// or missing for specific tickers; they are configuration, not code.
type OverridesConfig struct {
	// EarningsDates maps ticker to an ISO date string.
	EarningsDates map[string]string `mapstructure:"earnings_dates"`
	// CEO maps ticker to the chief executive's name.
	CEO map[string]string `mapstructure:"ceo"`
	// CIK maps ticker to its regulatory registry identifier.
	CIK map[string]string `mapstructure:"cik"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/intel-terminal"
	}
	return filepath.Join(home, ".config", "intel-terminal")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	// Load main config
	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Load credentials
	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	// Load per-ticker overrides
	if err := loadOverrides(configDir, &cfg.Overrides); err != nil {
		return nil, fmt.Errorf("loading overrides.toml: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConfigInvalid, err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setTerminalDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run: write a template and continue on defaults.
			if werr := createTemplateConfig(configDir); werr != nil {
				return werr
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func setTerminalDefaults(v *viper.Viper) {
	v.SetDefault("terminal.display_limit", 15)
	v.SetDefault("terminal.refresh_interval", "60s")
	v.SetDefault("terminal.history_period", "1y")
	v.SetDefault("terminal.default_ticker", "")
	v.SetDefault("terminal.portfolio_file", filepath.Join(DefaultConfigDir(), "portfolio.json"))
	v.SetDefault("terminal.archive_enabled", true)

	v.SetDefault("feeds.fetch_timeout", "10s")
	v.SetDefault("feeds.user_agent", "intel-terminal/0.1 (research use)")
	v.SetDefault("feeds.regulatory_url", "https://www.sec.gov/cgi-bin/browse-edgar")
	v.SetDefault("feeds.insider_url", "https://finnhub.io/api/v1/stock/insider-transactions")
	v.SetDefault("feeds.whale_wire_file", "")
	v.SetDefault("feeds.membership_ttl", "1h")
	v.SetDefault("feeds.insider_per_ticker", 3)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "01/02/2006")
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No credentials is a supported state: key-gated feeds stay off.
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func loadOverrides(configDir string, overrides *OverridesConfig) error {
	v := viper.New()
	v.SetConfigName("overrides")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if werr := createTemplateOverrides(configDir); werr != nil {
				return werr
			}
			*overrides = defaultOverrides()
			return nil
		}
		return err
	}

	if err := v.Unmarshal(overrides); err != nil {
		return err
	}
	if overrides.EarningsDates == nil {
		overrides.EarningsDates = map[string]string{}
	}
	if overrides.CEO == nil {
		overrides.CEO = map[string]string{}
	}
	if overrides.CIK == nil {
		overrides.CIK = map[string]string{}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INSIDER_API_KEY"); v != "" {
		cfg.Credentials.Insider.APIKey = v
	}
	if v := os.Getenv("TERMINAL_PORTFOLIO_FILE"); v != "" {
		cfg.Terminal.PortfolioFile = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Terminal.DisplayLimit <= 0 {
		return fmt.Errorf("display_limit must be positive")
	}
	if c.Terminal.RefreshInterval < time.Second {
		return fmt.Errorf("refresh_interval must be at least 1s")
	}
	if c.Feeds.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}
	if c.Feeds.InsiderPerTick <= 0 {
		return fmt.Errorf("insider_per_ticker must be positive")
	}
	return nil
}

// InsiderEnabled returns true when the insider-trade feed is configured.
func (c *Config) InsiderEnabled() bool {
	return c.Credentials.Insider.APIKey != ""
}
