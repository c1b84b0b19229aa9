package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Intel Terminal Configuration

[terminal]
# Maximum entries shown on the ranked intelligence wire
display_limit = 15
# Refresh interval for live mode
refresh_interval = "60s"
# Price history period for the analysis pane
history_period = "1y"
# Ticker pre-selected on startup (empty for none)
default_ticker = ""
# Path to the persisted portfolio list
# portfolio_file = "~/.config/intel-terminal/portfolio.json"
# Persist each pass's alerts to the local archive
archive_enabled = true

[feeds]
# Per-call timeout for every upstream fetch
fetch_timeout = "10s"
# User agent sent on feed requests
user_agent = "intel-terminal/0.1 (research use)"
# Regulatory filings feed endpoint
regulatory_url = "https://www.sec.gov/cgi-bin/browse-edgar"
# Insider transactions endpoint (requires api key in credentials.toml)
insider_url = "https://finnhub.io/api/v1/stock/insider-transactions"
# Optional YAML file overriding the built-in whale wire table
whale_wire_file = ""
# Refresh interval for the index membership map
membership_ttl = "1h"
# Most recent qualifying insider trades kept per ticker
insider_per_ticker = 3

[ui]
# Enable colored output
color_enabled = true
# Date format for displayed alert dates
date_format = "01/02/2006"
`

const credentialsTemplate = `# Intel Terminal Credentials
# WARNING: Keep this file secure! Do not commit to version control.

[insider]
# API key for the insider-trade feed. Leave empty to disable the feed.
api_key = ""
`

const overridesTemplate = `# Intel Terminal Per-Ticker Overrides
# Curated corrections for tickers whose upstream data is wrong or missing.
# This file is a data asset: edit it, do not fork the code.

# Next earnings date overrides (ISO dates)
[earnings_dates]
# BMNR = "2026-03-12"

# CEO overrides for tickers whose officer list is stale upstream
[ceo]
SOFI = "Anthony Noto"
OPEN = "Kaz Nejatian"

# Ticker to registry identifier (CIK) for the regulatory filings feed
[cik]
META = "0001326801"
AMZN = "0001018724"
SOFI = "0001818874"
AVGO = "0001730168"
`

func defaultOverrides() OverridesConfig {
	return OverridesConfig{
		EarningsDates: map[string]string{},
		CEO: map[string]string{
			"SOFI": "Anthony Noto",
			"OPEN": "Kaz Nejatian",
		},
		CIK: map[string]string{
			"META": "0001326801",
			"AMZN": "0001018724",
			"SOFI": "0001818874",
			"AVGO": "0001730168",
		},
	}
}

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	// Use restricted permissions for credentials file
	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}

	return nil
}

func createTemplateOverrides(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "overrides.toml")
	if err := os.WriteFile(path, []byte(overridesTemplate), 0644); err != nil {
		return fmt.Errorf("writing overrides template: %w", err)
	}

	return nil
}
