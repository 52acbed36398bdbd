package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/studybuddy/internal/flagx"
)

// Config holds runtime settings for the StudyBuddy CLI.
//
// Fields:
//   - ServerURL: base URL of the StudyBuddy backend.
//   - RequestTimeout: end-to-end limit for one HTTP request.
//   - DatabasePath: local SQLite file with the session and matches.
//   - MatchDisplayDelay: how long a match is shown before moving on.
//   - LogLevel: debug, info, warn or error.
//   - MetricsAddr: listen address for /metrics; empty disables it.
type Config struct {
	ServerURL         string
	RequestTimeout    time.Duration
	DatabasePath      string
	MatchDisplayDelay time.Duration
	LogLevel          string
	MetricsAddr       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 20 * time.Second
	c.DatabasePath = "studybuddy.db"
	c.MatchDisplayDelay = 2 * time.Second
	c.LogLevel = "info"
	c.MetricsAddr = ""
}

// Load builds a Config from defaults, then the config file named by -c or
// -config, then the environment, then command-line flags. Later sources
// take precedence over earlier ones.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}
	parseEnv(cfg, getenv)
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
