package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/studybuddy/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is a DTO used only for decoding config files. Durations use
// timex.Duration so they can be written as "3s" or as integer nanoseconds.
// Zero values leave the current setting untouched.
type fileConfig struct {
	ServerURL         string         `json:"server_url" yaml:"server_url"`
	RequestTimeout    timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DatabasePath      string         `json:"database_path" yaml:"database_path"`
	MatchDisplayDelay timex.Duration `json:"match_display_delay" yaml:"match_display_delay"`
	LogLevel          string         `json:"log_level" yaml:"log_level"`
	MetricsAddr       string         `json:"metrics_addr" yaml:"metrics_addr"`
}

// parseFile overlays cfg with the file at path. The format follows the
// extension: .yaml and .yml are YAML, anything else is JSON.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.MatchDisplayDelay.Duration > 0 {
		cfg.MatchDisplayDelay = fc.MatchDisplayDelay.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.MetricsAddr != "" {
		cfg.MetricsAddr = fc.MetricsAddr
	}
	return nil
}
