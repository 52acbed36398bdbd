package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.ServerURL)
	assert.Equal(t, 20*time.Second, c.RequestTimeout)
	assert.Equal(t, 2*time.Second, c.MatchDisplayDelay)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.MetricsAddr)
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "cfg.json", `{
		"server_url": "http://api.example",
		"request_timeout": "5s",
		"match_display_delay": 500000000,
		"metrics_addr": ":9100"
	}`)

	cfg, err := Load([]string{"-c", path}, nil)
	require.NoError(t, err)

	want := defaults()
	want.ServerURL = "http://api.example"
	want.RequestTimeout = 5 * time.Second
	want.MatchDisplayDelay = 500 * time.Millisecond
	want.MetricsAddr = ":9100"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
server_url: http://yaml.example
database_path: /tmp/sb.db
match_display_delay: 1s
log_level: debug
`)

	cfg, err := Load([]string{"-config=" + path}, nil)
	require.NoError(t, err)

	want := defaults()
	want.ServerURL = "http://yaml.example"
	want.DatabasePath = "/tmp/sb.db"
	want.MatchDisplayDelay = time.Second
	want.LogLevel = "debug"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "cfg.yml", "server_url: http://file\ndatabase_path: file.db\n")
	env := envOf(map[string]string{
		EnvServerURL: "http://env",
		EnvDatabase:  "env.db",
	})

	t.Run("env over file", func(t *testing.T) {
		cfg, err := Load([]string{"-c", path}, env)
		require.NoError(t, err)
		assert.Equal(t, "http://env", cfg.ServerURL)
		assert.Equal(t, "env.db", cfg.DatabasePath)
	})

	t.Run("flags over env", func(t *testing.T) {
		cfg, err := Load([]string{"-c", path, "-a", "http://flag", "-t", "7"}, env)
		require.NoError(t, err)
		assert.Equal(t, "http://flag", cfg.ServerURL)
		assert.Equal(t, "env.db", cfg.DatabasePath)
		assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{name: "missing file", args: []string{"-c", filepath.Join(t.TempDir(), "nope.json")}, msg: "config file"},
		{name: "bad json", args: []string{"-c", writeFile(t, "bad.json", "{")}, msg: "decode"},
		{name: "bad duration", args: []string{"-c", writeFile(t, "bad.yaml", "request_timeout: soon\n")}, msg: "invalid duration"},
		{name: "bad timeout flag", args: []string{"-t", "abc"}, msg: "flags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.args, nil)
			require.Error(t, err)
			require.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
