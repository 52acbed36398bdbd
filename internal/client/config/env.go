package config

const (
	EnvServerURL = "STUDYBUDDY_SERVER_URL"
	EnvDatabase  = "STUDYBUDDY_DB"
)

func parseEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := getenv(EnvServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := getenv(EnvDatabase); v != "" {
		cfg.DatabasePath = v
	}
}
