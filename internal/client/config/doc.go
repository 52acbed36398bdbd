// Package config loads runtime configuration for the StudyBuddy CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, everything else as JSON.
//  3. Environment: STUDYBUDDY_SERVER_URL and STUDYBUDDY_DB.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the backend
//	-t int      request timeout (seconds)
//	-d string   local database path
//	-m string   metrics listen address (empty disables /metrics)
//	-l string   log level: debug, info, warn, error
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	server_url: http://127.0.0.1:8000
//	request_timeout: 20s
//	database_path: ~/.studybuddy/studybuddy.db
//	match_display_delay: 2s
//	log_level: info
//	metrics_addr: 127.0.0.1:9090
package config
