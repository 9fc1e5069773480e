// Package config loads fblive's runtime configuration.
//
// # Resolution Order
//
// The API base URL is resolved from, lowest to highest precedence:
//
//  1. The built-in default (api.DefaultBaseURL)
//  2. api_url in ~/.config/fblive/config.toml (or the path passed to Load)
//  3. FBLIVE_API_URL in the environment, which may be set by a .env file in
//     the working directory
//  4. The --api command-line flag (applied by the caller)
//
// A missing config file is not an error. Empty or non-positive values keep
// their defaults.
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:3000"
//	refresh_interval = 15   # seconds between match list refreshes
//	health_interval = 30    # seconds between health checks
//	health_timeout = 5000   # milliseconds per health check
//	log_file = "~/.local/share/fblive/fblive.log"
//	log_level = "info"
//
// Tilde expansion is performed for the config path and log_file.
//
// # .env Files
//
// LoadEnv reads KEY=value files with github.com/joho/godotenv. Variables that
// are already set in the environment win over the file.
package config
