package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/fblive/fblive/internal/api"
)

// Config captures the runtime settings of fblive.
type Config struct {
	APIURL          string
	RefreshInterval time.Duration
	HealthInterval  time.Duration
	HealthTimeout   time.Duration
	LogFile         string
	LogLevel        string
}

// EnvAPIURL names the environment variable that overrides api_url.
const EnvAPIURL = "FBLIVE_API_URL"

const (
	defaultConfigPath      = "~/.config/fblive/config.toml"
	defaultLogFile         = "~/.local/share/fblive/fblive.log"
	defaultLogLevel        = "info"
	defaultRefreshInterval = 15 * time.Second
	defaultHealthInterval  = 30 * time.Second
	defaultHealthTimeout   = 5 * time.Second
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:          api.DefaultBaseURL,
		RefreshInterval: defaultRefreshInterval,
		HealthInterval:  defaultHealthInterval,
		HealthTimeout:   defaultHealthTimeout,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
	}
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. The FBLIVE_API_URL environment variable, which may come from a
// .env file, overrides api_url.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	if err := LoadEnv(); err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		applyEnv(&cfg)
		return cfg, nil
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL          string `toml:"api_url"`
		RefreshInterval int    `toml:"refresh_interval"`
		HealthInterval  int    `toml:"health_interval"`
		HealthTimeoutMS int    `toml:"health_timeout"`
		LogFile         string `toml:"log_file"`
		LogLevel        string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if raw.RefreshInterval > 0 {
		cfg.RefreshInterval = time.Duration(raw.RefreshInterval) * time.Second
	}
	if raw.HealthInterval > 0 {
		cfg.HealthInterval = time.Duration(raw.HealthInterval) * time.Second
	}
	if raw.HealthTimeoutMS > 0 {
		cfg.HealthTimeout = time.Duration(raw.HealthTimeoutMS) * time.Millisecond
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	applyEnv(&cfg)

	return cfg, nil
}

// LoadEnv reads .env files that exist into the process environment. Variables
// already set are left alone.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
