package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fblive/fblive/internal/api"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIURL, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != api.DefaultBaseURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, api.DefaultBaseURL)
	}
	if cfg.HealthInterval != 30*time.Second || cfg.HealthTimeout != 5*time.Second {
		t.Fatalf("health = %v/%v, want 30s/5s", cfg.HealthInterval, cfg.HealthTimeout)
	}
	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Fatalf("RefreshInterval = %v, want %v", cfg.RefreshInterval, defaultRefreshInterval)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIURL, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  http://10.0.0.5:3000/  "
refresh_interval = 5
health_interval = 10
health_timeout = 750
log_file = "  ~/logs/fblive.log  "
log_level = " DEBUG "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://10.0.0.5:3000/" {
		t.Fatalf("APIURL = %q, want trimmed value", cfg.APIURL)
	}
	if cfg.RefreshInterval != 5*time.Second || cfg.HealthInterval != 10*time.Second {
		t.Fatalf("intervals = %v/%v, want 5s/10s", cfg.RefreshInterval, cfg.HealthInterval)
	}
	if cfg.HealthTimeout != 750*time.Millisecond {
		t.Fatalf("HealthTimeout = %v, want 750ms", cfg.HealthTimeout)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIURL, "http://env.example:3000")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = "http://file.example:3000"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://env.example:3000" {
		t.Fatalf("APIURL = %q, want env override", cfg.APIURL)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvAPIURL, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "   "
health_interval = 0
log_level = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != api.DefaultBaseURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, api.DefaultBaseURL)
	}
	if cfg.HealthInterval != defaultHealthInterval || cfg.LogLevel != defaultLogLevel {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoadEnv_ReadsFileWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("FBLIVE_TEST_A=from-file\nFBLIVE_TEST_B=from-file\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("FBLIVE_TEST_A", "")
	os.Unsetenv("FBLIVE_TEST_A")
	t.Setenv("FBLIVE_TEST_B", "preset")

	if err := LoadEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnv returned error: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("FBLIVE_TEST_A") })

	if got := os.Getenv("FBLIVE_TEST_A"); got != "from-file" {
		t.Fatalf("FBLIVE_TEST_A = %q, want from-file", got)
	}
	if got := os.Getenv("FBLIVE_TEST_B"); got != "preset" {
		t.Fatalf("FBLIVE_TEST_B = %q, want preset", got)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
