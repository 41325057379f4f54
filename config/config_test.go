package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdir changes the working directory for the duration of the test, matching
// the behavior of testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

// isolate keeps the test from picking up a real bcsync.json from the working
// or home directory.
func isolate(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ConcurrentRequestLimit != 20 {
		t.Errorf("expected default concurrency limit 20, got %d", cfg.ConcurrentRequestLimit)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.RequestTimeout)
	}
	if cfg.RequestsPerSecond != 0 {
		t.Errorf("expected rate shaping off by default, got %v", cfg.RequestsPerSecond)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ConcurrentRequestLimit != 20 {
		t.Errorf("expected limit 20, got %d", cfg.ConcurrentRequestLimit)
	}
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)

	data := `{"client_id":"file-id","account_id":"file-account","concurrent_request_limit":5}`
	if err := os.WriteFile("bcsync.json", []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ClientID != "file-id" {
		t.Errorf("expected client id from file, got %q", cfg.ClientID)
	}
	if cfg.ConcurrentRequestLimit != 5 {
		t.Errorf("expected limit 5 from file, got %d", cfg.ConcurrentRequestLimit)
	}
	// Untouched fields keep their defaults.
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.RequestTimeout)
	}
}

func TestLoadFromHomeDir(t *testing.T) {
	chdir(t, t.TempDir())
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "bcsync")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	data := `{"account_id":"home-account"}`
	if err := os.WriteFile(filepath.Join(dir, "bcsync.json"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AccountID != "home-account" {
		t.Errorf("expected account id from home config, got %q", cfg.AccountID)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	isolate(t)

	data := `{"client_id":"file-id","client_secret":"file-secret"}`
	if err := os.WriteFile("bcsync.json", []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BCSYNC_CLIENT_ID", "env-id")
	t.Setenv("BCSYNC_ACCOUNT_ID", "env-account")
	t.Setenv("BCSYNC_CONCURRENT_REQUEST_LIMIT", "7")
	t.Setenv("BCSYNC_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("BCSYNC_REQUEST_TIMEOUT", "5s")
	t.Setenv("BCSYNC_SKIP_SCHEDULE_CHECK", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ClientID != "env-id" {
		t.Errorf("expected env to win over file, got %q", cfg.ClientID)
	}
	if cfg.ClientSecret != "file-secret" {
		t.Errorf("expected file value to survive, got %q", cfg.ClientSecret)
	}
	if cfg.AccountID != "env-account" {
		t.Errorf("expected env account id, got %q", cfg.AccountID)
	}
	if cfg.ConcurrentRequestLimit != 7 {
		t.Errorf("expected limit 7, got %d", cfg.ConcurrentRequestLimit)
	}
	if cfg.RequestsPerSecond != 2.5 {
		t.Errorf("expected 2.5 rps, got %v", cfg.RequestsPerSecond)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.RequestTimeout)
	}
	if !cfg.SkipScheduleCheck {
		t.Error("expected skip_schedule_check true")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	isolate(t)

	if err := os.WriteFile("bcsync.json", []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero concurrency limit", func(c *Config) { c.ConcurrentRequestLimit = 0 }, true},
		{"negative concurrency limit", func(c *Config) { c.ConcurrentRequestLimit = -1 }, true},
		{"negative rps", func(c *Config) { c.RequestsPerSecond = -1 }, true},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, true},
		{"positive rps is fine", func(c *Config) { c.RequestsPerSecond = 4 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
