package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.Cache.Size != 128 {
		t.Errorf("expected default cache size 128, got %d", cfg.Cache.Size)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "http:\n  port: 9090\n  timeout_seconds: -5\nlog:\n  level: debug\ncache:\n  size: 4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.TimeoutSeconds != 30 {
		t.Errorf("invalid timeout should normalize to 30, got %d", cfg.HTTP.TimeoutSeconds)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}
	if cfg.Cache.Size != 4 {
		t.Errorf("expected cache size 4, got %d", cfg.Cache.Size)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("http: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml should error")
	}
}

func TestWatchReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	updates := make(chan *Config, 4)
	closer, err := Watch(path, func(cfg *Config) { updates <- cfg })
	if err != nil {
		t.Fatal(err)
	}
	defer closer()

	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-updates:
		if cfg.Log.Level != "debug" {
			t.Errorf("expected reloaded level debug, got %s", cfg.Log.Level)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not observe the config change")
	}
}
