package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[defaults]
algorithm = "greedy"
seed = 7

[cache]
dir = "/tmp/meshcolor-cache"
ttl = "24h"
redis_addr = "localhost:6379"
redis_db = 2

[serve]
addr = "0.0.0.0:9000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Defaults.Algorithm != "greedy" {
		t.Errorf("algorithm = %q, want greedy", cfg.Defaults.Algorithm)
	}
	if cfg.Defaults.Seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.Defaults.Seed)
	}
	if cfg.Cache.Dir != "/tmp/meshcolor-cache" {
		t.Errorf("cache dir = %q", cfg.Cache.Dir)
	}
	if got := cfg.Cache.CacheTTL(); got != 24*time.Hour {
		t.Errorf("ttl = %v, want 24h", got)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("redis = %q db %d", cfg.Cache.RedisAddr, cfg.Cache.RedisDB)
	}
	if cfg.Serve.Addr != "0.0.0.0:9000" {
		t.Errorf("serve addr = %q", cfg.Serve.Addr)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[defaults]\nalgorithm = \"zones\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Defaults.Algorithm != "zones" {
		t.Errorf("algorithm = %q, want zones", cfg.Defaults.Algorithm)
	}
	if cfg.Cache.CacheTTL() != 0 {
		t.Errorf("ttl = %v, want zero", cfg.Cache.CacheTTL())
	}
	if cfg.Serve.Addr != "" {
		t.Errorf("serve addr = %q, want empty", cfg.Serve.Addr)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[defaults\nbroken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadConfigBadTTL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nttl = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for unparseable duration")
	}
}
