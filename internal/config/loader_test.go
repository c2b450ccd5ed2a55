package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nloras_dir: /tmp\nscan_ttl_seconds: 12\ncors_origins:\n  - http://a\nresolver_url: http://r\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.LorasDir != "/tmp" || cfg.ScanTTLSeconds != 12 || len(cfg.CORSOrigins) != 1 || cfg.ResolverURL != "http://r" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","loras_dir":"/m","state_dir":"/s","log_level":"debug","request_timeout_ms":250}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.LorasDir != "/m" || cfg.StateDir != "/s" || cfg.LogLevel != "debug" || cfg.RequestTimeout() != 250*time.Millisecond {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nloras_dir=\"/x\"\nscan_ttl_seconds=9\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.LorasDir != "/x" || cfg.ScanTTL() != 9*time.Second {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestMerge_OnlyNonZeroFieldsOverride(t *testing.T) {
	got := Merge(Defaults(), Config{LorasDir: "/l", ScanTTLSeconds: -1})
	if got.LorasDir != "/l" {
		t.Fatalf("loras_dir not merged: %+v", got)
	}
	if got.Addr != Defaults().Addr || got.ScanTTLSeconds != 30 {
		t.Fatalf("defaults overwritten: %+v", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAddr, ":1234")
	t.Setenv(EnvLogLevel, "warn")
	got := ApplyEnv(Defaults())
	if got.Addr != ":1234" || got.LogLevel != "warn" {
		t.Fatalf("env not applied: %+v", got)
	}
}
