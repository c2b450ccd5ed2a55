package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_NonexistentFile(t *testing.T) {
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.yaml", "addr: :8080\n: broken\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected YAML unmarshal error")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.toml", "addr=:8080\nloras_dir\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected TOML unmarshal error")
	}
}

func TestLoad_InvalidJSONOrigins(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.json", `{"cors_origins": "http://a"}`)
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error for scalar cors_origins")
	}
}

func TestLoad_YAMLScanAndCORS(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yml", "scan_ttl_seconds: 90\ncors_origins:\n  - http://localhost:8188\n  - https://studio.example\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cfg.ScanTTL(); got != 90*time.Second {
		t.Fatalf("scan ttl: got %v", got)
	}
	want := []string{"http://localhost:8188", "https://studio.example"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("cors origins: got %v want %v", cfg.CORSOrigins, want)
	}
}

func TestLoad_TOMLRequestTimeout(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "resolver_url = \"http://127.0.0.1:9000\"\nrequest_timeout_ms = 1500\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ResolverURL != "http://127.0.0.1:9000" {
		t.Fatalf("resolver url: got %q", cfg.ResolverURL)
	}
	if got := cfg.RequestTimeout(); got != 1500*time.Millisecond {
		t.Fatalf("request timeout: got %v", got)
	}
}

func TestMerge_ZeroDurationsKeepDefaults(t *testing.T) {
	got := Merge(Defaults(), Config{ScanTTLSeconds: 0, RequestTimeoutMS: -1, CORSOrigins: []string{}})
	if got.ScanTTL() != 30*time.Second {
		t.Fatalf("scan ttl: got %v", got.ScanTTL())
	}
	if got.RequestTimeout() != 5*time.Second {
		t.Fatalf("request timeout: got %v", got.RequestTimeout())
	}
	if got.CORSOrigins != nil {
		t.Fatalf("cors origins: got %v", got.CORSOrigins)
	}
}

func TestMerge_CORSOriginsCopied(t *testing.T) {
	over := Config{CORSOrigins: []string{"http://a"}}
	got := Merge(Defaults(), over)
	over.CORSOrigins[0] = "http://b"
	if got.CORSOrigins[0] != "http://a" {
		t.Fatalf("merged origins alias the override: %v", got.CORSOrigins)
	}
}
