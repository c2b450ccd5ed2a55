package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvAddr     = "LORAMGR_ADDR"
	EnvLogLevel = "LORAMGR_LOG_LEVEL"
)

// Config holds runtime parameters for the resolver server and the CLI.
// Zero values mean "unspecified" and are replaced by Defaults.
type Config struct {
	Addr             string   `json:"addr" yaml:"addr" toml:"addr"`
	LorasDir         string   `json:"loras_dir" yaml:"loras_dir" toml:"loras_dir"`
	ResolverURL      string   `json:"resolver_url" yaml:"resolver_url" toml:"resolver_url"`
	StateDir         string   `json:"state_dir" yaml:"state_dir" toml:"state_dir"`
	LogLevel         string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	ScanTTLSeconds   int      `json:"scan_ttl_seconds" yaml:"scan_ttl_seconds" toml:"scan_ttl_seconds"`
	CORSOrigins      []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	RequestTimeoutMS int      `json:"request_timeout_ms" yaml:"request_timeout_ms" toml:"request_timeout_ms"`
}

// Defaults returns the configuration used when nothing else is given.
func Defaults() Config {
	return Config{
		Addr:             ":8188",
		LorasDir:         "~/models/loras",
		StateDir:         "~/.loramgr/state",
		LogLevel:         "info",
		ScanTTLSeconds:   30,
		RequestTimeoutMS: 5000,
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := Decode(path, b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode unmarshals b into v using the format implied by path's extension.
func Decode(path string, b []byte, v any) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, v)
	case ".json":
		return json.Unmarshal(b, v)
	case ".toml":
		return toml.Unmarshal(b, v)
	default:
		return fmt.Errorf("unsupported config extension: %s", ext)
	}
}

// Merge returns base with every non-zero field of over applied on top.
func Merge(base, over Config) Config {
	if over.Addr != "" {
		base.Addr = over.Addr
	}
	if over.LorasDir != "" {
		base.LorasDir = over.LorasDir
	}
	if over.ResolverURL != "" {
		base.ResolverURL = over.ResolverURL
	}
	if over.StateDir != "" {
		base.StateDir = over.StateDir
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if over.ScanTTLSeconds > 0 {
		base.ScanTTLSeconds = over.ScanTTLSeconds
	}
	if len(over.CORSOrigins) > 0 {
		base.CORSOrigins = append([]string(nil), over.CORSOrigins...)
	}
	if over.RequestTimeoutMS > 0 {
		base.RequestTimeoutMS = over.RequestTimeoutMS
	}
	return base
}

// ApplyEnv overrides fields from LORAMGR_* environment variables.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

// ScanTTL returns the registry scan cache lifetime.
func (c Config) ScanTTL() time.Duration {
	return time.Duration(c.ScanTTLSeconds) * time.Second
}

// RequestTimeout returns the resolver client timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}
