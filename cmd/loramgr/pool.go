package main

import (
	"fmt"
	"os"

	"loramgr/internal/config"
	"loramgr/pkg/types"
)

// readPoolConfig loads a pool filter config from a yaml, json or toml file.
// An empty path yields the unfiltered pool.
func readPoolConfig(path string) (types.PoolFilterConfig, error) {
	var cfg types.PoolFilterConfig
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read pool config: %w", err)
	}
	if err := config.Decode(path, b, &cfg); err != nil {
		return cfg, fmt.Errorf("decode pool config %s: %w", path, err)
	}
	return cfg, nil
}
