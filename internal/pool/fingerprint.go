// Package pool fingerprints pool filter criteria and talks to the Pool
// Resolver that turns criteria into an ordered list of LoRAs.
package pool

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"

	"loramgr/pkg/types"
)

// Normalize returns cfg with every set sorted and deduplicated. Absent sets
// become empty, so nil and empty are indistinguishable afterwards.
func Normalize(cfg types.PoolFilterConfig) types.PoolFilterConfig {
	return types.PoolFilterConfig{
		BaseModels: normalizeSet(cfg.BaseModels),
		Tags: types.IncludeExclude{
			Include: normalizeSet(cfg.Tags.Include),
			Exclude: normalizeSet(cfg.Tags.Exclude),
		},
		Folders: types.IncludeExclude{
			Include: normalizeSet(cfg.Folders.Include),
			Exclude: normalizeSet(cfg.Folders.Exclude),
		},
		License: cfg.License,
	}
}

func normalizeSet(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	slices.Sort(out)
	return slices.Compact(out)
}

// canonicalConfig fixes the hashed layout independently of the wire struct tags.
type canonicalConfig struct {
	BaseModels       []string `json:"b"`
	TagsInclude      []string `json:"ti"`
	TagsExclude      []string `json:"te"`
	FoldersInclude   []string `json:"fi"`
	FoldersExclude   []string `json:"fe"`
	NoCreditRequired bool     `json:"nc"`
	AllowSelling     bool     `json:"as"`
}

// Fingerprint returns a stable identity for cfg. Logically equal configs
// produce the same value regardless of set ordering. It is used for change
// detection only and is not collision resistant.
func Fingerprint(cfg types.PoolFilterConfig) string {
	n := Normalize(cfg)
	b, err := json.Marshal(canonicalConfig{
		BaseModels:       n.BaseModels,
		TagsInclude:      n.Tags.Include,
		TagsExclude:      n.Tags.Exclude,
		FoldersInclude:   n.Folders.Include,
		FoldersExclude:   n.Folders.Exclude,
		NoCreditRequired: n.License.NoCreditRequired,
		AllowSelling:     n.License.AllowSelling,
	})
	if err != nil {
		// string slices and bools always marshal
		panic(fmt.Sprintf("pool: marshal canonical config: %v", err))
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}
