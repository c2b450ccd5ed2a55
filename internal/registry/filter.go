package registry

import (
	"slices"
	"sort"
	"strings"

	"loramgr/pkg/types"
)

// Filter returns the loras matching cfg, ordered by sortBy.
//
// Empty sets do not restrict. Tag includes match any tag, tag excludes
// reject on any tag, both case-insensitively. Folder filters match the
// folder itself or any folder below it. License flags keep only loras that
// grant the flagged right.
func Filter(loras []types.Lora, cfg types.PoolFilterConfig, sortBy types.SortBy) []types.PoolItem {
	incTags := lowerSet(cfg.Tags.Include)
	excTags := lowerSet(cfg.Tags.Exclude)
	out := make([]types.PoolItem, 0, len(loras))
	kept := make([]types.Lora, 0, len(loras))
	for _, l := range loras {
		if len(cfg.BaseModels) > 0 && !slices.Contains(cfg.BaseModels, l.BaseModel) {
			continue
		}
		if len(incTags) > 0 && !anyTag(l.Tags, incTags) {
			continue
		}
		if len(excTags) > 0 && anyTag(l.Tags, excTags) {
			continue
		}
		if len(cfg.Folders.Include) > 0 && !inAnyFolder(l.Folder, cfg.Folders.Include) {
			continue
		}
		if inAnyFolder(l.Folder, cfg.Folders.Exclude) {
			continue
		}
		if cfg.License.NoCreditRequired && !l.AllowNoCredit {
			continue
		}
		if cfg.License.AllowSelling && !l.AllowSelling {
			continue
		}
		kept = append(kept, l)
	}
	sortLoras(kept, sortBy)
	for _, l := range kept {
		out = append(out, l.Item())
	}
	return out
}

func sortLoras(loras []types.Lora, sortBy types.SortBy) {
	key := func(l types.Lora) string { return strings.ToLower(l.FileName) }
	if sortBy == types.SortByModelName {
		key = func(l types.Lora) string {
			if l.ModelName != "" {
				return strings.ToLower(l.ModelName)
			}
			return strings.ToLower(l.FileName)
		}
	}
	sort.SliceStable(loras, func(i, j int) bool {
		ki, kj := key(loras[i]), key(loras[j])
		if ki != kj {
			return ki < kj
		}
		return loras[i].FilePath < loras[j].FilePath
	})
}

func lowerSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[strings.ToLower(s)] = struct{}{}
	}
	return out
}

func anyTag(tags []string, set map[string]struct{}) bool {
	for _, t := range tags {
		if _, ok := set[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}

func inAnyFolder(folder string, roots []string) bool {
	for _, r := range roots {
		r = strings.Trim(r, "/")
		if r == "" {
			return true
		}
		if folder == r || strings.HasPrefix(folder, r+"/") {
			return true
		}
	}
	return false
}
