package randomizer

import (
	"math"
	"math/rand"

	"loramgr/pkg/types"
)

// Settings are the draw parameters of a randomizer widget.
type Settings struct {
	CountMode              types.CountMode
	CountFixed             int
	CountMin               int
	CountMax               int
	ModelStrengthMin       float64
	ModelStrengthMax       float64
	UseSameClipStrength    bool
	ClipStrengthMin        float64
	ClipStrengthMax        float64
	UseRecommendedStrength bool
	RecommendedScaleMin    float64
	RecommendedScaleMax    float64
}

// DefaultSettings matches a freshly added widget.
func DefaultSettings() Settings {
	return Settings{
		CountMode:           types.CountRange,
		CountFixed:          3,
		CountMin:            2,
		CountMax:            4,
		ModelStrengthMin:    0.5,
		ModelStrengthMax:    1.0,
		UseSameClipStrength: true,
		ClipStrengthMin:     0.5,
		ClipStrengthMax:     1.0,
		RecommendedScaleMin: 0.5,
		RecommendedScaleMax: 1.0,
	}
}

// Draw picks LoRAs from items without replacement. The result depends only
// on items, seed and s, so a seed stamped on a queued unit reproduces its draw.
func Draw(items []types.PoolItem, seed int64, s Settings) []types.LoraEntry {
	out := []types.LoraEntry{}
	if len(items) == 0 {
		return out
	}
	rng := rand.New(rand.NewSource(seed))
	n := min(s.count(rng), len(items))
	for _, i := range rng.Perm(len(items))[:n] {
		it := items[i]
		model := s.modelStrength(rng, it)
		clip := model
		if !s.UseSameClipStrength {
			clip = s.clipStrength(rng, it)
		}
		out = append(out, types.LoraEntry{
			Name:         it.DisplayName(),
			FileName:     it.FileName,
			Strength:     model,
			ClipStrength: clip,
			Active:       true,
		})
	}
	return out
}

func (s Settings) count(rng *rand.Rand) int {
	if s.CountMode != types.CountRange {
		return max(s.CountFixed, 1)
	}
	lo, hi := max(s.CountMin, 1), max(s.CountMax, 1)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func (s Settings) modelStrength(rng *rand.Rand, it types.PoolItem) float64 {
	if s.UseRecommendedStrength && it.RecommendedStrength != 0 {
		return round2(it.RecommendedStrength * uniform(rng, s.RecommendedScaleMin, s.RecommendedScaleMax))
	}
	return round2(uniform(rng, s.ModelStrengthMin, s.ModelStrengthMax))
}

func (s Settings) clipStrength(rng *rand.Rand, it types.PoolItem) float64 {
	if s.UseRecommendedStrength && it.RecommendedClipStrength != 0 {
		return round2(it.RecommendedClipStrength * uniform(rng, s.RecommendedScaleMin, s.RecommendedScaleMax))
	}
	return round2(uniform(rng, s.ClipStrengthMin, s.ClipStrengthMax))
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + rng.Float64()*(hi-lo)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
