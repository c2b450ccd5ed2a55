package randomizer

import "loramgr/pkg/types"

// BuildConfig returns a complete snapshot of the widget state, seed pair
// included.
func (r *Randomizer) BuildConfig() types.RandomizerConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buildConfig()
}

func (r *Randomizer) buildConfig() types.RandomizerConfig {
	s := r.settings
	return types.RandomizerConfig{
		CountMode:              s.CountMode,
		CountFixed:             s.CountFixed,
		CountMin:               s.CountMin,
		CountMax:               s.CountMax,
		ModelStrengthMin:       s.ModelStrengthMin,
		ModelStrengthMax:       s.ModelStrengthMax,
		UseSameClipStrength:    s.UseSameClipStrength,
		ClipStrengthMin:        s.ClipStrengthMin,
		ClipStrengthMax:        s.ClipStrengthMax,
		RollMode:               r.rollMode,
		LastUsed:               copyEntries(r.lastUsed),
		LastSeed:               copyInt64Ptr(r.lastSeed),
		UseRecommendedStrength: s.UseRecommendedStrength,
		RecommendedScaleMin:    s.RecommendedScaleMin,
		RecommendedScaleMax:    s.RecommendedScaleMax,
		PoolConfigHash:         r.poolConfigHash,
		ExecutionSeed:          copyInt64Ptr(r.executionSeed),
		NextSeed:               copyInt64Ptr(r.nextSeed),
	}
}

// Restore hydrates the widget from a persisted snapshot. The seed pair is
// not restored, and held pool items are dropped until the next RefreshList.
// Unset or unknown settings (older or hand-written snapshots) fall back to
// DefaultSettings.
func (r *Randomizer) Restore(cfg types.RandomizerConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := DefaultSettings()
	mode := cfg.CountMode
	if mode != types.CountRange && mode != types.CountFixed {
		mode = d.CountMode
	}
	s := Settings{
		CountMode:              mode,
		CountFixed:             positiveOr(cfg.CountFixed, d.CountFixed),
		CountMin:               positiveOr(cfg.CountMin, d.CountMin),
		CountMax:               positiveOr(cfg.CountMax, d.CountMax),
		UseSameClipStrength:    cfg.UseSameClipStrength,
		UseRecommendedStrength: cfg.UseRecommendedStrength,
	}
	s.ModelStrengthMin, s.ModelStrengthMax = rangeOr(cfg.ModelStrengthMin, cfg.ModelStrengthMax, d.ModelStrengthMin, d.ModelStrengthMax)
	s.ClipStrengthMin, s.ClipStrengthMax = rangeOr(cfg.ClipStrengthMin, cfg.ClipStrengthMax, d.ClipStrengthMin, d.ClipStrengthMax)
	s.RecommendedScaleMin, s.RecommendedScaleMax = rangeOr(cfg.RecommendedScaleMin, cfg.RecommendedScaleMax, d.RecommendedScaleMin, d.RecommendedScaleMax)
	r.settings = s
	r.rollMode = cfg.RollMode
	if r.rollMode != types.RollFixed {
		r.rollMode = types.RollAlways
	}
	r.lastUsed = copyEntries(cfg.LastUsed)
	r.lastSeed = copyInt64Ptr(cfg.LastSeed)
	r.poolConfigHash = cfg.PoolConfigHash
	r.items = nil
	r.executionSeed = nil
	r.nextSeed = nil
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// rangeOr treats an all-zero range as unset.
func rangeOr(lo, hi, defLo, defHi float64) (float64, float64) {
	if lo == 0 && hi == 0 {
		return defLo, defHi
	}
	return lo, hi
}
