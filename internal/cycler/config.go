package cycler

import "loramgr/pkg/types"

// BuildConfig returns a complete snapshot of the widget state, lookahead
// pair included.
func (c *Cycler) BuildConfig() types.CyclerConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildConfig()
}

func (c *Cycler) buildConfig() types.CyclerConfig {
	return types.CyclerConfig{
		CurrentIndex:        c.currentIndex,
		TotalCount:          c.totalCount,
		PoolConfigHash:      c.poolConfigHash,
		ModelStrength:       c.modelStrength,
		ClipStrength:        c.clipStrength,
		UseCustomClipRange:  c.useCustomClipRange,
		SortBy:              c.sortBy,
		CurrentLoraName:     c.currentLoraName,
		CurrentLoraFilename: c.currentLoraFilename,
		ExecutionIndex:      copyIntPtr(c.executionIndex),
		NextIndex:           copyIntPtr(c.nextIndex),
		RepeatCount:         c.repeatCount,
		RepeatUsed:          c.repeatUsed,
		DisplayRepeatUsed:   c.displayRepeatUsed,
		IsPaused:            c.isPaused,
	}
}

// Restore hydrates the widget from a persisted snapshot. The lookahead pair
// is not restored: it is only ever produced by live advancement. Held pool
// items are dropped until the next RefreshList; if that refresh keeps the
// pool identity, queuing continues after the restored current index.
func (c *Cycler) Restore(cfg types.CyclerConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.totalCount = max(cfg.TotalCount, 0)
	c.currentIndex = min(max(cfg.CurrentIndex, 1), max(1, c.totalCount))
	c.poolConfigHash = cfg.PoolConfigHash
	c.modelStrength = cfg.ModelStrength
	c.clipStrength = cfg.ClipStrength
	c.useCustomClipRange = cfg.UseCustomClipRange
	c.syncClipStrength()
	c.sortBy = cfg.SortBy
	if !c.sortBy.Valid() {
		c.sortBy = types.SortByFilename
	}
	c.currentLoraName = cfg.CurrentLoraName
	c.currentLoraFilename = cfg.CurrentLoraFilename
	c.executionIndex = nil
	c.nextIndex = nil
	c.resumeAfterCurrent = true
	c.repeatCount = max(cfg.RepeatCount, 1)
	c.repeatUsed = min(max(cfg.RepeatUsed, 0), c.repeatCount)
	c.displayRepeatUsed = min(max(cfg.DisplayRepeatUsed, 0), c.repeatCount)
	c.isPaused = cfg.IsPaused
}
