package cycler

import (
	"loramgr/internal/events"
	"loramgr/pkg/types"
)

// Commit is everything a queued execution unit needs. It is a value: later
// scheduler changes never alter a commit already handed out.
type Commit struct {
	UnitID        string
	Index         int
	TotalCount    int
	LoraName      string
	LoraFilename  string
	LoraPath      string
	ModelStrength float64
	ClipStrength  float64
	// Config is the snapshot serialized into the unit.
	Config types.CyclerConfig
}

// Empty reports whether the commit was made against an empty pool.
func (c Commit) Empty() bool { return c.TotalCount == 0 }

// Report builds the execution report a host sends after running the unit.
func (c Commit) Report() types.CyclerReport {
	return types.CyclerReport{
		UnitID:       c.UnitID,
		Index:        c.Index,
		TotalCount:   c.TotalCount,
		LoraName:     c.LoraName,
		LoraFilename: c.LoraFilename,
	}
}

// Queue commits an index to the unit being queued. It must be called once
// per unit, before the unit runs.
//
//   - paused: the unit runs at the current index. Neither the lookahead
//     nor the open repeat window is touched, so queuing resumes where it
//     left off.
//   - inside a repeat window: the last committed index is reused.
//   - otherwise the lookahead advances and a new repeat window opens.
func (c *Cycler) Queue() Commit {
	c.mu.Lock()
	var idx int
	switch {
	case c.isPaused:
		idx = c.currentIndex
	case c.executionIndex != nil && c.repeatUsed > 0 && c.repeatUsed < c.repeatCount:
		idx = Wrap(*c.executionIndex, c.totalCount)
		c.repeatUsed++
	default:
		c.generateNextIndex()
		if c.executionIndex == nil {
			c.executionIndex = intPtr(c.currentIndex)
		}
		idx = Wrap(*c.executionIndex, c.totalCount)
		c.repeatUsed = 1
	}
	commit := Commit{
		UnitID:        c.newID(),
		Index:         idx,
		TotalCount:    c.totalCount,
		ModelStrength: c.modelStrength,
		ClipStrength:  c.clipStrength,
	}
	if it, ok := c.itemAt(idx); ok {
		commit.LoraName = it.DisplayName()
		commit.LoraFilename = it.FileName
		commit.LoraPath = it.FilePath
	}
	commit.Config = c.buildConfig()
	commit.Config.ExecutionIndex = intPtr(idx)
	c.mu.Unlock()

	c.log.Debug().Str("unit_id", commit.UnitID).Int("index", idx).Int("total_count", commit.TotalCount).Msg("queued")
	c.publish(events.Event{Name: events.Queued, Fields: map[string]any{"index": idx, "unit_id": commit.UnitID}})
	return commit
}

// ReportExecution promotes the values a finished unit actually used into
// the display state. Once a pool has been resolved, its items stay
// authoritative for totalCount; the reported count is only adopted before
// the first RefreshList. Indexes outside the pool are not promoted.
func (c *Cycler) ReportExecution(r types.CyclerReport) {
	c.mu.Lock()
	if c.items == nil {
		c.totalCount = max(r.TotalCount, 0)
	}
	if r.Index >= 1 && r.Index <= max(1, c.totalCount) {
		if r.Index == c.currentIndex && c.displayRepeatUsed > 0 && c.displayRepeatUsed < c.repeatCount {
			c.displayRepeatUsed++
		} else {
			c.displayRepeatUsed = 1
		}
		c.currentIndex = r.Index
		c.currentLoraName = r.LoraName
		c.currentLoraFilename = r.LoraFilename
	}
	c.mu.Unlock()

	c.publish(events.Event{Name: events.Executed, Fields: map[string]any{"index": r.Index, "unit_id": r.UnitID}})
}
