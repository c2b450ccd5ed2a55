package cycler

import (
	"context"

	"loramgr/internal/events"
	"loramgr/internal/pool"
	"loramgr/pkg/types"
)

// SetSortBy changes the ordering requested on the next refresh. Unknown
// values are ignored. The fingerprint does not cover ordering, so a new
// order resets the position: the old index would name a different item.
func (c *Cycler) SetSortBy(s types.SortBy) bool {
	if !s.Valid() {
		return false
	}
	c.mu.Lock()
	changed := s != c.sortBy
	c.sortBy = s
	if changed {
		c.resetPosition()
	}
	c.mu.Unlock()
	if changed {
		c.publish(events.Event{Name: events.Reset, Fields: map[string]any{"sort_by": string(s)}})
	}
	return true
}

// RefreshList resolves cfg into a pool and reconciles the index state.
//
// A different fingerprint means a different pool: the index goes back to 1
// and the lookahead is dropped. The same fingerprint keeps the position,
// clamped to the new size. Resolver failures arrive as an empty pool.
func (c *Cycler) RefreshList(ctx context.Context, cfg types.PoolFilterConfig) types.PoolResponse {
	c.mu.Lock()
	sortBy := c.sortBy
	c.mu.Unlock()

	resp := c.resolver.FetchPool(ctx, types.PoolRequest{PoolConfig: cfg, SortBy: sortBy})
	newHash := pool.Fingerprint(cfg)

	c.mu.Lock()
	c.items = make([]types.PoolItem, len(resp.Items))
	copy(c.items, resp.Items)
	c.totalCount = len(c.items)

	var evts []events.Event
	if newHash != c.poolConfigHash {
		c.log.Debug().Str("old_hash", c.poolConfigHash).Str("new_hash", newHash).Msg("pool identity changed")
		c.poolConfigHash = newHash
		c.currentIndex = 1
		c.executionIndex = nil
		c.nextIndex = nil
		c.resumeAfterCurrent = false
		evts = append(evts, events.Event{Name: events.PoolChanged, Fields: map[string]any{"hash": newHash}})
	} else {
		c.currentIndex = min(max(c.currentIndex, 1), max(1, c.totalCount))
		if c.nextIndex != nil {
			c.nextIndex = intPtr(Wrap(*c.nextIndex, c.totalCount))
		} else if c.resumeAfterCurrent && c.totalCount > 0 {
			c.initializeNextIndex()
			c.resumeAfterCurrent = false
		}
	}
	c.syncCurrentLora()
	total := c.totalCount
	evts = append(evts, events.Event{Name: events.PoolRefreshed, Fields: map[string]any{"total_count": total}})
	if total == 0 {
		evts = append(evts, events.Event{Name: events.PoolEmpty})
	}
	c.mu.Unlock()

	c.publish(evts...)
	return resp
}
