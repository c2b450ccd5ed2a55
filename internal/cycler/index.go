package cycler

import "loramgr/internal/events"

// Wrap maps i onto [1, n] with 1-based modulo. An empty pool (n <= 0) always
// yields 1.
func Wrap(i, n int) int {
	if n <= 0 {
		return 1
	}
	m := (i - 1) % n
	if m < 0 {
		m += n
	}
	return m + 1
}

// SetIndex moves the display index to i when 1 <= i <= totalCount. The
// lookahead and the repeat window are dropped so the next queued unit uses i.
// Out-of-range values are ignored and reported as false.
func (c *Cycler) SetIndex(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 1 || i > c.totalCount {
		return false
	}
	c.currentIndex = i
	c.nextIndex = nil
	c.repeatUsed = 0
	c.resumeAfterCurrent = false
	c.syncCurrentLora()
	return true
}

// ResetIndex returns to the first item and clears both repeat counters.
// The pause flag is left alone.
func (c *Cycler) ResetIndex() {
	c.mu.Lock()
	c.resetPosition()
	c.mu.Unlock()
	c.publish(events.Event{Name: events.Reset})
}

func (c *Cycler) resetPosition() {
	c.currentIndex = 1
	c.repeatUsed = 0
	c.displayRepeatUsed = 0
	c.nextIndex = nil
	c.resumeAfterCurrent = false
	c.syncCurrentLora()
}

// TogglePause flips the pause flag and returns the new value.
func (c *Cycler) TogglePause() bool {
	c.mu.Lock()
	c.isPaused = !c.isPaused
	paused := c.isPaused
	c.mu.Unlock()
	if paused {
		c.publish(events.Event{Name: events.Paused})
	} else {
		c.publish(events.Event{Name: events.Resumed})
	}
	return paused
}

// InitializeNextIndex seeds the lookahead with the item after the current
// one. It does nothing when a lookahead already exists.
func (c *Cycler) InitializeNextIndex() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initializeNextIndex()
}

func (c *Cycler) initializeNextIndex() {
	if c.nextIndex == nil {
		c.nextIndex = intPtr(Wrap(c.currentIndex+1, c.totalCount))
	}
}

// GenerateNextIndex commits the reserved lookahead to executionIndex and
// reserves the following index. executionIndex is nil when no lookahead
// existed yet; the unit then runs at currentIndex.
func (c *Cycler) GenerateNextIndex() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generateNextIndex()
}

func (c *Cycler) generateNextIndex() {
	c.executionIndex = copyIntPtr(c.nextIndex)
	base := c.currentIndex
	if c.nextIndex != nil {
		base = *c.nextIndex
	}
	c.nextIndex = intPtr(Wrap(base+1, c.totalCount))
}

// ExecutionIndex returns the index committed to the most recently queued unit.
func (c *Cycler) ExecutionIndex() *int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyIntPtr(c.executionIndex)
}

// NextIndex returns the lookahead reserved for the next queued unit.
func (c *Cycler) NextIndex() *int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyIntPtr(c.nextIndex)
}

// SetRepeatCount sets how many consecutive units reuse one index. Values
// below 1 become 1. Both repeat counters are clamped to the new count.
//
// Advancement is driven by repeatUsed, which Queue increments per committed
// unit. displayRepeatUsed counts execution reports and only feeds the
// display; it never decides which index the next unit gets.
func (c *Cycler) SetRepeatCount(n int) {
	if n < 1 {
		n = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.repeatCount = n
	c.repeatUsed = min(c.repeatUsed, n)
	c.displayRepeatUsed = min(c.displayRepeatUsed, n)
}
