package cycler

// SetModelStrength sets the model strength. Unless a custom clip range is
// enabled, the clip strength follows it.
func (c *Cycler) SetModelStrength(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modelStrength = v
	c.syncClipStrength()
}

// SetClipStrength sets the clip strength. It is rejected while the clip
// strength is bound to the model strength.
func (c *Cycler) SetClipStrength(v float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.useCustomClipRange {
		return false
	}
	c.clipStrength = v
	return true
}

// SetUseCustomClipRange toggles the clip binding. Turning it off snaps the
// clip strength back to the model strength.
func (c *Cycler) SetUseCustomClipRange(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.useCustomClipRange = on
	c.syncClipStrength()
}

// Strengths returns the model and clip strength.
func (c *Cycler) Strengths() (model, clip float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modelStrength, c.clipStrength
}

func (c *Cycler) syncClipStrength() {
	if !c.useCustomClipRange {
		c.clipStrength = c.modelStrength
	}
}
