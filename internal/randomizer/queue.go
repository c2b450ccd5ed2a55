package randomizer

import (
	"loramgr/internal/events"
	"loramgr/pkg/types"
)

// Commit is the draw handed to one queued execution unit.
type Commit struct {
	UnitID string
	Seed   int64
	Loras  []types.LoraEntry
	// Config is the snapshot serialized into the unit.
	Config types.RandomizerConfig
}

// Report builds the execution report a host sends after running the unit.
func (c Commit) Report() types.RandomizerReport {
	return types.RandomizerReport{UnitID: c.UnitID, Seed: c.Seed, Loras: copyEntries(c.Loras)}
}

// GenerateNext commits the reserved seed to the unit being queued and
// returns its draw. In roll mode "always" a fresh seed is reserved for the
// following unit; in "fixed" the reserved seed is kept until Reroll.
func (r *Randomizer) GenerateNext() Commit {
	r.mu.Lock()
	r.reserveSeed()
	seed := *r.nextSeed
	r.executionSeed = int64Ptr(seed)
	if r.rollMode == types.RollAlways {
		r.nextSeed = int64Ptr(r.newSeed())
	}
	commit := Commit{
		UnitID: r.newID(),
		Seed:   seed,
		Loras:  Draw(r.items, seed, r.settings),
	}
	commit.Config = r.buildConfig()
	r.mu.Unlock()

	r.log.Debug().Str("unit_id", commit.UnitID).Int64("seed", seed).Int("count", len(commit.Loras)).Msg("queued")
	r.publish(events.Event{Name: events.Queued, Fields: map[string]any{"seed": seed, "unit_id": commit.UnitID}})
	return commit
}

// Reroll reserves a fresh seed for the next queued unit and returns the
// draw it will produce.
func (r *Randomizer) Reroll() []types.LoraEntry {
	r.mu.Lock()
	r.nextSeed = int64Ptr(r.newSeed())
	preview := Draw(r.items, *r.nextSeed, r.settings)
	r.mu.Unlock()
	r.publish(events.Event{Name: events.Rerolled})
	return preview
}

// Preview returns the draw the next queued unit will get, reserving a seed
// if none exists yet.
func (r *Randomizer) Preview() []types.LoraEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reserveSeed()
	return Draw(r.items, *r.nextSeed, r.settings)
}

// reserveSeed fills an empty nextSeed. A fixed roll picks up the seed of
// the last executed unit, so a restored widget replays its last draw.
func (r *Randomizer) reserveSeed() {
	if r.nextSeed != nil {
		return
	}
	if r.rollMode == types.RollFixed && r.lastSeed != nil {
		r.nextSeed = copyInt64Ptr(r.lastSeed)
		return
	}
	r.nextSeed = int64Ptr(r.newSeed())
}

// ReportExecution records the set a finished unit actually used.
func (r *Randomizer) ReportExecution(rep types.RandomizerReport) {
	r.mu.Lock()
	r.lastUsed = copyEntries(rep.Loras)
	r.lastSeed = int64Ptr(rep.Seed)
	r.mu.Unlock()
	r.publish(events.Event{Name: events.Executed, Fields: map[string]any{"seed": rep.Seed, "unit_id": rep.UnitID}})
}

// UseLastUsed returns the set the most recent finished unit used, or nil
// when nothing has run yet.
func (r *Randomizer) UseLastUsed() []types.LoraEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyEntries(r.lastUsed)
}

// ExecutionSeed returns the seed committed to the most recently queued unit.
func (r *Randomizer) ExecutionSeed() *int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyInt64Ptr(r.executionSeed)
}

// NextSeed returns the seed reserved for the next queued unit.
func (r *Randomizer) NextSeed() *int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyInt64Ptr(r.nextSeed)
}

func int64Ptr(v int64) *int64 { return &v }

func copyInt64Ptr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	return int64Ptr(*p)
}

func copyEntries(in []types.LoraEntry) []types.LoraEntry {
	if in == nil {
		return nil
	}
	out := make([]types.LoraEntry, len(in))
	copy(out, in)
	return out
}
