// Package randomizer implements the random LoRA scheduler. Like the cycler
// it commits a value to each queued unit up front, here a seed: the unit
// being queued gets executionSeed while nextSeed is already reserved for the
// following unit.
package randomizer

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"loramgr/internal/events"
	"loramgr/internal/pool"
	"loramgr/pkg/types"
)

// Kind labels events and metrics emitted by this scheduler.
const Kind = "randomizer"

// Randomizer is the random scheduler state for one widget.
type Randomizer struct {
	mu       sync.Mutex
	resolver pool.Resolver
	pub      events.Publisher
	log      zerolog.Logger
	newID    func() string
	newSeed  func() int64

	items          []types.PoolItem
	poolConfigHash string
	settings       Settings
	rollMode       types.RollMode
	lastUsed       []types.LoraEntry
	lastSeed       *int64
	// lookahead pair; never restored from a snapshot
	executionSeed *int64
	nextSeed      *int64
}

// Option customizes a Randomizer.
type Option func(*Randomizer)

// WithPublisher installs an event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(r *Randomizer) {
		if p != nil {
			r.pub = p
		}
	}
}

// WithLogger installs a structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Randomizer) { r.log = l.With().Str("scheduler", Kind).Logger() }
}

// WithIDGenerator overrides how unit ids are minted.
func WithIDGenerator(f func() string) Option {
	return func(r *Randomizer) {
		if f != nil {
			r.newID = f
		}
	}
}

// WithSeedSource overrides where fresh seeds come from.
func WithSeedSource(f func() int64) Option {
	return func(r *Randomizer) {
		if f != nil {
			r.newSeed = f
		}
	}
}

// New returns a Randomizer with DefaultSettings and roll mode "always".
func New(resolver pool.Resolver, opts ...Option) *Randomizer {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	r := &Randomizer{
		resolver: resolver,
		pub:      events.Noop{},
		log:      zerolog.Nop(),
		newID:    uuid.NewString,
		// callers hold r.mu, which also guards rng
		newSeed:  func() int64 { return rng.Int63() },
		settings: DefaultSettings(),
		rollMode: types.RollAlways,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Randomizer) publish(evts ...events.Event) {
	for _, e := range evts {
		e.Scheduler = Kind
		r.pub.Publish(e)
	}
}

// Settings returns the draw parameters.
func (r *Randomizer) Settings() Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// SetSettings replaces the draw parameters.
func (r *Randomizer) SetSettings(s Settings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.CountMode != types.CountRange {
		s.CountMode = types.CountFixed
	}
	r.settings = s
}

// SetRollMode switches between replaying one draw and drawing per unit.
// Unknown modes are ignored.
func (r *Randomizer) SetRollMode(m types.RollMode) bool {
	if m != types.RollFixed && m != types.RollAlways {
		return false
	}
	r.mu.Lock()
	r.rollMode = m
	r.mu.Unlock()
	return true
}

// RollMode returns the current roll mode.
func (r *Randomizer) RollMode() types.RollMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rollMode
}

// TotalCount returns the size of the last resolved pool.
func (r *Randomizer) TotalCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// RefreshList resolves cfg into the pool subsequent draws sample from.
// Resolver failures arrive as an empty pool; draws are then empty.
func (r *Randomizer) RefreshList(ctx context.Context, cfg types.PoolFilterConfig) types.PoolResponse {
	resp := r.resolver.FetchPool(ctx, types.PoolRequest{PoolConfig: cfg, SortBy: types.SortByFilename})
	newHash := pool.Fingerprint(cfg)

	r.mu.Lock()
	r.items = make([]types.PoolItem, len(resp.Items))
	copy(r.items, resp.Items)
	total := len(r.items)
	var evts []events.Event
	if newHash != r.poolConfigHash {
		r.poolConfigHash = newHash
		evts = append(evts, events.Event{Name: events.PoolChanged, Fields: map[string]any{"hash": newHash}})
	}
	r.mu.Unlock()

	evts = append(evts, events.Event{Name: events.PoolRefreshed, Fields: map[string]any{"total_count": total}})
	if total == 0 {
		evts = append(evts, events.Event{Name: events.PoolEmpty})
	}
	r.publish(evts...)
	return resp
}
