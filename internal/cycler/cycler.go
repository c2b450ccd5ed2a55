package cycler

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"loramgr/internal/events"
	"loramgr/internal/pool"
	"loramgr/pkg/types"
)

// Kind labels events and metrics emitted by this scheduler.
const Kind = "cycler"

const defaultStrength = 1.0

// Cycler is the sequential scheduler state for one widget.
type Cycler struct {
	mu       sync.Mutex
	resolver pool.Resolver
	pub      events.Publisher
	log      zerolog.Logger
	newID    func() string

	items               []types.PoolItem
	currentIndex        int
	totalCount          int
	poolConfigHash      string
	modelStrength       float64
	clipStrength        float64
	useCustomClipRange  bool
	sortBy              types.SortBy
	currentLoraName     string
	currentLoraFilename string
	// lookahead pair; never restored from a snapshot
	executionIndex    *int
	nextIndex         *int
	repeatCount       int
	repeatUsed        int
	displayRepeatUsed int
	isPaused          bool
	// set by Restore: currentIndex already ran, the next unit follows it
	resumeAfterCurrent bool
}

// Option customizes a Cycler.
type Option func(*Cycler)

// WithPublisher installs an event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(c *Cycler) {
		if p != nil {
			c.pub = p
		}
	}
}

// WithLogger installs a structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Cycler) { c.log = l.With().Str("scheduler", Kind).Logger() }
}

// WithIDGenerator overrides how unit ids are minted.
func WithIDGenerator(f func() string) Option {
	return func(c *Cycler) {
		if f != nil {
			c.newID = f
		}
	}
}

// New returns a Cycler with default state: index 1, empty pool, strength 1.0,
// sorted by filename, repeat count 1, not paused.
func New(resolver pool.Resolver, opts ...Option) *Cycler {
	c := &Cycler{
		resolver:      resolver,
		pub:           events.Noop{},
		log:           zerolog.Nop(),
		newID:         uuid.NewString,
		currentIndex:  1,
		modelStrength: defaultStrength,
		clipStrength:  defaultStrength,
		sortBy:        types.SortByFilename,
		repeatCount:   1,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Cycler) publish(evts ...events.Event) {
	for _, e := range evts {
		e.Scheduler = Kind
		c.pub.Publish(e)
	}
}

// CurrentIndex returns the 1-based display index.
func (c *Cycler) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentIndex
}

// TotalCount returns the size of the last resolved pool.
func (c *Cycler) TotalCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCount
}

// IsPaused reports whether advancement is suspended.
func (c *Cycler) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isPaused
}

// Current returns the display name and file name of the current LoRA.
func (c *Cycler) Current() (name, filename string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLoraName, c.currentLoraFilename
}

// Items returns a copy of the last resolved pool.
func (c *Cycler) Items() []types.PoolItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.PoolItem, len(c.items))
	copy(out, c.items)
	return out
}

// itemAt returns the pool item at 1-based index i, if held.
func (c *Cycler) itemAt(i int) (types.PoolItem, bool) {
	if i < 1 || i > len(c.items) {
		return types.PoolItem{}, false
	}
	return c.items[i-1], true
}

// syncCurrentLora re-derives the display names from the held items.
func (c *Cycler) syncCurrentLora() {
	if it, ok := c.itemAt(c.currentIndex); ok {
		c.currentLoraName = it.DisplayName()
		c.currentLoraFilename = it.FileName
		return
	}
	c.currentLoraName = ""
	c.currentLoraFilename = ""
}

func intPtr(v int) *int { return &v }

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	return intPtr(*p)
}
