// Package events carries scheduler lifecycle events to observers such as
// logs, metrics and tests.
package events

import "github.com/rs/zerolog"

// Event names emitted by the schedulers.
const (
	PoolRefreshed = "pool_refreshed"
	PoolChanged   = "pool_changed"
	PoolEmpty     = "pool_empty"
	Queued        = "queued"
	Executed      = "executed"
	Reset         = "reset"
	Paused        = "paused"
	Resumed       = "resumed"
	Rerolled      = "rerolled"
)

// Event represents a scheduler lifecycle event.
// Minimal and stable: name + scheduler kind and optional fields via key/values.
type Event struct {
	Name      string
	Scheduler string
	Fields    map[string]any
}

// Publisher receives events. Implementations should be lightweight and
// non-blocking; Publish must not panic.
type Publisher interface {
	Publish(Event)
}

// Noop drops events. It is the default publisher.
type Noop struct{}

func (Noop) Publish(Event) {}

// Multi fans an event out to every publisher in order.
type Multi []Publisher

func (m Multi) Publish(e Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(e)
		}
	}
}

// Log writes events to a zerolog logger at debug level.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Publish(e Event) {
	z := l.Logger.Debug().Str("scheduler", e.Scheduler)
	if len(e.Fields) > 0 {
		z = z.Fields(e.Fields)
	}
	z.Msg(e.Name)
}
