package events

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestMulti_FansOutInOrder(t *testing.T) {
	a, b := NewMemory(), NewMemory()
	m := Multi{a, nil, b}
	m.Publish(Event{Name: Queued, Scheduler: "cycler"})
	m.Publish(Event{Name: Executed, Scheduler: "cycler"})
	for _, p := range []*Memory{a, b} {
		names := p.Names()
		if len(names) != 2 || names[0] != Queued || names[1] != Executed {
			t.Fatalf("unexpected events: %v", names)
		}
	}
}

func TestMemory_EventsReturnsCopy(t *testing.T) {
	p := NewMemory()
	p.Publish(Event{Name: Reset})
	evts := p.Events()
	evts[0].Name = "mutated"
	if p.Events()[0].Name != Reset {
		t.Fatalf("memory publisher exposed internal slice")
	}
}

func TestLog_WritesDebugLine(t *testing.T) {
	var buf bytes.Buffer
	l := Log{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel)}
	l.Publish(Event{Name: PoolChanged, Scheduler: "randomizer", Fields: map[string]any{"total_count": 3}})
	out := buf.String()
	if !strings.Contains(out, `"message":"pool_changed"`) || !strings.Contains(out, `"total_count":3`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}
