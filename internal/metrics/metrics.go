// Package metrics exposes Prometheus collectors for the schedulers and the
// pool resolver client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"loramgr/internal/events"
)

var (
	schedulerEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loramgr",
			Subsystem: "scheduler",
			Name:      "events_total",
			Help:      "Total number of scheduler lifecycle events",
		},
		[]string{"scheduler", "event"},
	)

	poolSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "loramgr",
			Subsystem: "scheduler",
			Name:      "pool_size",
			Help:      "Item count of the most recently resolved pool",
		},
		[]string{"scheduler"},
	)

	resolverFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "loramgr",
			Subsystem: "resolver",
			Name:      "failures_total",
			Help:      "Pool resolver calls that degraded to an empty pool",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(schedulerEventsTotal, poolSize, resolverFailuresTotal)
}

// Publisher counts scheduler events. Events carrying a "total_count" field
// also update the pool size gauge.
type Publisher struct{}

func (Publisher) Publish(e events.Event) {
	sched := e.Scheduler
	if sched == "" {
		sched = "unknown"
	}
	schedulerEventsTotal.WithLabelValues(sched, e.Name).Inc()
	if n, ok := e.Fields["total_count"].(int); ok {
		poolSize.WithLabelValues(sched).Set(float64(n))
	}
}

// ResolverFailure records a resolver call that was normalized to the empty pool.
func ResolverFailure(reason string) {
	if reason == "" {
		reason = "unspecified"
	}
	resolverFailuresTotal.WithLabelValues(reason).Inc()
}
