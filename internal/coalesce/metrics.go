package coalesce

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts coalescer outcomes.
type Metrics struct {
	Scheduled  prometheus.Counter
	Superseded prometheus.Counter
	Dispatched prometheus.Counter
	Failed     prometheus.Counter
	Dropped    prometheus.Counter
	Pending    prometheus.Gauge
}

// NewMetrics registers the coalescer metrics with reg. A nil reg gets a
// private registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		Scheduled: factory.NewCounter(prometheus.CounterOpts{
			Name: "castedit_coalesce_scheduled_total",
			Help: "Edits handed to the coalescer",
		}),
		Superseded: factory.NewCounter(prometheus.CounterOpts{
			Name: "castedit_coalesce_superseded_total",
			Help: "Pending edits replaced by a newer edit for the same key",
		}),
		Dispatched: factory.NewCounter(prometheus.CounterOpts{
			Name: "castedit_coalesce_dispatched_total",
			Help: "Persistence calls that completed without error",
		}),
		Failed: factory.NewCounter(prometheus.CounterOpts{
			Name: "castedit_coalesce_failed_total",
			Help: "Persistence calls that returned an error",
		}),
		Dropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "castedit_coalesce_dropped_total",
			Help: "Pending edits discarded by FlushAll",
		}),
		Pending: factory.NewGauge(prometheus.GaugeOpts{
			Name: "castedit_coalesce_pending",
			Help: "Edits waiting for their delay to elapse",
		}),
	}
}
