// Package metrics exposes Prometheus instrumentation for IFSC lookups.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rotisserie/eris"
)

// LookupMetrics holds the collectors recorded by the lookup service.
type LookupMetrics struct {
	LookupCounter  *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
	InFlight       prometheus.Gauge
}

// NewLookupMetrics creates the collectors and registers them with reg.
func NewLookupMetrics(reg prometheus.Registerer) (*LookupMetrics, error) {
	m := &LookupMetrics{
		LookupCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ifsc",
			Name:      "lookups_total",
			Help:      "The total number of IFSC lookups by outcome",
		}, []string{"outcome"}),
		LookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ifsc",
			Name:      "lookup_duration_seconds",
			Help:      "Latency of IFSC lookups by outcome",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ifsc",
			Name:      "lookups_in_flight",
			Help:      "Number of IFSC lookups currently waiting on the upstream service",
		}),
	}

	for _, c := range []prometheus.Collector{m.LookupCounter, m.LookupDuration, m.InFlight} {
		if err := reg.Register(c); err != nil {
			return nil, eris.Wrap(err, "registering lookup metrics")
		}
	}

	return m, nil
}

// RecordLookup counts a finished lookup and observes its duration.
func (m *LookupMetrics) RecordLookup(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.LookupCounter.WithLabelValues(outcome).Inc()
	m.LookupDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *LookupMetrics) Begin() {
	if m == nil {
		return
	}
	m.InFlight.Inc()
}

func (m *LookupMetrics) End() {
	if m == nil {
		return
	}
	m.InFlight.Dec()
}
