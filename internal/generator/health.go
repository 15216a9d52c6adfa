package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Health struct {
	Composed    *prometheus.CounterVec
	Rejected    *prometheus.CounterVec
	Stored      prometheus.Counter
	Distributed prometheus.Counter
	Failures    *prometheus.CounterVec
	LastSent    prometheus.Gauge
}

// NewHealth registers the generator metrics with reg. Pass
// prometheus.DefaultRegisterer to expose them on /metrics.
func NewHealth(reg prometheus.Registerer) *Health {
	factory := promauto.With(reg)
	return &Health{
		Composed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cwa_composed_total",
			Help: "Total number of products composed, by hazard",
		}, []string{"hazard"}),
		Rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cwa_rejected_total",
			Help: "Total number of selections rejected by validation, by hazard",
		}, []string{"hazard"}),
		Stored: factory.NewCounter(prometheus.CounterOpts{
			Name: "cwa_stored_total",
			Help: "Total number of products stored in the text database",
		}),
		Distributed: factory.NewCounter(prometheus.CounterOpts{
			Name: "cwa_distributed_total",
			Help: "Total number of products sent to distribution",
		}),
		Failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cwa_failures_total",
			Help: "Total number of store and distribution failures, by stage",
		}, []string{"stage"}),
		LastSent: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cwa_last_sent_timestamp_seconds",
			Help: "Unix time the last product was sent",
		}),
	}
}
