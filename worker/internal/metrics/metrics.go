// Package metrics exposes Prometheus counters for the capture worker.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the worker's counters. Abandons are labeled by the
// pipeline stage that gave up on the item.
type Metrics struct {
	registry       *prometheus.Registry
	claimsTotal    prometheus.Counter
	emptyClaims    prometheus.Counter
	publishedTotal prometheus.Counter
	sentinelTotal  prometheus.Counter
	abandonedTotal *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	claimsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rotisserie_claims_total",
		Help: "Total number of streams claimed from the work queue",
	})
	emptyClaims := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rotisserie_empty_claims_total",
		Help: "Total number of claims that found the queue empty",
	})
	publishedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rotisserie_published_total",
		Help: "Total number of leaderboard upserts",
	})
	sentinelTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rotisserie_sentinel_total",
		Help: "Total number of work items published with the sentinel score",
	})
	abandonedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rotisserie_abandoned_total",
		Help: "Total number of work items abandoned, by pipeline stage",
	}, []string{"stage"})

	registry.MustRegister(
		claimsTotal,
		emptyClaims,
		publishedTotal,
		sentinelTotal,
		abandonedTotal,
	)

	return &Metrics{
		registry:       registry,
		claimsTotal:    claimsTotal,
		emptyClaims:    emptyClaims,
		publishedTotal: publishedTotal,
		sentinelTotal:  sentinelTotal,
		abandonedTotal: abandonedTotal,
	}
}

// IncClaims increments the claim counter.
func (m *Metrics) IncClaims() {
	m.claimsTotal.Inc()
}

// IncEmptyClaims increments the empty-claim counter.
func (m *Metrics) IncEmptyClaims() {
	m.emptyClaims.Inc()
}

// IncPublished increments the upsert counter.
func (m *Metrics) IncPublished() {
	m.publishedTotal.Inc()
}

// IncSentinel increments the sentinel-publish counter.
func (m *Metrics) IncSentinel() {
	m.sentinelTotal.Inc()
}

// IncAbandoned increments the abandon counter for a stage.
func (m *Metrics) IncAbandoned(stage string) {
	m.abandonedTotal.WithLabelValues(stage).Inc()
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
