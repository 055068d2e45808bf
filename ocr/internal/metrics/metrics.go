// Package metrics exposes Prometheus counters for the OCR service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	recognizedTotal *prometheus.CounterVec
	sentinelTotal   *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ocr_requests_total",
		Help: "Total number of process requests received, by game",
	}, []string{"game"})
	recognizedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ocr_recognized_total",
		Help: "Total number of requests that yielded a recognized count, by game",
	}, []string{"game"})
	sentinelTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ocr_sentinel_total",
		Help: "Total number of requests coerced to the sentinel, by game",
	}, []string{"game"})

	registry.MustRegister(requestsTotal, recognizedTotal, sentinelTotal)

	return &Metrics{
		registry:        registry,
		requestsTotal:   requestsTotal,
		recognizedTotal: recognizedTotal,
		sentinelTotal:   sentinelTotal,
	}
}

// IncRequests increments the request counter for a game.
func (m *Metrics) IncRequests(game string) {
	m.requestsTotal.WithLabelValues(game).Inc()
}

// IncRecognized increments the recognized counter for a game.
func (m *Metrics) IncRecognized(game string) {
	m.recognizedTotal.WithLabelValues(game).Inc()
}

// IncSentinel increments the sentinel counter for a game.
func (m *Metrics) IncSentinel(game string) {
	m.sentinelTotal.WithLabelValues(game).Inc()
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
