// Package metrics holds the Prometheus collectors of the order service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ordering"

type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPLatencyMS     *prometheus.HistogramVec
	ConsumedMessages  *prometheus.CounterVec
	OutboxRelayed     *prometheus.CounterVec
	OutboxRelayErrors prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPLatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		ConsumedMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messaging",
			Name:      "consumed_messages_total",
			Help:      "Consumed response messages by topic and outcome.",
		}, []string{"topic", "outcome"}),
		OutboxRelayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "relayed_messages_total",
			Help:      "Outbox messages handled by the relay by result.",
		}, []string{"result"}),
		OutboxRelayErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "relay_errors_total",
			Help:      "Relay runs that failed before finishing their batch.",
		}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPLatencyMS, m.ConsumedMessages, m.OutboxRelayed, m.OutboxRelayErrors)
	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPLatencyMS.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))
}

func (m *Metrics) ObserveConsumed(topic, outcome string) {
	m.ConsumedMessages.WithLabelValues(topic, outcome).Inc()
}

func (m *Metrics) ObserveRelay(published, failed, deferred int) {
	m.OutboxRelayed.WithLabelValues("published").Add(float64(published))
	m.OutboxRelayed.WithLabelValues("failed").Add(float64(failed))
	m.OutboxRelayed.WithLabelValues("deferred").Add(float64(deferred))
}

// Handler exposes the collectors of gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == prometheus.DefaultGatherer {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
