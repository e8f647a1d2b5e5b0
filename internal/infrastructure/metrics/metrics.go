package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeConfig  = "config_error"
	OutcomeFailed  = "upstream_error"
)

// Metrics groups the Prometheus collectors of the API.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	summarizeTotal  *prometheus.CounterVec
	shareTotal      *prometheus.CounterVec
	emailsSent      prometheus.Counter
	throttledTotal  prometheus.Counter
	upstreamLatency *prometheus.HistogramVec
}

// New creates the collectors on a dedicated registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		summarizeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notes",
			Name:      "summarize_requests_total",
			Help:      "Summarize requests by outcome.",
		}, []string{"outcome"}),
		shareTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notes",
			Name:      "share_requests_total",
			Help:      "Share requests by outcome.",
		}, []string{"outcome"}),
		emailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notes",
			Name:      "emails_sent_total",
			Help:      "Individual emails delivered.",
		}),
		throttledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notes",
			Name:      "throttled_requests_total",
			Help:      "Requests rejected by the fixed window limiter.",
		}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "notes",
			Name:      "upstream_duration_seconds",
			Help:      "Latency of calls to the completion API and mail transport.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"upstream"}),
	}
	reg.MustRegister(
		m.summarizeTotal,
		m.shareTotal,
		m.emailsSent,
		m.throttledTotal,
		m.upstreamLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveSummarize(outcome string) {
	if m == nil {
		return
	}
	m.summarizeTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveShare(outcome string, delivered int) {
	if m == nil {
		return
	}
	m.shareTotal.WithLabelValues(outcome).Inc()
	m.emailsSent.Add(float64(delivered))
}

func (m *Metrics) ObserveThrottled() {
	if m == nil {
		return
	}
	m.throttledTotal.Inc()
}

// ObserveUpstream records the duration of one external call in seconds
func (m *Metrics) ObserveUpstream(upstream string, seconds float64) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(upstream).Observe(seconds)
}
