// Package metrics exposes Prometheus instruments for the drinks service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "drinks_"

// Action results.
const (
	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics bundles the service's instruments and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	ActionsTotal    *prometheus.CounterVec
	ActionDuration  *prometheus.HistogramVec
	DrinksStored    prometheus.Gauge
	RateLimitHits   *prometheus.CounterVec
	JobsEnqueued    *prometheus.CounterVec
	NotificationsOK prometheus.Counter
}

// New constructs the instruments and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ActionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "actions_total",
				Help: "Total drink actions by action and result",
			},
			[]string{"action", "result"},
		),
		ActionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "action_duration_seconds",
				Help:    "Drink action latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		DrinksStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "stored",
			Help: "Number of drinks currently stored",
		}),
		RateLimitHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "rate_limit_hits_total",
				Help: "Requests rejected by the rate limiter by path",
			},
			[]string{"path"},
		),
		JobsEnqueued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "jobs_enqueued_total",
				Help: "Background jobs enqueued by task type and result",
			},
			[]string{"task", "result"},
		),
		NotificationsOK: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "notifications_sent_total",
			Help: "Drink change notifications delivered",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ActionsTotal,
		m.ActionDuration,
		m.DrinksStored,
		m.RateLimitHits,
		m.JobsEnqueued,
		m.NotificationsOK,
	)
	return m
}

// Registry returns the registry holding every instrument.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveAction records one drink action. A nil receiver is a no-op so
// callers built without metrics need no checks.
func (m *Metrics) ObserveAction(action, result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ActionsTotal.WithLabelValues(action, result).Inc()
	m.ActionDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// SetDrinksStored updates the stored drinks gauge.
func (m *Metrics) SetDrinksStored(n int64) {
	if m == nil {
		return
	}
	m.DrinksStored.Set(float64(n))
}

// IncRateLimitHit counts a rejected request.
func (m *Metrics) IncRateLimitHit(path string) {
	if m == nil {
		return
	}
	m.RateLimitHits.WithLabelValues(path).Inc()
}

// IncJobEnqueued counts an enqueue attempt for task.
func (m *Metrics) IncJobEnqueued(task, result string) {
	if m == nil {
		return
	}
	m.JobsEnqueued.WithLabelValues(task, result).Inc()
}

// IncNotificationSent counts a delivered notification email.
func (m *Metrics) IncNotificationSent() {
	if m == nil {
		return
	}
	m.NotificationsOK.Inc()
}
