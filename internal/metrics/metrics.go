// Package metrics exposes Prometheus instrumentation for the validation
// pipeline on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/draiml/draiml/internal/confidence"
	"github.com/draiml/draiml/internal/model"
)

const namespace = "draiml"

// Metrics holds every collector. The zero value is not usable; call New.
type Metrics struct {
	registry *prometheus.Registry

	evaluations    *prometheus.CounterVec
	recordFailures prometheus.Counter
	verdicts       *prometheus.CounterVec
	confidence     *prometheus.HistogramVec
	requests       *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry. When withRuntime is set
// the Go and process collectors are registered too.
func New(withRuntime bool) *Metrics {
	reg := prometheus.NewRegistry()
	if withRuntime {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		evaluations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ethics",
			Name:      "evaluations_total",
			Help:      "Ethical evaluations by outcome.",
		}, []string{"approved", "emergency"}),
		recordFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ethics",
			Name:      "record_failures_total",
			Help:      "Evaluations that could not be mirrored to the durable sink.",
		}),
		verdicts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "logic",
			Name:      "verdicts_total",
			Help:      "Conclusion validations by outcome.",
		}, []string{"valid"}),
		confidence: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "confidence",
			Name:      "overall",
			Help:      "Distribution of overall confidence scores.",
			Buckets:   []float64{0.2, 0.4, 0.6, 0.75, 0.9, 1.0, 1.5},
		}, []string{"level"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveEvaluation counts one ethical evaluation.
func (m *Metrics) ObserveEvaluation(ev *model.EthicalEvaluation) {
	if ev == nil {
		return
	}
	m.evaluations.WithLabelValues(strconv.FormatBool(ev.IsApproved), strconv.FormatBool(ev.EmergencyStatus)).Inc()
}

// ObserveRecordFailure counts one failed sink mirror.
func (m *Metrics) ObserveRecordFailure() { m.recordFailures.Inc() }

// ObserveVerdict counts one conclusion validation.
func (m *Metrics) ObserveVerdict(valid bool) {
	m.verdicts.WithLabelValues(strconv.FormatBool(valid)).Inc()
}

// ObserveConfidence records one confidence result.
func (m *Metrics) ObserveConfidence(r *confidence.Result) {
	if r == nil {
		return
	}
	m.confidence.WithLabelValues(string(r.Level)).Observe(r.OverallConfidence)
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(d.Seconds())
}
