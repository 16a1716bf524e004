// Package metrics exposes Prometheus instrumentation for the video service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus counters and gauges.
type Metrics struct {
	registry            *prometheus.Registry
	requestsTotal       prometheus.Counter
	errorsTotal         prometheus.Counter
	jobsCompletedTotal  prometheus.Counter
	jobsFailedTotal     prometheus.Counter
	scenesRenderedTotal prometheus.Counter
	queueDepth          prometheus.Gauge
	jobSeconds          prometheus.Histogram
}

// New creates and registers the service metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reelsmith_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reelsmith_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	jobsCompletedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reelsmith_jobs_completed_total",
		Help: "Total number of render jobs that completed successfully",
	})
	jobsFailedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reelsmith_jobs_failed_total",
		Help: "Total number of render jobs that failed",
	})
	scenesRenderedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reelsmith_scenes_rendered_total",
		Help: "Total number of scenes assembled across all jobs",
	})
	queueDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reelsmith_queue_depth",
		Help: "Number of jobs currently waiting or processing",
	})
	jobSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reelsmith_job_duration_seconds",
		Help:    "Wall time spent processing one render job",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		jobsCompletedTotal,
		jobsFailedTotal,
		scenesRenderedTotal,
		queueDepth,
		jobSeconds,
	)

	return &Metrics{
		registry:            registry,
		requestsTotal:       requestsTotal,
		errorsTotal:         errorsTotal,
		jobsCompletedTotal:  jobsCompletedTotal,
		jobsFailedTotal:     jobsFailedTotal,
		scenesRenderedTotal: scenesRenderedTotal,
		queueDepth:          queueDepth,
		jobSeconds:          jobSeconds,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncJobsCompleted increments the completed jobs counter.
func (m *Metrics) IncJobsCompleted() {
	m.jobsCompletedTotal.Inc()
}

// IncJobsFailed increments the failed jobs counter.
func (m *Metrics) IncJobsFailed() {
	m.jobsFailedTotal.Inc()
}

// AddScenesRendered adds to the scenes rendered counter.
func (m *Metrics) AddScenesRendered(n int) {
	m.scenesRenderedTotal.Add(float64(n))
}

// SetQueueDepth sets the queue depth gauge.
func (m *Metrics) SetQueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}

// ObserveJobDuration records one job's processing time.
func (m *Metrics) ObserveJobDuration(d time.Duration) {
	m.jobSeconds.Observe(d.Seconds())
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
