package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	JobsInQueue         prometheus.Gauge
	FetchAttempts       *prometheus.CounterVec
	RowsTotal           *prometheus.CounterVec
	BatchDuration       *prometheus.HistogramVec
}

// New registers the metrics with reg. A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		JobsInQueue: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "filmdata_jobs_in_queue",
				Help: "Current number of jobs waiting in the queue.",
			},
		),
		FetchAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filmdata_fetch_attempts_total",
				Help: "Total number of outgoing fetch attempts, retries included.",
			},
			[]string{"target"}, // page, tmdb
		),
		RowsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filmdata_rows_total",
				Help: "Total number of assembled rows.",
			},
			[]string{"kind", "status"},
		),
		BatchDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filmdata_batch_duration_seconds",
				Help:    "Duration of batch assembly.",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) IncFetchAttempt(target string) {
	if m == nil {
		return
	}
	m.FetchAttempts.WithLabelValues(target).Inc()
}

func (m *Metrics) IncRow(kind, status string) {
	if m == nil {
		return
	}
	m.RowsTotal.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) ObserveBatch(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.BatchDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) SetJobsInQueue(n int64) {
	if m == nil {
		return
	}
	m.JobsInQueue.Set(float64(n))
}

func (m *Metrics) ObserveHTTP(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
}
