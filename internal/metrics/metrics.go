package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nyxhub/content-sync/internal/domain"
	"github.com/nyxhub/content-sync/internal/worker"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	JobsProcessed  *prometheus.CounterVec
	JobsFailed     prometheus.Counter
	BatchSuspended prometheus.Counter
	QueueDepth     prometheus.Gauge
	JobDuration    prometheus.Histogram
}

// New registers all instruments with the given Prometheus registerer.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		JobsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_jobs_processed_total",
			Help: "Total number of sync jobs consumed, by operation.",
		}, []string{"operation"}),

		JobsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sync_jobs_failed_total",
			Help: "Total number of jobs dropped or left for redelivery after a failure.",
		}),

		BatchSuspended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sync_batches_suspended_total",
			Help: "Total number of batches halted by a suspend signal.",
		}),

		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sync_queue_depth",
			Help: "Jobs currently visible in the sync queue.",
		}),

		JobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sync_job_duration_seconds",
			Help:    "Wall-clock time spent processing one sync job.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.JobsProcessed, m.JobsFailed, m.BatchSuspended, m.QueueDepth, m.JobDuration)
	return m
}

// WorkerHooks returns the callback set expected by worker.MetricHooks,
// centralising the prometheus observation calls.
func (m *Metrics) WorkerHooks() worker.MetricHooks {
	return worker.MetricHooks{
		OnProcessed: func(op domain.Operation) {
			m.JobsProcessed.WithLabelValues(string(op)).Inc()
		},
		OnFailed:    func() { m.JobsFailed.Inc() },
		OnSuspended: func() { m.BatchSuspended.Inc() },
		OnBatchDone: func(remaining int) { m.QueueDepth.Set(float64(remaining)) },
		OnJobTimed:  func(seconds float64) { m.JobDuration.Observe(seconds) },
	}
}
