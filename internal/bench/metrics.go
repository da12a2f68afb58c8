package bench

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "poolbench"

// Metrics records run and worker timings in a private Prometheus registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	runDuration    *prometheus.GaugeVec
	workerDuration *prometheus.HistogramVec
	matches        *prometheus.CounterVec
	threads        *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock time of the fan-out/join phase.",
		}, []string{"strategy", "pool"}),
		workerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "worker_duration_seconds",
			Help:      "Time each worker spent in its matching loop.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
		}, []string{"strategy", "pool"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Successful searches summed over all workers.",
		}, []string{"strategy", "pool"}),
		threads: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "threads",
			Help:      "Number of worker threads in the run.",
		}, []string{"strategy", "pool"}),
	}
	m.registry.MustRegister(m.runDuration, m.workerDuration, m.matches, m.threads)
	return m
}

// Registry returns the registry holding all collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) observeWorker(s Strategy, pool string, d time.Duration) {
	if m == nil {
		return
	}
	m.workerDuration.WithLabelValues(s.String(), pool).Observe(d.Seconds())
}

func (m *Metrics) observeRun(res Result, pool string) {
	if m == nil {
		return
	}
	labels := []string{res.Strategy.String(), pool}
	m.runDuration.WithLabelValues(labels...).Set(res.Elapsed.Seconds())
	m.matches.WithLabelValues(labels...).Add(float64(res.Matches))
	m.threads.WithLabelValues(labels...).Set(float64(res.Threads))
}
