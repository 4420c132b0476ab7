package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "travian"
	// Subsystem for agent loop metrics
	subsystem = "agent"
)

// Registry is the global Prometheus registry for all metrics.
// Nil when metrics are disabled.
var Registry *prometheus.Registry

// InitRegistry initializes the Prometheus registry.
// Should be called once at application startup if metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// IsEnabled returns true if metrics collection is enabled.
func IsEnabled() bool {
	return Registry != nil
}

// AgentMetricsCollector records scheduler loop events. It satisfies the
// scheduler's Metrics interface.
type AgentMetricsCollector struct {
	passesTotal  prometheus.Counter
	passVillages prometheus.Gauge
	jobsTotal    *prometheus.CounterVec
	jobDuration  *prometheus.HistogramVec
	queueDepth   prometheus.Gauge
}

// NewAgentMetricsCollector creates the scheduler loop collector.
func NewAgentMetricsCollector() *AgentMetricsCollector {
	return &AgentMetricsCollector{
		passesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "passes_total",
				Help:      "Total number of completed observation passes",
			},
		),

		passVillages: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "pass_villages",
				Help:      "Number of villages observed in the latest pass",
			},
		),

		jobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "jobs_total",
				Help:      "Total number of finished jobs by kind and final status",
			},
			[]string{"kind", "status"},
		),

		jobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "job_duration_seconds",
				Help:      "Wall-clock execution time of finished jobs by kind",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"kind"},
		),

		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queue_depth",
				Help:      "Number of jobs currently waiting in the scheduler queue",
			},
		),
	}
}

// Register registers all collectors with the Prometheus registry.
func (c *AgentMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.passesTotal,
		c.passVillages,
		c.jobsTotal,
		c.jobDuration,
		c.queueDepth,
	}
	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// PassCompleted records one finished observation pass over the given number
// of villages.
func (c *AgentMetricsCollector) PassCompleted(villages int) {
	c.passesTotal.Inc()
	c.passVillages.Set(float64(villages))
}

// JobFinished records a job reaching a terminal status.
func (c *AgentMetricsCollector) JobFinished(kind, status string, elapsed time.Duration) {
	c.jobsTotal.WithLabelValues(kind, status).Inc()
	c.jobDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// QueueDepth records the scheduler queue size after a pass.
func (c *AgentMetricsCollector) QueueDepth(depth int) {
	c.queueDepth.Set(float64(depth))
}
