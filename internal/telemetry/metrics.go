package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "johnson"

// Outcome labels for PlansTotal.
const (
	OutcomeOK         = "ok"
	OutcomeInvalid    = "invalid"
	OutcomeNoTasks    = "no_tasks"
	OutcomeZeroLength = "zero_makespan"
	OutcomeError      = "error"
)

// Collectors are the scheduler's Prometheus series.
type Collectors struct {
	PlansTotal  *prometheus.CounterVec
	Tasks       prometheus.Histogram
	Makespan    prometheus.Histogram
	Utilization prometheus.Histogram
	Duration    prometheus.Histogram
}

func NewCollectors(reg prometheus.Registerer) *Collectors {
	f := promauto.With(reg)
	return &Collectors{
		PlansTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_total",
			Help:      "Schedules requested, by sequencing strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		Tasks: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_tasks",
			Help:      "Number of tasks per computed schedule.",
			Buckets:   prometheus.LinearBuckets(0, 5, 9),
		}),
		Makespan: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_makespan_hours",
			Help:      "Makespan of computed schedules.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		Utilization: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_utilization_ratio",
			Help:      "Average machine utilization of computed schedules.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_duration_seconds",
			Help:      "Time spent sequencing, simulating and measuring.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
}

// Observe records one finished plan. Nil receivers are ignored.
func (c *Collectors) Observe(strategy, outcome string, tasks int, makespan, utilization float64, dur time.Duration) {
	if c == nil {
		return
	}
	c.PlansTotal.WithLabelValues(strategy, outcome).Inc()
	if outcome != OutcomeOK {
		return
	}
	c.Tasks.Observe(float64(tasks))
	c.Makespan.Observe(makespan)
	c.Utilization.Observe(utilization)
	c.Duration.Observe(dur.Seconds())
}
