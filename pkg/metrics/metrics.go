// Package metrics holds the simulation's Prometheus metrics. They are
// recorded in-process; nothing here ever starts an HTTP listener. Dump
// writes the registry to a writer in Prometheus text exposition format
// once, at the end of a run.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Registry isolates this run's metrics from the global default
// registry so tests (and repeated runs in one process) don't collide
// on duplicate registration.
var Registry = prometheus.NewRegistry()

var (
	// JobsScheduled counts jobs dispatched, labeled by algorithm.
	JobsScheduled = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hpcsim",
			Subsystem: "scheduler",
			Name:      "jobs_scheduled_total",
			Help:      "Total number of jobs dispatched, by algorithm",
		},
		[]string{"algorithm"},
	)

	// JobsSkipped counts jobs dropped at load time for requesting more
	// nodes than the cluster has.
	JobsSkipped = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: "hpcsim",
			Subsystem: "trace",
			Name:      "jobs_skipped_total",
			Help:      "Total number of jobs skipped for exceeding the cluster's node count",
		},
	)

	// BackfillDispatches counts jobs admitted out of FCFS order by
	// fcfs_easy's backfill scan.
	BackfillDispatches = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: "hpcsim",
			Subsystem: "scheduler",
			Name:      "backfill_dispatches_total",
			Help:      "Total number of jobs admitted by EASY backfilling ahead of the queue head",
		},
	)

	// WaitTimeSeconds records the distribution of per-job wait times.
	WaitTimeSeconds = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hpcsim",
			Subsystem: "scheduler",
			Name:      "wait_time_seconds",
			Help:      "Distribution of job wait times (schedule_time - submit_time)",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 16), // 1s to ~34 years
		},
	)

	// QueueDepth samples the waiting-queue length at each tick.
	QueueDepth = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hpcsim",
			Subsystem: "scheduler",
			Name:      "queue_depth",
			Help:      "Waiting queue length, sampled at the most recent tick",
		},
	)

	// ClusterUtilisation is set once, at the end of a run, to the
	// fraction of node-seconds actually used.
	ClusterUtilisation = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hpcsim",
			Subsystem: "cluster",
			Name:      "utilisation_ratio",
			Help:      "used_resources / (makespan * total_nodes) for the completed run",
		},
	)

	// Makespan is set once, at the end of a run.
	Makespan = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hpcsim",
			Subsystem: "scheduler",
			Name:      "makespan_seconds",
			Help:      "Simulated time from the first event to the completion of the last job",
		},
	)
)

// Dump writes the current registry to w in Prometheus text exposition
// format. It is called at most once, after Run returns — there is no
// live scrape endpoint in this simulator.
func Dump(w io.Writer) error {
	families, err := Registry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gathering: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("metrics: encoding: %w", err)
		}
	}
	return nil
}
