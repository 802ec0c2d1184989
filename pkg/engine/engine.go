// Package engine drives the discrete-event simulation: it owns the
// monotone virtual clock, the event priority queue, and the
// drain-schedule / advance-time loop that interleaves scheduling
// policy invocations with time advancement.
package engine

import (
	"context"
	"errors"
	"fmt"

	"hpcsim/pkg/cluster"
	"hpcsim/pkg/event"
	"hpcsim/pkg/models"
	"hpcsim/pkg/queue"
	"hpcsim/pkg/scheduler"
	"hpcsim/pkg/trace"
)

// ErrInvariant marks a programmer-error condition: a scheduling
// policy returned a decision the engine cannot honor, or the engine
// reached a state the data model rules out. These are never
// recovered from.
var ErrInvariant = errors.New("engine: invariant violated")

// ErrCancelled is returned by Run when the supplied context was
// cancelled at a tick boundary before the simulation reached its
// natural termination.
var ErrCancelled = errors.New("engine: cancelled")

// Observer receives best-effort notifications as the simulation
// progresses. The Engine never imports a logger or a metrics package
// directly — it calls back through this narrow interface instead. A
// nil Observer is valid; NoopObserver is provided for embedding.
type Observer interface {
	OnJobSkipped(jobID, nodesRequested int64, totalNodes int)
	// OnJobScheduled reports a dispatch. backfilled is true when the
	// dispatched job was not the waiting queue's head — i.e. a policy
	// like fcfs_easy reached past the head job to admit it early.
	OnJobScheduled(job *models.Job, clock int64, backfilled bool)
	OnTick(clock int64, queueDepth, availableNodes int)
	OnDone(makespan int64, scheduledCount int)
}

// NoopObserver implements Observer with no-ops; embed it to satisfy
// the interface without implementing every method.
type NoopObserver struct{}

func (NoopObserver) OnJobSkipped(int64, int64, int)          {}
func (NoopObserver) OnJobScheduled(*models.Job, int64, bool) {}
func (NoopObserver) OnTick(int64, int, int)                  {}
func (NoopObserver) OnDone(int64, int)                       {}

// Result carries everything the statistics report and reference-test
// assertions need out of a run.
type Result struct {
	Makespan        int64
	WaitTimes       []int64
	CompletionTimes []int64
	ScheduledJobs   int
}

// Engine holds the simulation state: the cluster, the event heap, the
// waiting queue, the monotone clock, and the running metrics.
type Engine struct {
	cluster  *cluster.Cluster
	policy   scheduler.Policy
	events   *event.Queue
	waiting  *queue.Queue
	clock    int64
	observer Observer

	waitTimes       []int64
	completionTimes []int64
	scheduledJobs   int
}

// New creates an Engine over c using policy, with clock at zero and
// empty queues. obs may be nil.
func New(c *cluster.Cluster, policy scheduler.Policy, obs Observer) *Engine {
	if obs == nil {
		obs = NoopObserver{}
	}
	return &Engine{
		cluster:  c,
		policy:   policy,
		events:   event.NewQueue(),
		waiting:  queue.New(),
		observer: obs,
	}
}

// Load drains src, seeding one Arrival event per admitted job. It
// returns the number of jobs loaded. The trace package's own
// skip/hard-error handling has already happened inside src.Next; Load
// only needs to turn admitted jobs into seed events.
func (e *Engine) Load(src trace.Source) (int, error) {
	count := 0
	for {
		job, ok, err := src.Next()
		if err != nil {
			return count, fmt.Errorf("engine: loading trace: %w", err)
		}
		if !ok {
			return count, nil
		}
		e.events.Push(&event.Event{Timestamp: job.SubmitTime, Kind: event.Arrival, Job: job})
		count++
	}
}

// Run executes the main loop until both the event queue and the
// waiting queue are empty, or ctx is cancelled at a tick boundary.
// The returned clock is the simulation's makespan.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	for e.events.Len() > 0 || e.waiting.Len() > 0 {
		if err := e.drainSchedule(); err != nil {
			return e.result(), err
		}

		if ctx != nil && ctx.Err() != nil {
			return e.result(), ErrCancelled
		}

		if e.events.Len() == 0 {
			if e.waiting.Len() > 0 {
				// Every job admitted into the waiting queue has
				// Nodes <= total_nodes (enforced at load time), so
				// whenever the cluster is fully idle every waiting
				// job fits and some policy would have dispatched it.
				// Reaching here means nodes are held by running jobs
				// with no corresponding completion event pending,
				// which the data model rules out.
				return e.result(), fmt.Errorf("%w: waiting queue non-empty with no pending events", ErrInvariant)
			}
			break
		}

		evt := e.events.Pop()
		e.clock = evt.Timestamp
		switch evt.Kind {
		case event.Arrival:
			e.waiting.Append(evt.Job)
		case event.Completion:
			e.cluster.FinishJob(evt.Job, e.clock)
		}
		e.observer.OnTick(e.clock, e.waiting.Len(), e.cluster.AvailableNodes())
	}

	result := e.result()
	e.observer.OnDone(result.Makespan, result.ScheduledJobs)
	return result, nil
}

// drainSchedule repeatedly invokes the policy against the current
// waiting queue and cluster state, dispatching jobs until the policy
// declines. It never advances the clock.
func (e *Engine) drainSchedule() error {
	for e.waiting.Len() > 0 {
		dispatch, jobID := e.policy(scheduler.Views(e.waiting.Jobs()), e.cluster.View(), e.clock)
		if !dispatch {
			return nil
		}

		jobs := e.waiting.Jobs()
		job := findJob(jobs, jobID)
		if job == nil {
			return fmt.Errorf("%w: policy chose job %d, not in waiting queue", ErrInvariant, jobID)
		}
		if job.Nodes > e.cluster.AvailableNodes() {
			return fmt.Errorf("%w: policy chose job %d needing %d nodes, only %d available", ErrInvariant, jobID, job.Nodes, e.cluster.AvailableNodes())
		}
		backfilled := len(jobs) > 0 && jobs[0].JobID != jobID

		e.waiting.Remove(jobID)
		if err := e.cluster.ScheduleJob(job, e.clock); err != nil {
			return fmt.Errorf("%w: %v", ErrInvariant, err)
		}

		e.events.Push(&event.Event{Timestamp: e.clock + job.RunTime, Kind: event.Completion, Job: job})
		e.waitTimes = append(e.waitTimes, job.WaitTime())
		e.completionTimes = append(e.completionTimes, job.CompletionTime())
		e.scheduledJobs++

		e.observer.OnJobScheduled(job, e.clock, backfilled)
	}
	return nil
}

func findJob(jobs []*models.Job, jobID int64) *models.Job {
	for _, j := range jobs {
		if j.JobID == jobID {
			return j
		}
	}
	return nil
}

func (e *Engine) result() Result {
	return Result{
		Makespan:        e.clock,
		WaitTimes:       e.waitTimes,
		CompletionTimes: e.completionTimes,
		ScheduledJobs:   e.scheduledJobs,
	}
}

// Cluster exposes the underlying cluster for reporting (used by the
// CLI to call ReportUtilisation after Run completes).
func (e *Engine) Cluster() *cluster.Cluster { return e.cluster }
