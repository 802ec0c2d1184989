// Package cluster is the resource accountant for the simulation: it
// tracks how many nodes are free, which jobs currently hold nodes,
// and when each of them is predicted to release them.
package cluster

import (
	"errors"
	"fmt"
	"sort"

	"hpcsim/pkg/models"
)

// ErrInsufficientNodes is returned by ScheduleJob when the caller
// (always the Engine) violates the no-over-commit invariant. Seeing
// this error means a scheduling policy returned a decision the
// Cluster cannot honor, or the Engine itself has a bug.
var ErrInsufficientNodes = errors.New("cluster: insufficient available nodes to schedule job")

// runningEntry pairs a running job with its predicted release time.
type runningEntry struct {
	job        *models.Job
	expectedEnd int64
}

// Cluster owns total_nodes, available_nodes and used_resources, and
// the running_jobs map keyed by job ID. It is mutated only by the
// Engine, via ScheduleJob and FinishJob.
type Cluster struct {
	totalNodes     int
	availableNodes int
	usedResources  int64
	runningJobs    map[int64]runningEntry
}

// New creates a Cluster with every node free.
func New(totalNodes int) *Cluster {
	if totalNodes <= 0 {
		panic("cluster: totalNodes must be positive")
	}
	return &Cluster{
		totalNodes:     totalNodes,
		availableNodes: totalNodes,
		runningJobs:    make(map[int64]runningEntry),
	}
}

// TotalNodes returns the cluster's immutable size.
func (c *Cluster) TotalNodes() int { return c.totalNodes }

// AvailableNodes returns the number of currently free nodes.
func (c *Cluster) AvailableNodes() int { return c.availableNodes }

// CanFit reports whether n nodes could be granted right now.
func (c *Cluster) CanFit(n int) bool {
	return n <= c.availableNodes
}

// ScheduleJob admits job into the cluster at clock. The caller must
// have already verified CanFit(job.Nodes); violating that precondition
// is an invariant failure, not a recoverable error; it returns
// ErrInsufficientNodes so the Engine can log and abort loudly rather
// than silently corrupt available_nodes.
func (c *Cluster) ScheduleJob(job *models.Job, clock int64) error {
	if job.Nodes > c.availableNodes {
		return fmt.Errorf("%w: job %d needs %d, %d available", ErrInsufficientNodes, job.JobID, job.Nodes, c.availableNodes)
	}
	job.ScheduleTime = clock
	c.availableNodes -= job.Nodes
	c.runningJobs[job.JobID] = runningEntry{job: job, expectedEnd: job.ExpectedEnd()}
	return nil
}

// FinishJob releases job's nodes at clock and folds its actual usage
// into used_resources. used_resources accumulates across the whole
// run; it is never reassigned (the flat, non-accumulating variant of
// the original simulator is a bug, not a behavior to reproduce).
func (c *Cluster) FinishJob(job *models.Job, clock int64) {
	c.availableNodes += job.Nodes
	c.usedResources += int64(job.Nodes) * job.RunTime
	delete(c.runningJobs, job.JobID)
}

// UsedResources returns the accumulated node-seconds actually consumed.
func (c *Cluster) UsedResources() int64 { return c.usedResources }

// ReportUtilisation summarizes used_resources against the theoretical
// maximum of makespan * total_nodes.
func (c *Cluster) ReportUtilisation(makespan int64) string {
	total := makespan * int64(c.totalNodes)
	idle := total - c.usedResources
	var idlePct float64
	if total > 0 {
		idlePct = float64(idle) * 100 / float64(total)
	}
	return fmt.Sprintf(
		"Usage of the machine:\n"+
			"- %d node-seconds were used, from %d available.\n"+
			"- Nodes spent %d seconds in idle, or %.4f%%.",
		c.usedResources, total, idle, idlePct,
	)
}

// RunningEntry is the read-only shape of a running job exposed to
// scheduling policies for backfill reasoning.
type RunningEntry struct {
	JobID       int64
	Nodes       int
	ExpectedEnd int64
}

// View is a borrowed, read-only handle onto a Cluster. It has no
// mutating methods, so the compiler — not a documentation comment —
// enforces the "policies must not mutate the cluster" contract from
// the scheduling-policy interface.
type View struct {
	c *Cluster
}

// View returns a read-only handle for passing into a scheduling policy.
func (c *Cluster) View() View { return View{c: c} }

// AvailableNodes returns the number of currently free nodes.
func (v View) AvailableNodes() int { return v.c.availableNodes }

// RunningJobs returns the currently running jobs sorted by ascending
// ExpectedEnd (the order the EASY backfill reservation walk wants),
// with JobID as the tie-break.
func (v View) RunningJobs() []RunningEntry {
	entries := make([]RunningEntry, 0, len(v.c.runningJobs))
	for id, re := range v.c.runningJobs {
		entries = append(entries, RunningEntry{JobID: id, Nodes: re.job.Nodes, ExpectedEnd: re.expectedEnd})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ExpectedEnd != entries[j].ExpectedEnd {
			return entries[i].ExpectedEnd < entries[j].ExpectedEnd
		}
		return entries[i].JobID < entries[j].JobID
	})
	return entries
}
