// Package scheduler holds the scheduling-policy abstraction: a pure
// function from (waiting queue, cluster view, clock) to an optional
// dispatch decision, plus the FCFS, First-Fit, SJF and FCFS+EASY
// backfilling implementations and an explicit name-based registry.
package scheduler

import (
	"errors"
	"fmt"

	"hpcsim/pkg/cluster"
	"hpcsim/pkg/models"
)

// ErrUnknownAlgorithm is a Configuration-class error: the CLI asked
// for a policy name that isn't registered.
var ErrUnknownAlgorithm = errors.New("scheduler: unknown algorithm")

// JobView is the read-only projection of a Job that scheduling
// policies are allowed to see. It deliberately omits RunTime: a real
// scheduler never knows how long a job will actually run, only what
// the user requested, so the type itself — not a comment — keeps
// policies honest.
type JobView struct {
	JobID            int64
	SubmitTime       int64
	RequestedRunTime int64
	Nodes            int
}

func viewOf(j *models.Job) JobView {
	return JobView{
		JobID:            j.JobID,
		SubmitTime:       j.SubmitTime,
		RequestedRunTime: j.RequestedRunTime,
		Nodes:            j.Nodes,
	}
}

// Views projects a slice of Jobs into their policy-visible form,
// preserving order.
func Views(jobs []*models.Job) []JobView {
	views := make([]JobView, len(jobs))
	for i, j := range jobs {
		views[i] = viewOf(j)
	}
	return views
}

// Policy is a pure function: given the waiting queue (oldest first)
// and a read-only cluster view, it decides whether to dispatch a job
// right now and, if so, which one. It must not mutate queue or
// cluster — JobView and cluster.View are structurally read-only, so
// there is nothing to mutate through them.
//
// When dispatch is true, jobID must name an entry in queue whose
// Nodes does not exceed view.AvailableNodes(); the Engine asserts
// this and treats a violation as an invariant failure. When dispatch
// is false, jobID is ignored.
type Policy func(queue []JobView, view cluster.View, clock int64) (dispatch bool, jobID int64)

var registry = map[string]Policy{
	"fcfs":      FCFS,
	"ff":        FirstFit,
	"sjf":       SJF,
	"fcfs_easy": FCFSEasy,
}

// Lookup resolves an algorithm name to its Policy, the explicit
// registry the Design Notes call for in place of the original
// simulator's reflection-based getattr lookup.
func Lookup(name string) (Policy, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return p, nil
}

// Names returns the registered algorithm names, for usage/help text.
func Names() []string {
	return []string{"fcfs", "ff", "sjf", "fcfs_easy"}
}
