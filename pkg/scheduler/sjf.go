package scheduler

import "hpcsim/pkg/cluster"

// SJF dispatches, among the jobs that fit right now, the one with the
// smallest requested run time, breaking ties by ascending job ID. It
// never reasons about future events — only about what fits this
// instant.
func SJF(queue []JobView, view cluster.View, _ int64) (bool, int64) {
	available := view.AvailableNodes()

	var best JobView
	found := false
	for _, j := range queue {
		if j.Nodes > available {
			continue
		}
		if !found ||
			j.RequestedRunTime < best.RequestedRunTime ||
			(j.RequestedRunTime == best.RequestedRunTime && j.JobID < best.JobID) {
			best = j
			found = true
		}
	}
	if !found {
		return false, 0
	}
	return true, best.JobID
}
