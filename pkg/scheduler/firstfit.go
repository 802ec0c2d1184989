package scheduler

import "hpcsim/pkg/cluster"

// FirstFit scans the queue in arrival order and dispatches the first
// job that fits within the currently available nodes, skipping over
// ones that don't.
func FirstFit(queue []JobView, view cluster.View, _ int64) (bool, int64) {
	available := view.AvailableNodes()
	for _, j := range queue {
		if j.Nodes <= available {
			return true, j.JobID
		}
	}
	return false, 0
}
