package scheduler

import "hpcsim/pkg/cluster"

// FCFS schedules jobs strictly in arrival order: if the queue head
// doesn't fit, nothing does, even if a later job would — it never
// skips ahead.
func FCFS(queue []JobView, view cluster.View, _ int64) (bool, int64) {
	if len(queue) == 0 {
		return false, 0
	}
	head := queue[0]
	if head.Nodes <= view.AvailableNodes() {
		return true, head.JobID
	}
	return false, 0
}
