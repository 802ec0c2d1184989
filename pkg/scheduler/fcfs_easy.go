package scheduler

import "hpcsim/pkg/cluster"

// FCFSEasy is FCFS with EASY backfilling: the head of the queue is
// never delayed by a backfilled job, but smaller jobs behind it may
// run early if doing so is provably safe.
//
// Two phases:
//  1. head-first attempt — if the head fits, dispatch it, done.
//  2. otherwise, compute the head's earliest possible start time t_H
//     under the optimistic assumption that every running job finishes
//     exactly at its ExpectedEnd, then scan the rest of the queue for
//     the first job that both fits now and is guaranteed (by its
//     RequestedRunTime, a hard upper bound) to finish by t_H.
func FCFSEasy(queue []JobView, view cluster.View, clock int64) (bool, int64) {
	if len(queue) == 0 {
		return false, 0
	}

	head := queue[0]
	available := view.AvailableNodes()
	if head.Nodes <= available {
		return true, head.JobID
	}

	tH := earliestStart(head.Nodes, available, view.RunningJobs())

	for _, c := range queue[1:] {
		if c.Nodes <= available && clock+c.RequestedRunTime <= tH {
			return true, c.JobID
		}
	}
	return false, 0
}

// earliestStart computes t_H: the earliest clock at which at least
// neededNodes nodes will be free, assuming every running job
// completes exactly at its ExpectedEnd. entries must be sorted by
// ascending ExpectedEnd (cluster.View.RunningJobs guarantees this).
//
// This is well-defined as long as the running set collectively holds
// enough nodes to eventually satisfy neededNodes, which always holds
// here since neededNodes <= total_nodes and every running job
// eventually releases its nodes.
func earliestStart(neededNodes, available int, entries []cluster.RunningEntry) int64 {
	freed := available
	for _, e := range entries {
		freed += e.Nodes
		if freed >= neededNodes {
			return e.ExpectedEnd
		}
	}
	// Unreachable under the invariant that running jobs collectively
	// hold total_nodes - available nodes, all of which eventually free.
	panic("scheduler: fcfs_easy could not find a feasible reservation time for the head job")
}
