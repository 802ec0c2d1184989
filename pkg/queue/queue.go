// Package queue implements the simulation's waiting queue: jobs that
// have arrived but not yet been dispatched, kept in arrival order
// (ties broken by job ID) and removable from any position since a
// backfill pick may come from the middle of the queue.
package queue

import "hpcsim/pkg/models"

// Queue is an ordered, arrival-order list of waiting jobs.
type Queue struct {
	jobs []*models.Job
}

// New returns an empty waiting queue.
func New() *Queue {
	return &Queue{}
}

// Len reports the number of waiting jobs.
func (q *Queue) Len() int { return len(q.jobs) }

// Append adds a job to the back of the queue (called when an arrival
// event is processed).
func (q *Queue) Append(j *models.Job) {
	q.jobs = append(q.jobs, j)
}

// Jobs returns the queue's current contents in order. The returned
// slice aliases internal storage and must be treated as read-only by
// callers outside this package (the Engine never mutates it directly;
// it only removes entries via Remove).
func (q *Queue) Jobs() []*models.Job {
	return q.jobs
}

// Remove deletes the job with the given ID from the queue, preserving
// the relative order of the remaining jobs. It is an O(n) scan, which
// is cheap enough for the queue depths this simulator sees; it is a
// no-op if the ID is not present.
func (q *Queue) Remove(jobID int64) {
	for i, j := range q.jobs {
		if j.JobID == jobID {
			q.jobs = append(q.jobs[:i], q.jobs[i+1:]...)
			return
		}
	}
}
