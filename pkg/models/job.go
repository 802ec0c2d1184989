// Package models holds the workload descriptors shared by the trace
// reader, the scheduling policies, the cluster accountant, and the
// engine.
package models

import "fmt"

// NoScheduleTime is the sentinel ScheduleTime of a job that has not
// yet been dispatched.
const NoScheduleTime int64 = -1

// Job is a single workload record replayed from the trace. SubmitTime,
// RequestedRunTime, RunTime and Nodes are set once at trace-load time
// and never change; ScheduleTime is the only mutable field, written
// exactly once by Cluster.ScheduleJob.
//
// RunTime is the job's actual running time. It is simulator-private:
// no scheduling policy may read it (see scheduler.JobView), since a
// real scheduler never knows in advance how long a job will actually
// run. RequestedRunTime is the user-declared upper bound and is the
// only duration a policy may reason about.
type Job struct {
	JobID            int64
	SubmitTime       int64
	RequestedRunTime int64
	RunTime          int64
	Nodes            int
	ScheduleTime     int64
}

// NewJob constructs a Job with its ScheduleTime unset.
func NewJob(jobID, submitTime, runTime, requestedRunTime int64, nodes int) *Job {
	return &Job{
		JobID:            jobID,
		SubmitTime:       submitTime,
		RequestedRunTime: requestedRunTime,
		RunTime:          runTime,
		Nodes:            nodes,
		ScheduleTime:     NoScheduleTime,
	}
}

// IsScheduled reports whether the job has been dispatched.
func (j *Job) IsScheduled() bool {
	return j.ScheduleTime != NoScheduleTime
}

// WaitTime returns schedule_time - submit_time. Panics if the job has
// not been scheduled yet, mirroring the assertion in the original
// simulator's get_wait_time.
func (j *Job) WaitTime() int64 {
	if !j.IsScheduled() {
		panic(fmt.Sprintf("job %d: WaitTime called before ScheduleJob", j.JobID))
	}
	if j.ScheduleTime < j.SubmitTime {
		panic(fmt.Sprintf("job %d: schedule_time %d < submit_time %d", j.JobID, j.ScheduleTime, j.SubmitTime))
	}
	return j.ScheduleTime - j.SubmitTime
}

// ExpectedEnd returns the time at which the job is predicted to
// release its nodes, assuming it runs for its full requested time.
// Only meaningful once the job is scheduled.
func (j *Job) ExpectedEnd() int64 {
	return j.ScheduleTime + j.RequestedRunTime
}

// CompletionTime returns the clock at which the job actually finishes
// (schedule time plus its real, policy-invisible run time).
func (j *Job) CompletionTime() int64 {
	return j.ScheduleTime + j.RunTime
}

func (j *Job) String() string {
	return fmt.Sprintf("{%d, %d nodes for %ds}", j.JobID, j.Nodes, j.RequestedRunTime)
}
