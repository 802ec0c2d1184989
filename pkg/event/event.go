// Package event implements the simulation's event priority queue: a
// container/heap min-heap ordered by (timestamp, kind, jobID), with
// completions ordered ahead of arrivals at equal timestamps.
package event

import (
	"container/heap"

	"hpcsim/pkg/models"
)

// Kind distinguishes an arrival from a completion event.
type Kind int

const (
	// Completion sorts before Arrival at the same timestamp so that a
	// job's nodes are freed before same-tick arrivals are admitted to
	// the waiting queue.
	Completion Kind = 0
	Arrival    Kind = 1
)

// Event is a single tagged record in the priority queue.
type Event struct {
	Timestamp int64
	Kind      Kind
	Job       *models.Job
}

// innerHeap is the container/heap.Interface implementation backing
// Queue. Kept unexported so callers only see the typed Push/Pop below.
type innerHeap []*Event

func (h innerHeap) Len() int { return len(h) }

func (h innerHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Job.JobID < b.Job.JobID
}

func (h innerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *innerHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}

func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Queue is a min-heap of Events ordered by (Timestamp, Kind, Job.JobID).
type Queue struct {
	h innerHeap
}

// NewQueue returns an empty event queue.
func NewQueue() *Queue {
	q := &Queue{h: make(innerHeap, 0)}
	heap.Init(&q.h)
	return q
}

// Len reports the number of pending events.
func (q *Queue) Len() int { return q.h.Len() }

// Push inserts an event into the queue, preserving heap order.
func (q *Queue) Push(e *Event) {
	heap.Push(&q.h, e)
}

// Pop removes and returns the minimum event. Panics if the queue is
// empty — the Engine only calls Pop when Len() > 0, so an empty pop
// indicates a logic error, not a recoverable condition.
func (q *Queue) Pop() *Event {
	return heap.Pop(&q.h).(*Event)
}
