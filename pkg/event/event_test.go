package event

import (
	"testing"

	"hpcsim/pkg/models"
)

func TestQueueOrdersByTimestamp(t *testing.T) {
	q := NewQueue()
	q.Push(&Event{Timestamp: 30, Kind: Arrival, Job: models.NewJob(3, 0, 0, 0, 1)})
	q.Push(&Event{Timestamp: 10, Kind: Arrival, Job: models.NewJob(1, 0, 0, 0, 1)})
	q.Push(&Event{Timestamp: 20, Kind: Arrival, Job: models.NewJob(2, 0, 0, 0, 1)})

	var order []int64
	for q.Len() > 0 {
		order = append(order, q.Pop().Job.JobID)
	}

	want := []int64{1, 2, 3}
	for i, id := range want {
		if order[i] != id {
			t.Errorf("pop order[%d] = %d, want %d", i, order[i], id)
		}
	}
}

func TestQueueCompletionBeforeArrivalAtSameTimestamp(t *testing.T) {
	q := NewQueue()
	q.Push(&Event{Timestamp: 50, Kind: Arrival, Job: models.NewJob(1, 0, 0, 0, 1)})
	q.Push(&Event{Timestamp: 50, Kind: Completion, Job: models.NewJob(2, 0, 0, 0, 1)})

	first := q.Pop()
	if first.Kind != Completion {
		t.Errorf("first popped kind = %v, want Completion", first.Kind)
	}
	second := q.Pop()
	if second.Kind != Arrival {
		t.Errorf("second popped kind = %v, want Arrival", second.Kind)
	}
}

func TestQueueTieBreaksByJobID(t *testing.T) {
	q := NewQueue()
	q.Push(&Event{Timestamp: 5, Kind: Arrival, Job: models.NewJob(9, 0, 0, 0, 1)})
	q.Push(&Event{Timestamp: 5, Kind: Arrival, Job: models.NewJob(1, 0, 0, 0, 1)})

	if got := q.Pop().Job.JobID; got != 1 {
		t.Errorf("first popped job = %d, want 1", got)
	}
	if got := q.Pop().Job.JobID; got != 9 {
		t.Errorf("second popped job = %d, want 9", got)
	}
}

func TestQueueLen(t *testing.T) {
	q := NewQueue()
	if q.Len() != 0 {
		t.Fatalf("new queue Len() = %d, want 0", q.Len())
	}
	q.Push(&Event{Timestamp: 1, Kind: Arrival, Job: models.NewJob(1, 0, 0, 0, 1)})
	if q.Len() != 1 {
		t.Fatalf("Len() after push = %d, want 1", q.Len())
	}
	q.Pop()
	if q.Len() != 0 {
		t.Fatalf("Len() after pop = %d, want 0", q.Len())
	}
}
