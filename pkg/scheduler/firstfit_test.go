package scheduler

import (
	"testing"

	"hpcsim/pkg/cluster"
)

func TestFirstFitSkipsNonFittingHead(t *testing.T) {
	c := cluster.New(3)
	queue := []JobView{{JobID: 1, Nodes: 4}, {JobID: 2, Nodes: 2}}

	dispatch, jobID := FirstFit(queue, c.View(), 0)

	if !dispatch || jobID != 2 {
		t.Errorf("FirstFit = (%v, %d), want (true, 2)", dispatch, jobID)
	}
}

func TestFirstFitNoneFit(t *testing.T) {
	c := cluster.New(1)
	queue := []JobView{{JobID: 1, Nodes: 4}, {JobID: 2, Nodes: 2}}

	dispatch, _ := FirstFit(queue, c.View(), 0)

	if dispatch {
		t.Errorf("FirstFit should not dispatch when nothing fits")
	}
}
