package cluster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hpcsim/pkg/models"
)

func TestNewPanicsOnNonPositiveNodes(t *testing.T) {
	assert.Panics(t, func() { New(0) })
	assert.Panics(t, func() { New(-1) })
}

func TestScheduleJobDecrementsAvailable(t *testing.T) {
	c := New(10)
	job := models.NewJob(1, 0, 5, 5, 4)

	require.NoError(t, c.ScheduleJob(job, 100))

	assert.Equal(t, 6, c.AvailableNodes())
	assert.Equal(t, int64(100), job.ScheduleTime)
}

func TestScheduleJobRejectsOvercommit(t *testing.T) {
	c := New(4)
	job := models.NewJob(1, 0, 5, 5, 8)

	err := c.ScheduleJob(job, 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientNodes))
}

func TestFinishJobReleasesNodesAndAccumulatesUsage(t *testing.T) {
	c := New(10)
	a := models.NewJob(1, 0, 5, 5, 4)
	b := models.NewJob(2, 0, 3, 3, 2)
	require.NoError(t, c.ScheduleJob(a, 0))
	require.NoError(t, c.ScheduleJob(b, 0))

	c.FinishJob(a, 5)
	assert.Equal(t, 8, c.AvailableNodes())
	assert.Equal(t, int64(20), c.UsedResources())

	c.FinishJob(b, 3)
	assert.Equal(t, 10, c.AvailableNodes())
	assert.Equal(t, int64(26), c.UsedResources())
}

func TestReportUtilisation(t *testing.T) {
	c := New(10)
	job := models.NewJob(1, 0, 10, 10, 5)
	require.NoError(t, c.ScheduleJob(job, 0))
	c.FinishJob(job, 10)

	report := c.ReportUtilisation(10)
	assert.Contains(t, report, "50 node-seconds were used, from 100 available")
	assert.Contains(t, report, "50 seconds in idle, or 50.0000%")
}

func TestViewRunningJobsSortedByExpectedEnd(t *testing.T) {
	c := New(20)
	early := models.NewJob(1, 0, 100, 5, 2)
	late := models.NewJob(2, 0, 100, 20, 2)
	require.NoError(t, c.ScheduleJob(late, 0))
	require.NoError(t, c.ScheduleJob(early, 0))

	entries := c.View().RunningJobs()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].JobID)
	assert.Equal(t, int64(2), entries[1].JobID)
}

func TestViewAvailableNodesTracksCluster(t *testing.T) {
	c := New(8)
	job := models.NewJob(1, 0, 5, 5, 3)
	require.NoError(t, c.ScheduleJob(job, 0))

	assert.Equal(t, 5, c.View().AvailableNodes())
}
