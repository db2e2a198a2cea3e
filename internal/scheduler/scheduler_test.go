package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fiidash/pkg/logger"
)

type countingJob struct {
	name     string
	schedule string
	failures int32 // fail this many times before succeeding
	calls    atomic.Int32
}

func (j *countingJob) Name() string     { return j.name }
func (j *countingJob) Schedule() string { return j.schedule }

func (j *countingJob) Run(ctx context.Context) error {
	n := j.calls.Add(1)
	if n <= j.failures {
		return errors.New("upstream unavailable")
	}
	return nil
}

func newTestScheduler() *Scheduler {
	return New(logger.Nop()).WithRetry(2, time.Millisecond)
}

func TestAddJob(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.AddJob(&countingJob{name: "b", schedule: "0 0 18 * * 1-5"}))
	require.NoError(t, s.AddJob(&countingJob{name: "a", schedule: "@hourly"}))

	assert.Error(t, s.AddJob(&countingJob{name: "a", schedule: "@daily"}), "duplicate name")
	assert.Error(t, s.AddJob(&countingJob{name: "c", schedule: "not a cron"}))

	assert.Equal(t, []string{"a", "b"}, s.GetAllJobs())
}

func TestRemoveJob(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.AddJob(&countingJob{name: "a", schedule: "@daily"}))

	require.NoError(t, s.RemoveJob("a"))
	assert.Empty(t, s.GetAllJobs())
	assert.Error(t, s.RemoveJob("a"))
}

func TestRunNowRetries(t *testing.T) {
	s := newTestScheduler()
	job := &countingJob{name: "refresh", schedule: "@daily", failures: 2}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunNow(context.Background(), "refresh")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Attempts)
	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.Error)

	history, err := s.GetJobHistory("refresh")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.Equal(t, result.RunID, history.Results[0].RunID)
}

func TestRunNowGivesUp(t *testing.T) {
	s := newTestScheduler()
	job := &countingJob{name: "refresh", schedule: "@daily", failures: 10}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunNow(context.Background(), "refresh")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.Attempts)
	assert.Equal(t, "upstream unavailable", result.Error)

	stats := s.GetJobStats()["refresh"]
	assert.Equal(t, 1, stats.TotalRuns)
	assert.Equal(t, 1, stats.FailureCount)
	assert.NotNil(t, stats.LastFailure)
	assert.Nil(t, stats.LastSuccess)
}

func TestRunNowCancelledStopsRetrying(t *testing.T) {
	s := New(logger.Nop()).WithRetry(5, time.Hour)
	job := &countingJob{name: "refresh", schedule: "@daily", failures: 10}
	require.NoError(t, s.AddJob(job))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.RunNow(ctx, "refresh")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Attempts)
	assert.Contains(t, result.Error, "context canceled")
}

func TestRunUnknownJob(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.RunJob("nope"))
	_, err := s.RunNow(context.Background(), "nope")
	assert.Error(t, err)
	_, err = s.GetJobHistory("nope")
	assert.Error(t, err)
	_, err = s.NextRun("nope")
	assert.Error(t, err)
}

func TestRunJobAsync(t *testing.T) {
	s := newTestScheduler()
	job := &countingJob{name: "refresh", schedule: "@daily"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("refresh"))
	assert.Eventually(t, func() bool {
		h, _ := s.GetJobHistory("refresh")
		return len(h.Results) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestNextRun(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.AddJob(&countingJob{name: "refresh", schedule: "0 0 18 * * 1-5"}))

	next, err := s.NextRun("refresh")
	require.NoError(t, err)
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 18, next.Hour())
	assert.NotEqual(t, time.Saturday, next.Weekday())
	assert.NotEqual(t, time.Sunday, next.Weekday())
}

func TestStartStop(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.AddJob(&countingJob{name: "a", schedule: "@daily"}))
	s.Start()
	s.Stop()
}

func TestJobHistoryBounded(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{RunID: string(rune('a' + i%26)), Success: i%2 == 0})
	}
	assert.Len(t, h.Results, historyLimit)
	assert.Len(t, h.GetLatestResults(5), 5)
	assert.Len(t, h.GetLatestResults(1000), historyLimit)
	assert.Empty(t, h.GetLatestResults(0))
	assert.InDelta(t, 0.5, h.GetSuccessRate(), 1e-9)
	assert.Len(t, h.GetFailedResults(), historyLimit/2)
	assert.Equal(t, 0.0, (&JobHistory{}).GetSuccessRate())
}
