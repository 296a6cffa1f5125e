package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/lunch/internal/logging"
	"github.com/mrlokans/lunch/internal/tasks"
)

type recordingTrimmer struct {
	mu    sync.Mutex
	keeps []int
	err   error
}

func (r *recordingTrimmer) TrimHistory(_ context.Context, keep int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keeps = append(r.keeps, keep)
	return 0, r.err
}

type recordingEnqueuer struct {
	tasks []backlite.Task
	err   error
}

func (r *recordingEnqueuer) Enqueue(_ context.Context, task backlite.Task) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.tasks = append(r.tasks, task)
	return "task-1", nil
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 * * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("every hour"))
	assert.Error(t, ValidateCronSchedule("0 0 * * * *"))
}

func TestHistoryTrimScheduler_StartStop(t *testing.T) {
	s := NewHistoryTrimScheduler(&recordingTrimmer{}, nil, "0 * * * *", 14, logging.Discard())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.NotNil(t, s.NextRun())

	// Starting twice is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())
}

func TestHistoryTrimScheduler_StopsWithContext(t *testing.T) {
	s := NewHistoryTrimScheduler(&recordingTrimmer{}, nil, "0 * * * *", 14, logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestHistoryTrimScheduler_InvalidSchedule(t *testing.T) {
	s := NewHistoryTrimScheduler(&recordingTrimmer{}, nil, "not a schedule", 14, logging.Discard())

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestHistoryTrimScheduler_RunNowInline(t *testing.T) {
	trimmer := &recordingTrimmer{}
	s := NewHistoryTrimScheduler(trimmer, nil, "0 * * * *", 14, logging.Discard())

	s.RunNow(context.Background())

	assert.Equal(t, []int{14}, trimmer.keeps)
}

func TestHistoryTrimScheduler_RunNowInlineError(t *testing.T) {
	trimmer := &recordingTrimmer{err: errors.New("disk I/O error")}
	s := NewHistoryTrimScheduler(trimmer, nil, "0 * * * *", 14, logging.Discard())

	s.RunNow(context.Background())

	assert.Equal(t, []int{14}, trimmer.keeps)
}

func TestHistoryTrimScheduler_RunNowEnqueues(t *testing.T) {
	trimmer := &recordingTrimmer{}
	enqueuer := &recordingEnqueuer{}
	s := NewHistoryTrimScheduler(trimmer, enqueuer, "0 * * * *", 7, logging.Discard())

	s.RunNow(context.Background())

	assert.Equal(t, []backlite.Task{tasks.TrimHistoryTask{Keep: 7}}, enqueuer.tasks)
	assert.Empty(t, trimmer.keeps)
}

func TestHistoryTrimScheduler_RunNowEnqueueFailureDoesNotTrimInline(t *testing.T) {
	trimmer := &recordingTrimmer{}
	enqueuer := &recordingEnqueuer{err: errors.New("queue closed")}
	s := NewHistoryTrimScheduler(trimmer, enqueuer, "0 * * * *", 7, logging.Discard())

	s.RunNow(context.Background())

	assert.Empty(t, enqueuer.tasks)
	assert.Empty(t, trimmer.keeps)
}
