package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/lunch/internal/tasks"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// TaskEnqueuer hands work to the background task queue.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// HistoryTrimScheduler periodically trims the pick history down to Keep records.
// When a task queue is available the trim runs as a queued task, otherwise inline.
type HistoryTrimScheduler struct {
	trimmer  tasks.HistoryTrimmer
	enqueuer TaskEnqueuer
	schedule string
	keep     int
	log      *slog.Logger

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

// NewHistoryTrimScheduler creates a new scheduler instance. enqueuer may be nil.
func NewHistoryTrimScheduler(trimmer tasks.HistoryTrimmer, enqueuer TaskEnqueuer, schedule string, keep int, log *slog.Logger) *HistoryTrimScheduler {
	if log == nil {
		log = slog.Default()
	}
	return &HistoryTrimScheduler{
		trimmer:  trimmer,
		enqueuer: enqueuer,
		schedule: schedule,
		keep:     keep,
		log:      log.With("component", "history_trim"),
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the trim job and starts the cron scheduler. The scheduler stops
// when ctx is done.
func (s *HistoryTrimScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.RunNow(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule history trim job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.log.Info("History trim scheduler started", "schedule", s.schedule, "keep", s.keep, "next_run", s.cron.Entry(entryID).Next)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *HistoryTrimScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	s.log.Info("History trim scheduler stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *HistoryTrimScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next trim will occur, or nil when stopped.
func (s *HistoryTrimScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

// RunNow trims immediately: through the task queue when one is configured, or by
// calling the trimmer directly.
func (s *HistoryTrimScheduler) RunNow(ctx context.Context) {
	if s.enqueuer != nil {
		id, err := s.enqueuer.Enqueue(ctx, tasks.TrimHistoryTask{Keep: s.keep})
		if err != nil {
			s.log.Error("Failed to enqueue history trim", "err", err)
			return
		}
		s.log.Debug("Enqueued history trim", "task_id", id)
		return
	}

	deleted, err := s.trimmer.TrimHistory(ctx, s.keep)
	if err != nil {
		s.log.Error("History trim failed", "err", err)
		return
	}
	s.log.Info("Trimmed pick history", "deleted", deleted, "kept", s.keep)
}
