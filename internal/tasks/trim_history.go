package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mikestefanello/backlite"
)

// HistoryTrimmer deletes old pick history.
type HistoryTrimmer interface {
	TrimHistory(ctx context.Context, keep int) (int64, error)
}

// TrimHistoryTask keeps only the newest Keep history records.
type TrimHistoryTask struct {
	Keep int `json:"keep"`
}

// Config returns the queue configuration for history trimming.
func (t TrimHistoryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "trim_history",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// TrimHistoryProcessor creates a processor function for TrimHistoryTask.
func TrimHistoryProcessor(trimmer HistoryTrimmer, log *slog.Logger) backlite.QueueProcessor[TrimHistoryTask] {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx context.Context, task TrimHistoryTask) error {
		if trimmer == nil {
			return fmt.Errorf("history trimmer not configured")
		}

		deleted, err := trimmer.TrimHistory(ctx, task.Keep)
		if err != nil {
			return fmt.Errorf("trim history: %w", err)
		}

		log.Info("Trimmed pick history", "deleted", deleted, "kept", task.Keep)
		return nil
	}
}

// NewTrimHistoryQueue creates a backlite queue for history trimming tasks.
func NewTrimHistoryQueue(trimmer HistoryTrimmer, log *slog.Logger) backlite.Queue {
	return backlite.NewQueue(TrimHistoryProcessor(trimmer, log))
}
