package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/lunch/internal/tasks"
)

// TaskQueue is the part of the task client the endpoints need.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// HistoryTrimmer trims pick history in-process when no task queue is running.
type HistoryTrimmer interface {
	TrimHistory(ctx context.Context, keep int) (int64, error)
}

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue   TaskQueue
	trimmer HistoryTrimmer
	keep    int
	log     *slog.Logger
}

// NewTasksController creates a new TasksController. queue may be nil, in which case
// trims run synchronously through trimmer.
func NewTasksController(queue TaskQueue, trimmer HistoryTrimmer, keep int, log *slog.Logger) *TasksController {
	if log == nil {
		log = slog.Default()
	}
	return &TasksController{queue: queue, trimmer: trimmer, keep: keep, log: log}
}

// TrimHistoryRequest optionally overrides how many picks to keep.
type TrimHistoryRequest struct {
	Keep *int `json:"keep,omitempty" form:"keep"`
}

// GetTaskStatus handles GET /api/tasks/:id
// Returns the status of a specific task.
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	if tc.queue == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task queue is disabled"})
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, tc.log, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// TrimHistory handles POST /api/history/trim
// Enqueues a history trim, or runs it immediately when the task queue is disabled.
func (tc *TasksController) TrimHistory(c *gin.Context) {
	var req TrimHistoryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBind(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	keep := tc.keep
	if req.Keep != nil {
		if *req.Keep < 0 {
			respondBadRequest(c, "keep must not be negative")
			return
		}
		keep = *req.Keep
	}

	if tc.queue != nil {
		id, err := tc.queue.Enqueue(c.Request.Context(), tasks.TrimHistoryTask{Keep: keep})
		if err != nil {
			respondInternalError(c, tc.log, err, "enqueue history trim")
			return
		}
		respondAccepted(c, "task enqueued", gin.H{"task_id": id, "keep": keep})
		return
	}

	deleted, err := tc.trimmer.TrimHistory(c.Request.Context(), keep)
	if err != nil {
		respondInternalError(c, tc.log, err, "trim history")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "history trimmed",
		Data:    gin.H{"deleted": deleted, "keep": keep},
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
