package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/lunch/internal/entities"
	"github.com/mrlokans/lunch/internal/logging"
	"github.com/mrlokans/lunch/internal/tasks"
)

type fakeTaskQueue struct {
	enqueued []backlite.Task
	status   backlite.TaskStatus
	err      error
}

func (f *fakeTaskQueue) Enqueue(_ context.Context, task backlite.Task) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.enqueued = append(f.enqueued, task)
	return "task-123", nil
}

func (f *fakeTaskQueue) Status(_ context.Context, _ string) (backlite.TaskStatus, error) {
	return f.status, f.err
}

func tasksRouter(queue TaskQueue, trimmer HistoryTrimmer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewTasksController(queue, trimmer, 14, logging.Discard())
	router := gin.New()
	router.POST("/api/history/trim", controller.TrimHistory)
	router.GET("/api/tasks/:id", controller.GetTaskStatus)
	return router
}

func TestTasksController_TrimHistoryEnqueues(t *testing.T) {
	queue := &fakeTaskQueue{}
	router := tasksRouter(queue, nil)

	w := doJSON(router, "POST", "/api/history/trim", nil)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []backlite.Task{tasks.TrimHistoryTask{Keep: 14}}, queue.enqueued)
	assert.Contains(t, w.Body.String(), "task-123")
}

func TestTasksController_TrimHistoryKeepOverride(t *testing.T) {
	queue := &fakeTaskQueue{}
	router := tasksRouter(queue, nil)

	w := doJSON(router, "POST", "/api/history/trim", map[string]int{"keep": 3})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []backlite.Task{tasks.TrimHistoryTask{Keep: 3}}, queue.enqueued)

	w = doJSON(router, "POST", "/api/history/trim", map[string]int{"keep": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTasksController_TrimHistoryEnqueueFailure(t *testing.T) {
	router := tasksRouter(&fakeTaskQueue{err: errors.New("queue closed")}, nil)

	w := doJSON(router, "POST", "/api/history/trim", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeError(t, w).Error)
}

func TestTasksController_TrimHistoryInline(t *testing.T) {
	_, db := setupRestaurantsRouter(t)
	ctx := context.Background()
	require.NoError(t, db.Add(ctx, "Arbys", entities.CategoryCheap))
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.RecordPick(ctx, "Arbys", base.Add(time.Duration(i)*time.Hour)))
	}

	router := tasksRouter(nil, db)
	w := doJSON(router, "POST", "/api/history/trim", map[string]int{"keep": 2})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Deleted int64 `json:"deleted"`
			Keep    int   `json:"keep"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Data.Deleted)
	assert.Equal(t, 2, resp.Data.Keep)

	records, err := db.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestTasksController_GetTaskStatus(t *testing.T) {
	router := tasksRouter(&fakeTaskQueue{status: backlite.TaskStatusSuccess}, nil)

	w := doJSON(router, "GET", "/api/tasks/task-123", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"task-123","status":"success"}`, w.Body.String())
}

func TestTasksController_GetTaskStatusWithoutQueue(t *testing.T) {
	_, db := setupRestaurantsRouter(t)
	router := tasksRouter(nil, db)

	w := doJSON(router, "GET", "/api/tasks/task-123", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTaskStatusToString(t *testing.T) {
	assert.Equal(t, "pending", taskStatusToString(backlite.TaskStatusPending))
	assert.Equal(t, "running", taskStatusToString(backlite.TaskStatusRunning))
	assert.Equal(t, "success", taskStatusToString(backlite.TaskStatusSuccess))
	assert.Equal(t, "failure", taskStatusToString(backlite.TaskStatusFailure))
	assert.Equal(t, "not_found", taskStatusToString(backlite.TaskStatusNotFound))
}
