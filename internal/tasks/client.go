package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// ErrNotEnqueued is returned when backlite accepts an add without handing back an ID.
var ErrNotEnqueued = errors.New("task was not enqueued")

// Client runs the background queues (history trimming) on their own SQLite file.
type Client struct {
	queue   *backlite.Client
	db      *sql.DB
	workers int
	log     *slog.Logger

	running atomic.Bool
}

// TasksDBPath returns the queue database kept next to the restaurant store,
// e.g. "./lunch.db" -> "./lunch-tasks.db".
func TasksDBPath(mainDBPath string) string {
	ext := filepath.Ext(mainDBPath)
	return strings.TrimSuffix(mainDBPath, ext) + "-tasks" + ext
}

func tasksDSN(mainDBPath string) string {
	return TasksDBPath(mainDBPath) + "?_journal=WAL&_busy_timeout=5000"
}

// NewClient opens the queue database and installs the backlite schema. Queues must be
// registered before Start.
func NewClient(mainDBPath string, cfg Config, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "tasks")

	db, err := sql.Open("sqlite3", tasksDSN(mainDBPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}
	// One connection per worker plus one for enqueue and status lookups.
	db.SetMaxOpenConns(cfg.Workers + 1)
	db.SetConnMaxLifetime(time.Hour)

	queue, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          log,
	})
	if err == nil {
		err = queue.Install()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up task queue: %w", err)
	}

	return &Client{queue: queue, db: db, workers: cfg.Workers, log: log}, nil
}

func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.queue.Register(q)
	}
}

// Start launches the workers. Calls after the first are ignored.
func (c *Client) Start(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		return
	}
	c.log.Info("task queue started", "workers", c.workers)
	c.queue.Start(ctx)
}

// Stop waits for in-flight tasks until ctx expires. It reports whether every worker
// finished in time; a client that never started reports true.
func (c *Client) Stop(ctx context.Context) bool {
	if !c.running.Load() {
		return true
	}

	started := time.Now()
	finished := c.queue.Stop(ctx)
	if finished {
		c.log.Info("task queue stopped", "took", time.Since(started))
	} else {
		c.log.Warn("task queue stop timed out with tasks still running", "took", time.Since(started))
	}
	return finished
}

// Close releases the queue database. Call it after Stop.
func (c *Client) Close() error {
	return c.db.Close()
}

// Enqueue stores task and returns its ID.
func (c *Client) Enqueue(ctx context.Context, task backlite.Task) (string, error) {
	ids, err := c.queue.Add(task).Ctx(ctx).Save()
	if err != nil {
		return "", fmt.Errorf("failed to enqueue %T: %w", task, err)
	}
	if len(ids) == 0 {
		return "", ErrNotEnqueued
	}
	return ids[0], nil
}

func (c *Client) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return c.queue.Status(ctx, taskID)
}
