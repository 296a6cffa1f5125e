package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/lunch/internal/entities"
	"github.com/mrlokans/lunch/internal/logging"
)

// Config controls how the database is opened and how long callers wait for it.
type Config struct {
	// LockTimeout bounds how long an operation waits for exclusive access. Zero waits
	// until the caller's context is done.
	LockTimeout time.Duration

	// QueryTimeout bounds the SQL run by a single operation once the lock is held.
	// Zero means no deadline beyond the caller's context.
	QueryTimeout time.Duration

	// BusyTimeout is passed to SQLite as busy_timeout on every connection.
	BusyTimeout time.Duration

	// Seed populates an empty restaurants table with the bundled list on open.
	Seed bool

	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LockTimeout:  5 * time.Second,
		QueryTimeout: 10 * time.Second,
		BusyTimeout:  5 * time.Second,
		Seed:         true,
	}
}

// Database owns the connection to the SQLite file. Every operation, reads included,
// runs while holding a single lock.
type Database struct {
	DB *gorm.DB

	sem          *semaphore.Weighted
	lockTimeout  time.Duration
	queryTimeout time.Duration
	log          *slog.Logger
}

// NewDatabase opens (creating if needed) the database at dbPath, migrates the schema
// and seeds it when it is empty and cfg.Seed is set. It is safe to call repeatedly
// against the same path.
func NewDatabase(dbPath string, cfg Config) (*Database, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	if err := ensureParentDir(dbPath); err != nil {
		return nil, &IOError{Op: "create database directory", Err: err}
	}

	db, err := gorm.Open(sqlite.Open(sqliteDSN(dbPath, cfg.BusyTimeout)), &gorm.Config{
		Logger:         logging.NewGormLogger(log, 200*time.Millisecond),
		TranslateError: true,
	})
	if err != nil {
		return nil, &IOError{Op: "connect to database", Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &IOError{Op: "connect to database", Err: err}
	}
	// SQLite allows a single writer; one connection also keeps :memory: databases shared.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&entities.Restaurant{}, &entities.HistoryRecord{}); err != nil {
		sqlDB.Close()
		return nil, &IOError{Op: "migrate database", Err: err}
	}

	database := &Database{
		DB:           db,
		sem:          semaphore.NewWeighted(1),
		lockTimeout:  cfg.LockTimeout,
		queryTimeout: cfg.QueryTimeout,
		log:          log,
	}

	if cfg.Seed {
		inserted, err := database.Seed(context.Background())
		if err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to seed restaurants: %w", err)
		}
		if inserted > 0 {
			log.Info("Seeded restaurants", "count", inserted)
		}
	}

	log.Info("Database initialized", "path", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping(ctx context.Context) error {
	return d.withLock(ctx, "ping", func(tx *gorm.DB) error {
		sqlDB, err := tx.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(tx.Statement.Context)
	})
}

// withLock runs fn with exclusive access to the database. fn receives a session bound
// to a context carrying the query deadline. Errors that are not one of the package's
// sentinel errors come back wrapped in *IOError.
func (d *Database) withLock(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if err := d.acquire(ctx); err != nil {
		return &IOError{Op: op, Err: err}
	}
	defer d.sem.Release(1)

	if d.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.queryTimeout)
		defer cancel()
	}

	return wrapIO(op, fn(d.DB.WithContext(ctx)))
}

// withTx is withLock with fn running inside a transaction.
func (d *Database) withTx(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	return d.withLock(ctx, op, func(tx *gorm.DB) error {
		return tx.Transaction(fn)
	})
}

func (d *Database) acquire(ctx context.Context) error {
	waitCtx := ctx
	if d.lockTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, d.lockTimeout)
		defer cancel()
	}
	if err := d.sem.Acquire(waitCtx, 1); err != nil {
		// The caller's own cancellation is reported as-is.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w after %v", ErrLockTimeout, d.lockTimeout)
	}
	return nil
}

// sqliteDSN appends the connection pragmas to dbPath. They are part of the DSN so a
// connection reopened by database/sql (for example after a transaction is rolled
// back on a deadline) gets them too.
func sqliteDSN(dbPath string, busyTimeout time.Duration) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=%d",
		dbPath, sep, busyTimeout.Milliseconds())
}

func ensureParentDir(dbPath string) error {
	if dbPath == ":memory:" || strings.HasPrefix(dbPath, "file:") {
		return nil
	}
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
