package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/lunch/internal/commands"
	"github.com/mrlokans/lunch/internal/config"
	"github.com/mrlokans/lunch/internal/database"
	http_controllers "github.com/mrlokans/lunch/internal/http"
	"github.com/mrlokans/lunch/internal/logging"
	"github.com/mrlokans/lunch/internal/scheduler"
	"github.com/mrlokans/lunch/internal/selector"
	"github.com/mrlokans/lunch/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds everything Run wires together.
type App struct {
	Router    *gin.Engine
	Database  *database.Database
	Commands  *commands.Commands
	Tasks     *tasks.Client
	Scheduler *scheduler.HistoryTrimScheduler

	log    *slog.Logger
	cancel context.CancelFunc
}

// Build opens the database, starts background workers and creates the router.
// Callers must call Shutdown once done.
func Build(cfg *config.Config, version string, log *slog.Logger) (*App, error) {
	dbCfg := database.Config{
		LockTimeout:  cfg.Database.LockTimeout,
		QueryTimeout: cfg.Database.QueryTimeout,
		BusyTimeout:  cfg.Database.BusyTimeout,
		Seed:         cfg.Database.Seed,
		Logger:       log.With("component", "database"),
	}
	db, err := database.NewDatabase(cfg.Database.Path, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	picker := selector.New(db, selector.Options{
		AvoidRepeats:  cfg.Selection.AvoidRepeats,
		RecordHistory: cfg.Selection.RecordHistory,
	})
	cmds := commands.New(db, picker)

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Database: db,
		Commands: cmds,
		log:      log,
		cancel:   cancel,
	}

	routerCfg := http_controllers.RouterConfig{
		Commands:         cmds,
		Database:         db,
		Trimmer:          db,
		HistoryRetention: cfg.History.Retention,
		Version:          version,
		Logger:           log,
	}

	// Initialize task queue if enabled
	var enqueuer scheduler.TaskEnqueuer
	if cfg.Tasks.Enabled {
		taskClient, err := tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}, log)
		if err != nil {
			app.Shutdown(context.Background())
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.Tasks = taskClient

		taskClient.Register(tasks.NewTrimHistoryQueue(db, log))
		go taskClient.Start(ctx)

		enqueuer = taskClient
		routerCfg.TaskQueue = taskClient
	}

	if cfg.History.TrimEnabled {
		trim := scheduler.NewHistoryTrimScheduler(db, enqueuer, cfg.History.TrimSchedule, cfg.History.Retention, log)
		if err := trim.Start(ctx); err != nil {
			app.Shutdown(context.Background())
			return nil, fmt.Errorf("failed to start history trim scheduler: %w", err)
		}
		app.Scheduler = trim
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// Shutdown stops background work and closes the databases.
func (a *App) Shutdown(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Tasks != nil {
		a.Tasks.Stop(ctx)
	}
	a.cancel()
	if a.Tasks != nil {
		if err := a.Tasks.Close(); err != nil {
			a.log.Error("Error closing task client", "err", err)
		}
	}
	if err := a.Database.Close(); err != nil {
		a.log.Error("Error closing database", "err", err)
	}
}

func Serve(router *gin.Engine, cfg *config.Config, log *slog.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info("Starting server", "addr", addr)
		// service connections
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown", "err", err)
	}

	// Stop background work after requests have drained
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info("Server exiting")
}

func Run(cfg *config.Config, version string) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	log := logging.New(level)
	slog.SetDefault(log)
	if err != nil {
		log.Warn("Unknown log level, using info", "level", cfg.Log.Level)
	}

	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Starting lunch", "version", version, "database", cfg.Database.Path)

	app, err := Build(cfg, version, log)
	if err != nil {
		log.Error("Startup failed", "err", err)
		os.Exit(1)
	}

	Serve(app.Router, cfg, log, app.Shutdown)
}
