package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Selection
		History
		Tasks
		Log
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path         string
		Seed         bool          // Populate an empty database with the bundled list
		LockTimeout  time.Duration // Max wait for exclusive access to the store
		QueryTimeout time.Duration // Max time spent in SQL per operation
		BusyTimeout  time.Duration // SQLite busy_timeout
	}

	Selection struct {
		AvoidRepeats  bool // Skip the previous pick when another option exists
		RecordHistory bool // Store every pick in the history table
	}

	History struct {
		Retention    int    // Number of picks kept by trimming
		TrimEnabled  bool   // Periodically trim the history table
		TrimSchedule string // Cron format: "0 * * * *" = hourly
	}

	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}

	Log struct {
		Level string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_seed", true)
	v.SetDefault("database_lock_timeout", "5s")
	v.SetDefault("database_query_timeout", "10s")
	v.SetDefault("database_busy_timeout", "5s")

	v.SetDefault("selection_avoid_repeats", false)
	v.SetDefault("selection_record_history", true)

	v.SetDefault("history_retention", DefaultHistoryRetention)
	v.SetDefault("history_trim_enabled", true)
	v.SetDefault("history_trim_schedule", "0 * * * *") // Hourly at :00

	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("log_level", "info")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:         v.GetString("DATABASE_PATH"),
			Seed:         v.GetBool("DATABASE_SEED"),
			LockTimeout:  v.GetDuration("DATABASE_LOCK_TIMEOUT"),
			QueryTimeout: v.GetDuration("DATABASE_QUERY_TIMEOUT"),
			BusyTimeout:  v.GetDuration("DATABASE_BUSY_TIMEOUT"),
		},
		Selection: Selection{
			AvoidRepeats:  v.GetBool("SELECTION_AVOID_REPEATS"),
			RecordHistory: v.GetBool("SELECTION_RECORD_HISTORY"),
		},
		History: History{
			Retention:    v.GetInt("HISTORY_RETENTION"),
			TrimEnabled:  v.GetBool("HISTORY_TRIM_ENABLED"),
			TrimSchedule: v.GetString("HISTORY_TRIM_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Log: Log{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}
