package http

import (
	"log/slog"

	"github.com/mrlokans/lunch/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Commands RestaurantCommands
	Database *database.Database

	// Task queue (optional). When nil, history trimming runs inline.
	TaskQueue TaskQueue
	Trimmer   HistoryTrimmer

	// HistoryRetention is how many picks a manual trim keeps.
	HistoryRetention int

	// Application info
	Version string

	Logger *slog.Logger
}
