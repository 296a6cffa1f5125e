package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/lunch/internal/commands"
	"github.com/mrlokans/lunch/internal/database"
	"github.com/mrlokans/lunch/internal/http"
	"github.com/mrlokans/lunch/internal/scheduler"
	"github.com/mrlokans/lunch/internal/selector"
	"github.com/mrlokans/lunch/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Restaurant storage
var _ commands.Store = (*database.Database)(nil)
var _ selector.Store = (*database.Database)(nil)

// History maintenance
var _ tasks.HistoryTrimmer = (*database.Database)(nil)
var _ http.HistoryTrimmer = (*database.Database)(nil)

// =============================================================================
// Command Layer
// =============================================================================

var _ commands.Picker = (*selector.Selector)(nil)
var _ http.RestaurantCommands = (*commands.Commands)(nil)

// =============================================================================
// Task Queue
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)
