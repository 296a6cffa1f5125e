// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - commands.Store: restaurant CRUD and history reads (internal/commands/commands.go)
//   - selector.Store: the single critical section behind a roll (internal/selector/selector.go)
//   - tasks.HistoryTrimmer / http.HistoryTrimmer: history retention
//
// ## Command Layer
//
//   - commands.Picker: random pick by category, implemented by selector.Selector
//   - http.RestaurantCommands: what the HTTP controllers call, implemented by commands.Commands
//
// ## Task Queue
//
//   - http.TaskQueue, scheduler.TaskEnqueuer: enqueueing onto the backlite client
//
// # Adding a New Category
//
// Categories are a closed set. To add one:
//
//  1. Add the constant in internal/entities/restaurant.go and append it to Categories.
//
//  2. Add entries for it to internal/database/seed/restaurants.yaml if the bundled list
//     should include it.
//
// Nothing else changes: parsing, filtering and the HTTP/CLI surfaces go through
// entities.ParseCategory.
//
// # Adding a New Background Task
//
//  1. Define the task type and its Config() in internal/tasks/.
//
//  2. Provide a processor and a NewXQueue constructor, then register the queue in
//     entrypoint.Build.
//
//  3. Enqueue it through tasks.Client.Enqueue, either from a controller or a cron
//     schedule in internal/scheduler/.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the current set.
package interfaces
