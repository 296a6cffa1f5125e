// Package database is the persistent store behind the restaurant list.
//
// # Schema
//
// Two tables live in a single SQLite file:
//
//	restaurants(name PRIMARY KEY, category)
//	history(id PRIMARY KEY, name, picked_at)
//
// There is no foreign key between history.name and restaurants.name. Update rewrites
// history rows when a restaurant is renamed, inside the same transaction; Delete leaves
// history rows alone, so history may mention restaurants that no longer exist.
//
// # Concurrency
//
// A Database serializes every operation, reads and writes alike, through one lock.
// Waiting for the lock is bounded by Config.LockTimeout and the SQL run under it by
// Config.QueryTimeout; both also stop when the caller's context is done.
//
// # Usage
//
//	db, err := database.NewDatabase("./lunch.db", database.DefaultConfig())
//	if err != nil {
//		// fatal: nothing works without a store
//	}
//	defer db.Close()
//
//	err = db.Add(ctx, "Arbys", entities.CategoryCheap)
//	if errors.Is(err, database.ErrConflict) {
//		// name taken
//	}
//
// # Seeding
//
// NewDatabase calls Seed when Config.Seed is set. Seed only inserts the bundled list
// (seed/restaurants.yaml) when the restaurants table is empty.
package database
