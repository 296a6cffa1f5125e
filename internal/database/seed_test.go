package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/lunch/internal/entities"
)

func TestDefaultRestaurants(t *testing.T) {
	defaults, err := DefaultRestaurants()
	require.NoError(t, err)
	require.NotEmpty(t, defaults)

	var cheap, normal int
	names := make(map[string]bool)
	for _, r := range defaults {
		assert.True(t, r.Category.Valid(), "restaurant %q has category %q", r.Name, r.Category)
		assert.False(t, names[r.Name], "duplicate restaurant %q", r.Name)
		names[r.Name] = true
		switch r.Category {
		case entities.CategoryCheap:
			cheap++
		case entities.CategoryNormal:
			normal++
		}
	}
	assert.Positive(t, cheap)
	assert.Positive(t, normal)
	assert.True(t, names["Arbys"])
	assert.True(t, names["Bubba's"])
}

func TestParseSeed_SkipsInvalidEntries(t *testing.T) {
	data := []byte(`
restaurants:
  - name: Good
    category: cheap
  - name: ""
    category: Cheap
  - name: Weird
    category: Expensive
  - name: Good
    category: Normal
  - name: Also Good
    category: NORMAL
`)

	restaurants, err := parseSeed(data)
	require.NoError(t, err)
	assert.Equal(t, []entities.Restaurant{
		{Name: "Good", Category: entities.CategoryCheap},
		{Name: "Also Good", Category: entities.CategoryNormal},
	}, restaurants)
}

func TestParseSeed_InvalidYAML(t *testing.T) {
	_, err := parseSeed([]byte("restaurants: [oops"))
	assert.Error(t, err)
}

func TestSeed_PopulatesEmptyDatabaseOnce(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lunch.db")
	ctx := context.Background()
	defaults, err := DefaultRestaurants()
	require.NoError(t, err)

	db, cleanup := setupTestDBAt(t, dbPath, true)
	count, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defaults)), count)
	cleanup()

	// Re-opening must not insert the defaults a second time.
	db, cleanup = setupTestDBAt(t, dbPath, true)
	defer cleanup()
	count, err = db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defaults)), count)

	inserted, err := db.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestSeed_DoesNotOverwriteExistingData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lunch.db")
	ctx := context.Background()

	db, cleanup := setupTestDBAt(t, dbPath, false)
	require.NoError(t, db.Add(ctx, "Custom Restaurant", entities.CategoryNormal))
	cleanup()

	db, cleanup = setupTestDBAt(t, dbPath, true)
	defer cleanup()

	restaurants, err := db.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.Restaurant{{Name: "Custom Restaurant", Category: entities.CategoryNormal}}, restaurants)
}

func TestSeed_EmptiedDatabaseIsSeededAgain(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lunch.db")
	ctx := context.Background()

	db, cleanup := setupTestDBAt(t, dbPath, true)
	restaurants, err := db.List(ctx)
	require.NoError(t, err)
	for _, r := range restaurants {
		require.NoError(t, db.Delete(ctx, r.Name))
	}
	count, err := db.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
	cleanup()

	db, cleanup = setupTestDBAt(t, dbPath, true)
	defer cleanup()
	count, err = db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(restaurants)), count)
}

func TestSeed_ExplicitCall(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	inserted, err := db.Seed(ctx)
	require.NoError(t, err)
	assert.Positive(t, inserted)

	cheap, err := db.ListByCategory(ctx, entities.CategoryCheap)
	require.NoError(t, err)
	assert.NotEmpty(t, cheap)
	normal, err := db.ListByCategory(ctx, entities.CategoryNormal)
	require.NoError(t, err)
	assert.NotEmpty(t, normal)
}
