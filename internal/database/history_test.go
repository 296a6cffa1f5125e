package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/lunch/internal/entities"
)

func first(candidates []entities.Restaurant, _ string) (entities.Restaurant, error) {
	if len(candidates) == 0 {
		return entities.Restaurant{}, errors.New("nothing to choose from")
	}
	return candidates[0], nil
}

func TestDatabase_Roll_RecordsPick(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Add(ctx, "Only Option", entities.CategoryCheap))

	chosen, err := db.Roll(ctx, entities.CategoryCheap, RollOptions{Record: true, Now: func() time.Time { return at }}, first)
	require.NoError(t, err)
	assert.Equal(t, "Only Option", chosen.Name)

	history, err := db.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Only Option", history[0].Name)
	assert.True(t, at.Equal(history[0].PickedAt))
}

func TestDatabase_Roll_WithoutRecording(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, db.Add(ctx, "Only Option", entities.CategoryCheap))

	_, err := db.Roll(ctx, entities.CategoryCheap, RollOptions{}, first)
	require.NoError(t, err)

	_, ok, err := db.LastPick(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDatabase_Roll_PassesCandidatesAndLastPick(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, db.Add(ctx, "A", entities.CategoryCheap))
	require.NoError(t, db.Add(ctx, "B", entities.CategoryCheap))
	require.NoError(t, db.Add(ctx, "C", entities.CategoryNormal))
	require.NoError(t, db.RecordPick(ctx, "B", time.Now()))

	var (
		gotCandidates []entities.Restaurant
		gotLast       string
	)
	_, err := db.Roll(ctx, entities.CategoryCheap, RollOptions{}, func(c []entities.Restaurant, last string) (entities.Restaurant, error) {
		gotCandidates, gotLast = c, last
		return c[0], nil
	})
	require.NoError(t, err)

	assert.Equal(t, []entities.Restaurant{
		{Name: "A", Category: entities.CategoryCheap},
		{Name: "B", Category: entities.CategoryCheap},
	}, gotCandidates)
	assert.Equal(t, "B", gotLast)
}

func TestDatabase_Roll_ChooserErrorPassesThrough(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	sentinel := errors.New("no luck")

	_, err := db.Roll(ctx, entities.CategoryCheap, RollOptions{Record: true}, func([]entities.Restaurant, string) (entities.Restaurant, error) {
		return entities.Restaurant{}, sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.False(t, IsIOError(err))

	history, err := db.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDatabase_History_NewestFirstWithLimit(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.RecordPick(ctx, fmt.Sprintf("Place %d", i), base.Add(time.Duration(i)*24*time.Hour)))
	}

	history, err := db.History(ctx, 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "Place 4", history[0].Name)
	assert.Equal(t, "Place 3", history[1].Name)
	assert.Equal(t, "Place 2", history[2].Name)

	last, ok, err := db.LastPick(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Place 4", last)
}

func TestDatabase_TrimHistory(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		require.NoError(t, db.RecordPick(ctx, fmt.Sprintf("Place %02d", i), base.Add(time.Duration(i)*time.Hour)))
	}

	deleted, err := db.TrimHistory(ctx, 14)
	require.NoError(t, err)
	assert.Equal(t, int64(6), deleted)

	history, err := db.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 14)
	assert.Equal(t, "Place 19", history[0].Name)
	assert.Equal(t, "Place 06", history[13].Name)

	deleted, err = db.TrimHistory(ctx, 14)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestDatabase_TrimHistory_KeepZero(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, db.RecordPick(ctx, "A", time.Now()))

	deleted, err := db.TrimHistory(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
