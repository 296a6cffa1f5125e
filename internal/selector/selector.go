// Package selector picks a random restaurant from a category.
//
// The default draw is uniform over every restaurant in the category. Avoiding the
// previous pick is an opt-in extension (Options.AvoidRepeats).
package selector

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/mrlokans/lunch/internal/database"
	"github.com/mrlokans/lunch/internal/entities"
)

// ErrEmpty is returned when no restaurant matches the requested category.
var ErrEmpty = errors.New("no restaurants found")

// Store is the part of the database the selector needs.
type Store interface {
	Roll(ctx context.Context, category entities.Category, opts database.RollOptions, choose database.ChooseFunc) (entities.Restaurant, error)
}

type Options struct {
	// AvoidRepeats excludes the most recent pick when another candidate exists.
	AvoidRepeats bool

	// RecordHistory stores every successful pick in the history table.
	RecordHistory bool

	// Rand overrides the process-wide random source. Used by tests.
	Rand *rand.Rand

	// Now overrides the clock used for history records.
	Now func() time.Time
}

type Selector struct {
	store Store
	opts  Options

	mu sync.Mutex // guards opts.Rand, which is not safe for concurrent use
}

func New(store Store, opts Options) *Selector {
	return &Selector{store: store, opts: opts}
}

// Pick returns a random restaurant whose category matches category, or ErrEmpty.
func (s *Selector) Pick(ctx context.Context, category entities.Category) (entities.Restaurant, error) {
	return s.store.Roll(ctx, category, database.RollOptions{
		Record: s.opts.RecordHistory,
		Now:    s.opts.Now,
	}, s.choose)
}

func (s *Selector) choose(candidates []entities.Restaurant, lastPick string) (entities.Restaurant, error) {
	if len(candidates) == 0 {
		return entities.Restaurant{}, ErrEmpty
	}
	if s.opts.AvoidRepeats && lastPick != "" {
		candidates = withoutName(candidates, lastPick)
	}
	return candidates[s.intN(len(candidates))], nil
}

// withoutName drops name from candidates unless it is the only one left.
func withoutName(candidates []entities.Restaurant, name string) []entities.Restaurant {
	filtered := make([]entities.Restaurant, 0, len(candidates))
	for _, c := range candidates {
		if c.Name != name {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return candidates
	}
	return filtered
}

func (s *Selector) intN(n int) int {
	if s.opts.Rand == nil {
		return rand.IntN(n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.Rand.IntN(n)
}
