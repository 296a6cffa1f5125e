package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/lunch/internal/entities"
)

// ChooseFunc picks one restaurant out of candidates. lastPick is the name of the most
// recent pick, or "" when there is no history. An error aborts the roll.
type ChooseFunc func(candidates []entities.Restaurant, lastPick string) (entities.Restaurant, error)

type RollOptions struct {
	// Record stores the chosen restaurant in the history table.
	Record bool
	// Now stamps the history record; time.Now when nil.
	Now func() time.Time
}

// Roll loads the restaurants in category and the latest pick, lets choose decide, and
// records the result, all while holding the lock. Errors returned by choose are passed
// through unchanged.
func (d *Database) Roll(ctx context.Context, category entities.Category, opts RollOptions, choose ChooseFunc) (entities.Restaurant, error) {
	var (
		chosen    entities.Restaurant
		chooseErr error
	)

	err := d.withTx(ctx, "roll restaurant", func(tx *gorm.DB) error {
		candidates, err := findByCategory(tx, category)
		if err != nil {
			return err
		}

		last, _, err := lastPick(tx)
		if err != nil {
			return err
		}

		chosen, chooseErr = choose(candidates, last)
		if chooseErr != nil {
			return chooseErr
		}

		if !opts.Record {
			return nil
		}
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		return tx.Create(&entities.HistoryRecord{Name: chosen.Name, PickedAt: now().UTC()}).Error
	})
	if chooseErr != nil {
		return entities.Restaurant{}, chooseErr
	}
	if err != nil {
		return entities.Restaurant{}, err
	}
	return chosen, nil
}

// RecordPick appends a history record for name.
func (d *Database) RecordPick(ctx context.Context, name string, at time.Time) error {
	return d.withLock(ctx, "record pick", func(tx *gorm.DB) error {
		return tx.Create(&entities.HistoryRecord{Name: name, PickedAt: at.UTC()}).Error
	})
}

// LastPick returns the name of the most recent pick.
func (d *Database) LastPick(ctx context.Context) (string, bool, error) {
	var (
		name string
		ok   bool
	)
	err := d.withLock(ctx, "last pick", func(tx *gorm.DB) error {
		var err error
		name, ok, err = lastPick(tx)
		return err
	})
	return name, ok, err
}

func lastPick(tx *gorm.DB) (string, bool, error) {
	var record entities.HistoryRecord
	err := tx.Order("picked_at DESC, id DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return record.Name, true, nil
}

// History returns up to limit records, newest first. limit <= 0 returns everything.
func (d *Database) History(ctx context.Context, limit int) ([]entities.HistoryRecord, error) {
	var records []entities.HistoryRecord
	err := d.withLock(ctx, "list history", func(tx *gorm.DB) error {
		query := tx.Order("picked_at DESC, id DESC")
		if limit > 0 {
			query = query.Limit(limit)
		}
		return query.Find(&records).Error
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// TrimHistory deletes all but the newest keep records and returns how many were removed.
func (d *Database) TrimHistory(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	var deleted int64
	err := d.withLock(ctx, "trim history", func(tx *gorm.DB) error {
		result := tx.Exec(`
			DELETE FROM history
			WHERE id NOT IN (
				SELECT id FROM history ORDER BY picked_at DESC, id DESC LIMIT ?
			)
		`, keep)
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}
