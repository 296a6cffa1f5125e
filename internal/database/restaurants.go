package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/lunch/internal/entities"
)

func validate(name string, category entities.Category) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	if !category.Valid() {
		return fmt.Errorf("%w: %q", entities.ErrInvalidCategory, category)
	}
	return nil
}

func exists(tx *gorm.DB, name string) (bool, error) {
	var count int64
	if err := tx.Model(&entities.Restaurant{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts a new restaurant. Returns ErrConflict if the name is already taken.
func (d *Database) Add(ctx context.Context, name string, category entities.Category) error {
	if err := validate(name, category); err != nil {
		return err
	}

	return d.withTx(ctx, "add restaurant", func(tx *gorm.DB) error {
		taken, err := exists(tx, name)
		if err != nil {
			return err
		}
		if taken {
			return conflictError(name)
		}

		err = tx.Create(&entities.Restaurant{Name: name, Category: category}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictError(name)
		}
		return err
	})
}

// List returns every restaurant ordered by name.
func (d *Database) List(ctx context.Context) ([]entities.Restaurant, error) {
	var restaurants []entities.Restaurant
	err := d.withLock(ctx, "list restaurants", func(tx *gorm.DB) error {
		return tx.Order("name ASC").Find(&restaurants).Error
	})
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

// ListByCategory returns the restaurants in category, compared case-insensitively.
func (d *Database) ListByCategory(ctx context.Context, category entities.Category) ([]entities.Restaurant, error) {
	var restaurants []entities.Restaurant
	err := d.withLock(ctx, "list restaurants by category", func(tx *gorm.DB) error {
		var err error
		restaurants, err = findByCategory(tx, category)
		return err
	})
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

func findByCategory(tx *gorm.DB, category entities.Category) ([]entities.Restaurant, error) {
	var restaurants []entities.Restaurant
	err := tx.Where("LOWER(category) = LOWER(?)", string(category)).Order("name ASC").Find(&restaurants).Error
	return restaurants, err
}

// Get returns the restaurant called name, or ErrNotFound.
func (d *Database) Get(ctx context.Context, name string) (*entities.Restaurant, error) {
	var restaurant entities.Restaurant
	err := d.withLock(ctx, "get restaurant", func(tx *gorm.DB) error {
		err := tx.Where("name = ?", name).First(&restaurant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError(name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Count returns the number of restaurants.
func (d *Database) Count(ctx context.Context) (int64, error) {
	var count int64
	err := d.withLock(ctx, "count restaurants", func(tx *gorm.DB) error {
		return tx.Model(&entities.Restaurant{}).Count(&count).Error
	})
	return count, err
}

// Delete removes the restaurant called name. Deleting a name that does not exist is
// not an error. History records that mention the name are kept.
func (d *Database) Delete(ctx context.Context, name string) error {
	return d.withLock(ctx, "delete restaurant", func(tx *gorm.DB) error {
		return tx.Where("name = ?", name).Delete(&entities.Restaurant{}).Error
	})
}

// Update renames and/or recategorizes a restaurant. History records referring to
// originalName are rewritten to newName in the same transaction. Returns ErrNotFound
// if originalName does not exist and ErrConflict if newName belongs to another
// restaurant; in both cases nothing changes.
func (d *Database) Update(ctx context.Context, originalName, newName string, category entities.Category) error {
	if err := validate(newName, category); err != nil {
		return err
	}

	return d.withTx(ctx, "update restaurant", func(tx *gorm.DB) error {
		found, err := exists(tx, originalName)
		if err != nil {
			return err
		}
		if !found {
			return notFoundError(originalName)
		}

		renamed := originalName != newName
		if renamed {
			taken, err := exists(tx, newName)
			if err != nil {
				return err
			}
			if taken {
				return conflictError(newName)
			}
		}

		err = tx.Model(&entities.Restaurant{}).
			Where("name = ?", originalName).
			Updates(map[string]any{"name": newName, "category": category}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictError(newName)
		}
		if err != nil {
			return err
		}

		if !renamed {
			return nil
		}
		return tx.Model(&entities.HistoryRecord{}).
			Where("name = ?", originalName).
			Update("name", newName).Error
	})
}
