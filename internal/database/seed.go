package database

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/mrlokans/lunch/internal/entities"
)

//go:embed seed/restaurants.yaml
var defaultRestaurantsYAML []byte

type seedFile struct {
	Restaurants []seedEntry `yaml:"restaurants"`
}

type seedEntry struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

// DefaultRestaurants returns the bundled restaurant list. Entries without a name or
// with an unknown category are skipped.
func DefaultRestaurants() ([]entities.Restaurant, error) {
	return parseSeed(defaultRestaurantsYAML)
}

func parseSeed(data []byte) ([]entities.Restaurant, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	restaurants := make([]entities.Restaurant, 0, len(file.Restaurants))
	seen := make(map[string]bool, len(file.Restaurants))
	for _, entry := range file.Restaurants {
		if strings.TrimSpace(entry.Name) == "" || seen[entry.Name] {
			continue
		}
		category, err := entities.ParseCategory(entry.Category)
		if err != nil {
			continue
		}
		seen[entry.Name] = true
		restaurants = append(restaurants, entities.Restaurant{Name: entry.Name, Category: category})
	}
	return restaurants, nil
}

// Seed inserts the bundled restaurants if and only if the restaurants table is empty,
// and returns how many were inserted. There is no "already seeded" flag: a store the
// user emptied is seeded again the next time this runs.
func (d *Database) Seed(ctx context.Context) (int, error) {
	defaults, err := DefaultRestaurants()
	if err != nil {
		return 0, err
	}
	return d.seed(ctx, defaults)
}

func (d *Database) seed(ctx context.Context, restaurants []entities.Restaurant) (int, error) {
	inserted := 0
	err := d.withTx(ctx, "seed restaurants", func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Restaurant{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 || len(restaurants) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&restaurants, 100).Error; err != nil {
			return err
		}
		inserted = len(restaurants)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
