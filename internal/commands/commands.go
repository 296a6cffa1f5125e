// Package commands is the layer between the user-facing surfaces (HTTP, CLI) and the
// store. It parses user input and turns store errors into fixed messages:
//
//	conflict -> "<name> already exists"
//	empty    -> "No restaurants found!"
//	other    -> the underlying message
package commands

import (
	"context"

	"github.com/mrlokans/lunch/internal/entities"
)

// Store is the restaurant storage used by the commands.
type Store interface {
	List(ctx context.Context) ([]entities.Restaurant, error)
	Add(ctx context.Context, name string, category entities.Category) error
	Update(ctx context.Context, originalName, newName string, category entities.Category) error
	Delete(ctx context.Context, name string) error
	History(ctx context.Context, limit int) ([]entities.HistoryRecord, error)
}

// Picker draws a random restaurant.
type Picker interface {
	Pick(ctx context.Context, category entities.Category) (entities.Restaurant, error)
}

type Commands struct {
	store  Store
	picker Picker
}

func New(store Store, picker Picker) *Commands {
	return &Commands{store: store, picker: picker}
}

func (c *Commands) ListRestaurants(ctx context.Context) ([]entities.Restaurant, error) {
	restaurants, err := c.store.List(ctx)
	if err != nil {
		return nil, translate(err, "")
	}
	return restaurants, nil
}

// AddRestaurant stores a new restaurant and returns it with its canonical category.
func (c *Commands) AddRestaurant(ctx context.Context, name, category string) (entities.Restaurant, error) {
	parsed, err := entities.ParseCategory(category)
	if err != nil {
		return entities.Restaurant{}, translate(err, name)
	}
	if err := c.store.Add(ctx, name, parsed); err != nil {
		return entities.Restaurant{}, translate(err, name)
	}
	return entities.Restaurant{Name: name, Category: parsed}, nil
}

// UpdateRestaurant renames and/or recategorizes originalName and returns the
// restaurant as stored.
func (c *Commands) UpdateRestaurant(ctx context.Context, originalName, newName, category string) (entities.Restaurant, error) {
	parsed, err := entities.ParseCategory(category)
	if err != nil {
		return entities.Restaurant{}, translate(err, newName)
	}
	if err := c.store.Update(ctx, originalName, newName, parsed); err != nil {
		return entities.Restaurant{}, translate(err, newName)
	}
	return entities.Restaurant{Name: newName, Category: parsed}, nil
}

func (c *Commands) DeleteRestaurant(ctx context.Context, name string) error {
	return translate(c.store.Delete(ctx, name), name)
}

func (c *Commands) RollLunch(ctx context.Context, category string) (entities.Restaurant, error) {
	parsed, err := entities.ParseCategory(category)
	if err != nil {
		return entities.Restaurant{}, translate(err, "")
	}
	restaurant, err := c.picker.Pick(ctx, parsed)
	if err != nil {
		return entities.Restaurant{}, translate(err, "")
	}
	return restaurant, nil
}

func (c *Commands) History(ctx context.Context, limit int) ([]entities.HistoryRecord, error) {
	records, err := c.store.History(ctx, limit)
	if err != nil {
		return nil, translate(err, "")
	}
	return records, nil
}
