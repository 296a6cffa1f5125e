package entities

import (
	"errors"
	"fmt"
	"strings"
)

type Category string

const (
	CategoryCheap  Category = "Cheap"
	CategoryNormal Category = "Normal"
)

// Categories lists every known category in display order.
var Categories = []Category{CategoryCheap, CategoryNormal}

var ErrInvalidCategory = errors.New("invalid category")

// ParseCategory resolves s to a known category, ignoring case and surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	trimmed := strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), trimmed) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidCategory, s, categoryNames())
}

// Valid reports whether c is one of the canonical categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

func categoryNames() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Restaurant is a venue that can be picked for lunch. Name is unique and compared
// case-sensitively.
type Restaurant struct {
	Name     string   `gorm:"primaryKey;size:200" json:"name" yaml:"name"`
	Category Category `gorm:"size:20;not null;index" json:"category" yaml:"category"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}
