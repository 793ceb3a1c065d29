package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnknownCategory is returned when a category name is outside the fixed taxonomy.
var ErrUnknownCategory = errors.New("unknown category")

// CategoryName identifies one of the fixed browse categories.
type CategoryName string

const (
	FreshVegetables CategoryName = "Fresh vegetables"
	Fruits          CategoryName = "Fruits"
	Rice            CategoryName = "Rice"
	ChickenEggs     CategoryName = "Chicken eggs"
	OutOfSeason     CategoryName = "Out-of-season products"
)

// CategoryNames lists the taxonomy in display order.
func CategoryNames() []CategoryName {
	return []CategoryName{FreshVegetables, Fruits, Rice, ChickenEggs, OutOfSeason}
}

// ParseCategoryName converts free text into a CategoryName.
func ParseCategoryName(s string) (CategoryName, error) {
	for _, name := range CategoryNames() {
		if string(name) == s {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c is part of the taxonomy.
func (c CategoryName) Valid() bool {
	_, err := ParseCategoryName(string(c))
	return err == nil
}

// Category is a browse category card.
type Category struct {
	Name        CategoryName `json:"name"`
	Emoji       string       `json:"emoji"`
	Description string       `json:"description"`
}

// CategoryProduct is a curated entry shown inside a category. It is a separate
// list from the featured products and carries no stock flag.
type CategoryProduct struct {
	Name          string          `json:"name"`
	LocalizedName string          `json:"localizedName"`
	Price         decimal.Decimal `json:"price"`
	Unit          string          `json:"unit"`
	Image         string          `json:"image"`
}
