package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory groups the menu into sections
type ProductCategory string

const (
	CategoryBurgers ProductCategory = "burgers"
	CategorySides   ProductCategory = "sides"
	CategoryDrinks  ProductCategory = "drinks"
)

// Categories lists menu sections in display order
var Categories = []ProductCategory{CategoryBurgers, CategorySides, CategoryDrinks}

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryBurgers, CategorySides, CategoryDrinks:
		return true
	}
	return false
}

type MenuProduct struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	ShortDescription string          `json:"short_description"`
	LongDescription  string          `json:"long_description"`
	Price            decimal.Decimal `json:"price"`
	Category         ProductCategory `json:"category"`
	ImageRef         string          `json:"image_ref"`
	Ingredients      []string        `json:"ingredients"`
	Allergens        []string        `json:"allergens"`
	Calories         int             `json:"calories"`
	PrepTime         int             `json:"prep_time"` // minutes
	Available        bool            `json:"available"`
	CreatedAt        time.Time       `json:"created_at"`
	ModifiedAt       time.Time       `json:"modified_at"`
}
