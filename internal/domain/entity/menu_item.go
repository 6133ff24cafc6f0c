package entity

import (
	"github.com/shopspring/decimal"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
)

// MenuItem is a sellable dish or drink. Items are immutable once the catalog
// is loaded; identity is the ID.
type MenuItem struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category enum.Category   `json:"category"`
}

// DefaultMenu is the catalog served when no other source is configured.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{ID: 1, Name: "Rad Na Pork", Price: decimal.NewFromInt(60), Category: enum.CategoryMainDishes},
		{ID: 2, Name: "Rad Na Chicken", Price: decimal.NewFromInt(60), Category: enum.CategoryMainDishes},
		{ID: 3, Name: "Fried Egg", Price: decimal.NewFromInt(15), Category: enum.CategorySideDishes},
		{ID: 4, Name: "Fried Rice Pork", Price: decimal.NewFromInt(55), Category: enum.CategoryMainDishes},
		{ID: 5, Name: "Fried Rice Beef", Price: decimal.NewFromInt(65), Category: enum.CategoryMainDishes},
		{ID: 6, Name: "Water", Price: decimal.NewFromInt(10), Category: enum.CategoryBeverages},
		{ID: 7, Name: "Soft Drink", Price: decimal.NewFromInt(20), Category: enum.CategoryBeverages},
	}
}
