package models

import (
	"fmt"

	"github.com/churrascometro/churrascometro/internal/calculator"
)

// PriceUnit is the unit a custom item is sold by.
type PriceUnit string

const (
	PriceUnitKg    PriceUnit = "kg"
	PriceUnitPiece PriceUnit = "un"
	PriceUnitLiter PriceUnit = "L"
	PriceUnitPack  PriceUnit = "pacote"
	PriceUnitBox   PriceUnit = "caixa"
)

// CategoryMyItems is the price list heading for custom items.
const CategoryMyItems = "📦 Meus Itens"

// PriceUnits returns the units offered for custom items.
func PriceUnits() []PriceUnit {
	return []PriceUnit{PriceUnitKg, PriceUnitPiece, PriceUnitLiter, PriceUnitPack, PriceUnitBox}
}

// Valid returns true if the unit is one of the offered units.
func (u PriceUnit) Valid() bool {
	for _, v := range PriceUnits() {
		if u == v {
			return true
		}
	}
	return false
}

// PriceCategories returns the price list group headings.
func PriceCategories() []string {
	out := make([]string, 0, len(calculator.Categories())+1)
	for _, c := range calculator.Categories() {
		out = append(out, PriceCategory(c))
	}
	return append(out, CategoryMyItems)
}

// PriceCategory returns the price list heading for a catalog category.
func PriceCategory(c calculator.Category) string {
	switch c {
	case calculator.CategoryVegetarian:
		return c.Emoji() + " Vegetariano"
	default:
		return c.Emoji() + " " + c.Title()
	}
}

// CustomItem is a user-defined price list entry.
type CustomItem struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Price    float64   `json:"price"`
	Unit     PriceUnit `json:"unit"`
	Category string    `json:"category"`
}

// Validate checks if the custom item data is valid.
func (c *CustomItem) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("key is required")
	}
	if !calculator.IsValidItemName(c.Label) {
		return fmt.Errorf("label must have between %d and %d characters",
			calculator.MinItemNameLen, calculator.MaxItemNameLen)
	}
	if !calculator.IsValidPrice(c.Price) {
		return fmt.Errorf("invalid price: %.2f", c.Price)
	}
	if !c.Unit.Valid() {
		return fmt.Errorf("invalid unit: %s", c.Unit)
	}
	return nil
}

// PriceEntry is one row of the effective price list.
type PriceEntry struct {
	Key          string    `json:"key"`
	Label        string    `json:"label"`
	Category     string    `json:"category"`
	Unit         PriceUnit `json:"unit"`
	DefaultPrice float64   `json:"default_price"`
	Price        float64   `json:"price"`
	Custom       bool      `json:"custom"`
	Overridden   bool      `json:"overridden"`
}
