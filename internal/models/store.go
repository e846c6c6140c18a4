package models

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/churrascometro/churrascometro/internal/calculator"
)

// Store is a market with its own price table for comparisons.
type Store struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Prices    map[string]float64 `json:"prices"`
	CreatedAt time.Time          `json:"created_at"`
}

// Validate checks if the store data is valid.
func (s *Store) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("id is required")
	}
	n := utf8.RuneCountInString(s.Name)
	if n < calculator.MinStoreNameLen || n > calculator.MaxStoreNameLen {
		return fmt.Errorf("name must have between %d and %d characters",
			calculator.MinStoreNameLen, calculator.MaxStoreNameLen)
	}
	for key, price := range s.Prices {
		if price < 0 {
			return fmt.Errorf("negative price for %s", key)
		}
	}
	return nil
}

// PriceTable converts the store for comparison.
func (s *Store) PriceTable() calculator.StorePrices {
	return calculator.StorePrices{ID: s.ID, Name: s.Name, Prices: s.Prices}
}
