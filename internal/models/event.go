package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/churrascometro/churrascometro/internal/calculator"
)

// MaxSavedEvents is how many saved events the history keeps.
const MaxSavedEvents = 10

// SavedEvent is a history entry for a barbecue that was saved.
type SavedEvent struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Date      time.Time        `json:"date"`
	Config    calculator.Input `json:"config"`
	TotalCost float64          `json:"total_cost"`
}

// Validate checks if the saved event data is valid.
func (e *SavedEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if e.TotalCost < 0 {
		return fmt.Errorf("total_cost cannot be negative")
	}
	return ValidateCounts(e.Config)
}

// EventList represents a paginated list of saved events.
type EventList struct {
	Events     []*SavedEvent `json:"events"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
}

// LastCalculation is the shopping list snapshot the checklist and the
// store comparison work from.
type LastCalculation struct {
	Items     []calculator.ListItem `json:"items"`
	TotalCost float64               `json:"total_cost"`
	Date      time.Time             `json:"date"`
}

// Recompute sets TotalCost to the sum of item prices.
func (l *LastCalculation) Recompute() {
	total := 0.0
	for _, it := range l.Items {
		total += it.Price
	}
	l.TotalCost = total
}

// Without returns a copy with the item removed and the total recomputed.
func (l *LastCalculation) Without(key string) *LastCalculation {
	out := &LastCalculation{Date: l.Date}
	for _, it := range l.Items {
		if it.Key != key {
			out.Items = append(out.Items, it)
		}
	}
	out.Recompute()
	return out
}

// ChecklistItem is a shopping list line with its purchase state.
type ChecklistItem struct {
	calculator.ListItem
	Checked bool   `json:"checked"`
	Aisle   string `json:"aisle"`
}
