package planner

import (
	"errors"

	"github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
)

var (
	// ErrNoGuests is returned when saving an event or profile without guests.
	ErrNoGuests = errors.New("event has no guests")

	// ErrInvalidName is returned for blank or out-of-range names.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidInput is returned for negative or oversized guest counts.
	ErrInvalidInput = errors.New("invalid event input")

	// ErrInvalidPrice is returned for prices outside (0, MaxPrice].
	ErrInvalidPrice = errors.New("invalid price")

	// ErrUnknownItem is returned for keys outside the catalog and the
	// custom items.
	ErrUnknownItem = errors.New("unknown item")

	// ErrInvalidBudget is returned when a budget is not positive.
	ErrInvalidBudget = errors.New("budget must be positive")
)

// SavedEventResult is what SaveEvent stored.
type SavedEventResult struct {
	Event  *models.SavedEvent `json:"event"`
	Result calculator.Result  `json:"result"`
}

// BudgetResult pairs the suggested guest split with the calculation it
// produces at current prices.
type BudgetResult struct {
	Suggestion calculator.ReverseResult `json:"suggestion"`
	Input      calculator.Input         `json:"input"`
	Result     calculator.Result        `json:"result"`
}

// CustomItemInput contains data for creating a custom price list item.
type CustomItemInput struct {
	Label string           `json:"label"`
	Price float64          `json:"price"`
	Unit  models.PriceUnit `json:"unit"`
}

// profileDocument is the YAML layout of exported profiles.
type profileDocument struct {
	Version  int              `yaml:"version"`
	Profiles []models.Profile `yaml:"profiles"`
}

const profileDocumentVersion = 1
