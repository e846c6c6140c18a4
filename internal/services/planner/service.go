// Package planner provides the event planning operations: calculation with
// the user's prices, saved events, profiles, price management and the
// budget calculator.
package planner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/database"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/repository"
	"github.com/churrascometro/churrascometro/internal/util"
)

// Service provides event planning operations.
type Service struct {
	db           *sql.DB
	prices       *repository.PriceRepository
	profiles     *repository.ProfileRepository
	events       *repository.EventRepository
	calculations *repository.CalculationRepository
	clock        util.Clock
}

// NewService creates a new planner service.
func NewService(db *sql.DB) *Service {
	return &Service{
		db:           db,
		prices:       repository.NewPriceRepository(db),
		profiles:     repository.NewProfileRepository(db),
		events:       repository.NewEventRepository(db),
		calculations: repository.NewCalculationRepository(db),
		clock:        util.SystemClock{},
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(c util.Clock) *Service {
	s.clock = c
	return s
}

// ============================================================================
// CALCULATION
// ============================================================================

// Overrides returns the user's price overrides.
func (s *Service) Overrides(ctx context.Context) (calculator.Overrides, error) {
	o, err := s.prices.Overrides(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading prices: %w", err)
	}
	return o, nil
}

func checkInput(in calculator.Input) error {
	if err := models.ValidateCounts(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for _, n := range []int{in.MeatAdults, in.VegetarianAdults, in.Children, in.BeerDrinkers, in.SodaDrinkers} {
		if n > calculator.MaxQuantity {
			return fmt.Errorf("%w: counts are limited to %d", ErrInvalidInput, calculator.MaxQuantity)
		}
	}
	if in.Duration != "" && !in.Duration.Valid() {
		return fmt.Errorf("%w: invalid duration %q", ErrInvalidInput, in.Duration)
	}
	return nil
}

func normalize(in calculator.Input) calculator.Input {
	if in.Duration == "" {
		in.Duration = calculator.DurationShort
	}
	if in.SelectedMeats == nil {
		in.SelectedMeats = map[string]bool{}
	}
	return calculator.ClampDrinkers(in)
}

// Calculate runs the calculator at the user's prices. Drinker counts above
// their ceilings are clamped first.
func (s *Service) Calculate(ctx context.Context, in calculator.Input) (calculator.Result, error) {
	if err := checkInput(in); err != nil {
		return calculator.Result{}, err
	}
	overrides, err := s.Overrides(ctx)
	if err != nil {
		return calculator.Result{}, err
	}
	return calculator.Calculate(normalize(in), overrides), nil
}

// ============================================================================
// SAVED EVENTS
// ============================================================================

// SaveEvent stores the calculation as the current shopping list, resets the
// checklist and appends the event to the history. A blank name becomes
// "Churrasco <date>".
func (s *Service) SaveEvent(ctx context.Context, name string, in calculator.Input) (*SavedEventResult, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	if in.TotalParticipants() <= 0 {
		return nil, ErrNoGuests
	}

	in = normalize(in)
	now := s.clock.Now()
	name = calculator.SanitizeString(name)
	if name == "" {
		name = "Churrasco " + util.FormatDate(now)
	}

	overrides, err := s.Overrides(ctx)
	if err != nil {
		return nil, err
	}
	result := calculator.Calculate(in, overrides)

	last := &models.LastCalculation{Items: calculator.Flatten(result), Date: now}
	last.Recompute()

	event := &models.SavedEvent{
		ID:        util.NewID(),
		Name:      name,
		Date:      now,
		Config:    in,
		TotalCost: result.Totals.TotalCost,
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.calculations.SaveLast(ctx, tx, last); err != nil {
			return err
		}
		if err := s.calculations.ClearChecks(ctx, tx); err != nil {
			return err
		}
		if err := s.events.Create(ctx, tx, event); err != nil {
			return err
		}
		if _, err := s.events.Prune(ctx, tx, models.MaxSavedEvents); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("saving event: %w", err)
	}

	slog.Info("event saved", "event", event.ID, "guests", in.TotalParticipants(), "total", result.Totals.TotalCost)
	return &SavedEventResult{Event: event, Result: result}, nil
}

// ListHistory returns saved events newest first.
func (s *Service) ListHistory(ctx context.Context, page models.Pagination) (*models.EventList, error) {
	return s.events.List(ctx, page)
}

// GetHistory retrieves one saved event.
func (s *Service) GetHistory(ctx context.Context, id string) (*models.SavedEvent, error) {
	return s.events.GetByID(ctx, id)
}

// ReloadHistory returns the configuration of a saved event so it can be
// loaded into the calculator.
func (s *Service) ReloadHistory(ctx context.Context, id string) (calculator.Input, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return calculator.Input{}, err
	}
	return normalize(e.Config), nil
}

// DeleteHistory removes one saved event.
func (s *Service) DeleteHistory(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	slog.Info("event deleted", "event", id)
	return nil
}

// ClearHistory removes every saved event.
func (s *Service) ClearHistory(ctx context.Context) error {
	if err := s.events.DeleteAll(ctx, nil); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	slog.Info("history cleared")
	return nil
}

// ============================================================================
// BUDGET
// ============================================================================

// Budget suggests a guest split for the budget and evaluates it at the
// user's prices.
func (s *Service) Budget(ctx context.Context, in calculator.ReverseInput) (*BudgetResult, error) {
	suggestion, ok := calculator.Reverse(in)
	if !ok {
		return nil, ErrInvalidBudget
	}

	input := suggestion.ToInput()
	result, err := s.Calculate(ctx, input)
	if err != nil {
		return nil, err
	}
	return &BudgetResult{Suggestion: suggestion, Input: input, Result: result}, nil
}

// IsNotFound reports whether err means a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

func validName(name string) (string, error) {
	name = calculator.SanitizeString(name)
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	return name, nil
}
