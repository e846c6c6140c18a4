// Package shopping works on the saved shopping list: the purchase
// checklist, the share message and the store price comparison.
package shopping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/database"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/repository"
	"github.com/churrascometro/churrascometro/internal/util"
)

var (
	// ErrNoShoppingList is returned before any event was saved.
	ErrNoShoppingList = errors.New("no shopping list saved")

	// ErrUnknownItem is returned for keys that are not on the list.
	ErrUnknownItem = errors.New("item is not on the shopping list")

	// ErrDuplicateStore is returned when a store name is taken.
	ErrDuplicateStore = errors.New("store already exists")

	// ErrInvalidName is returned for store names outside the allowed length.
	ErrInvalidName = errors.New("invalid store name")
)

// Mode selects how the checklist is grouped.
type Mode string

const (
	// ModeRecipe groups items by calculator section.
	ModeRecipe Mode = "recipe"
	// ModeMarket groups items by market aisle.
	ModeMarket Mode = "market"
)

// Valid returns true if the mode is known.
func (m Mode) Valid() bool {
	return m == ModeRecipe || m == ModeMarket
}

// Group is one heading of the checklist.
type Group struct {
	Title string                 `json:"title"`
	Items []models.ChecklistItem `json:"items"`
}

// Checklist is the shopping list with purchase state.
type Checklist struct {
	Mode          Mode      `json:"mode"`
	Groups        []Group   `json:"groups"`
	Total         int       `json:"total"`
	Checked       int       `json:"checked"`
	Progress      float64   `json:"progress"`
	TotalCost     float64   `json:"total_cost"`
	RemainingCost float64   `json:"remaining_cost"`
	Date          time.Time `json:"date"`
}

// Items returns every item in group order.
func (c *Checklist) Items() []models.ChecklistItem {
	var out []models.ChecklistItem
	for _, g := range c.Groups {
		out = append(out, g.Items...)
	}
	return out
}

// Service provides checklist and store operations.
type Service struct {
	db           *sql.DB
	calculations *repository.CalculationRepository
	stores       *repository.StoreRepository
	prices       *repository.PriceRepository
	clock        util.Clock
}

// NewService creates a new shopping service.
func NewService(db *sql.DB) *Service {
	return &Service{
		db:           db,
		calculations: repository.NewCalculationRepository(db),
		stores:       repository.NewStoreRepository(db),
		prices:       repository.NewPriceRepository(db),
		clock:        util.SystemClock{},
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(c util.Clock) *Service {
	s.clock = c
	return s
}

func (s *Service) lastCalculation(ctx context.Context) (*models.LastCalculation, error) {
	lc, err := s.calculations.GetLast(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoShoppingList
	}
	if err != nil {
		return nil, fmt.Errorf("loading shopping list: %w", err)
	}
	return lc, nil
}

// Checklist returns the saved list grouped by mode with progress and the
// cost of what is still unchecked.
func (s *Service) Checklist(ctx context.Context, mode Mode) (*Checklist, error) {
	if !mode.Valid() {
		mode = ModeRecipe
	}
	lc, err := s.lastCalculation(ctx)
	if err != nil {
		return nil, err
	}
	checked, err := s.calculations.CheckedKeys(ctx)
	if err != nil {
		return nil, err
	}

	out := &Checklist{
		Mode:      mode,
		Total:     len(lc.Items),
		TotalCost: lc.TotalCost,
		Date:      lc.Date,
	}

	groups := make(map[string][]models.ChecklistItem)
	var order []string
	for _, it := range lc.Items {
		item := models.ChecklistItem{
			ListItem: it,
			Checked:  checked[it.Key],
			Aisle:    calculator.Aisle(it.Key),
		}
		if item.Checked {
			out.Checked++
		} else {
			out.RemainingCost += it.Price
		}

		title := it.Section
		if mode == ModeMarket {
			title = item.Aisle
		}
		if _, ok := groups[title]; !ok {
			order = append(order, title)
		}
		groups[title] = append(groups[title], item)
	}

	if mode == ModeMarket {
		order = order[:0]
		for _, aisle := range calculator.AisleOrder() {
			if _, ok := groups[aisle]; ok {
				order = append(order, aisle)
			}
		}
	}
	for _, title := range order {
		out.Groups = append(out.Groups, Group{Title: title, Items: groups[title]})
	}

	if out.Total > 0 {
		out.Progress = float64(out.Checked) / float64(out.Total) * 100
	}
	out.RemainingCost = calculator.RoundCents(out.RemainingCost)
	return out, nil
}

func (s *Service) requireItem(ctx context.Context, key string) (*models.LastCalculation, error) {
	lc, err := s.lastCalculation(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range lc.Items {
		if it.Key == key {
			return lc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownItem, key)
}

// Toggle flips the purchase state of an item and returns the new state.
func (s *Service) Toggle(ctx context.Context, key string) (bool, error) {
	if _, err := s.requireItem(ctx, key); err != nil {
		return false, err
	}
	checked, err := s.calculations.CheckedKeys(ctx)
	if err != nil {
		return false, err
	}

	state := !checked[key]
	if err := s.calculations.SetChecked(ctx, nil, key, state); err != nil {
		return false, err
	}
	slog.Debug("checklist item toggled", "item", key, "checked", state)
	return state, nil
}

// ClearChecks unchecks every item.
func (s *Service) ClearChecks(ctx context.Context) error {
	return s.calculations.ClearChecks(ctx, nil)
}

// RemoveItem drops an item from the saved list, recomputes the total and
// stamps the list with the current time.
func (s *Service) RemoveItem(ctx context.Context, key string) (*models.LastCalculation, error) {
	lc, err := s.requireItem(ctx, key)
	if err != nil {
		return nil, err
	}

	updated := lc.Without(key)
	updated.Date = s.clock.Now()

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.calculations.SaveLast(ctx, tx, updated); err != nil {
			return err
		}
		return s.calculations.RemoveCheck(ctx, tx, key)
	})
	if err != nil {
		return nil, fmt.Errorf("removing item: %w", err)
	}

	slog.Info("item removed from shopping list", "item", key, "total", updated.TotalCost)
	return updated, nil
}

// ShareText builds the message listing what is still to be bought.
func (s *Service) ShareText(ctx context.Context) (string, error) {
	list, err := s.Checklist(ctx, ModeRecipe)
	if err != nil {
		return "", err
	}
	return FormatShareText(list), nil
}

// FormatShareText renders a checklist as a chat message.
func FormatShareText(list *Checklist) string {
	var b strings.Builder
	b.WriteString("🛒 *LISTA DE COMPRAS - CHURRASCO*\n\n")
	fmt.Fprintf(&b, "✅ %d/%d itens comprados\n\n", list.Checked, list.Total)

	if list.Checked < list.Total {
		b.WriteString("*Faltando comprar:*\n")
		for _, it := range list.Items() {
			if !it.Checked {
				fmt.Fprintf(&b, "⬜ %s: %s\n", it.Label, it.Quantity)
			}
		}
	} else {
		b.WriteString("🎉 Tudo comprado! Bora churrasquear!\n")
	}

	b.WriteString("\n📲 Churrascômetro")
	return b.String()
}
