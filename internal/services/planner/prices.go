package planner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/util"
)

// PriceList returns every catalog item with its effective price, followed
// by the custom items.
func (s *Service) PriceList(ctx context.Context) ([]models.PriceEntry, error) {
	overrides, err := s.Overrides(ctx)
	if err != nil {
		return nil, err
	}
	custom, err := s.prices.ListCustomItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading custom items: %w", err)
	}

	entries := make([]models.PriceEntry, 0, len(calculator.Catalog())+len(custom))
	for _, def := range calculator.Catalog() {
		_, overridden := overrides.Price(def.Key)
		entries = append(entries, models.PriceEntry{
			Key:          def.Key,
			Label:        def.Label,
			Category:     models.PriceCategory(def.Category),
			Unit:         models.PriceUnit(def.Format.PricingUnit()),
			DefaultPrice: def.PricePerUnit,
			Price:        calculator.EffectivePrice(def.Key, overrides),
			Overridden:   overridden,
		})
	}
	for _, c := range custom {
		entries = append(entries, models.PriceEntry{
			Key:          c.Key,
			Label:        c.Label,
			Category:     c.Category,
			Unit:         c.Unit,
			DefaultPrice: c.Price,
			Price:        c.Price,
			Custom:       true,
		})
	}
	return entries, nil
}

// SetPrice changes the price of a catalog or custom item.
func (s *Service) SetPrice(ctx context.Context, key string, price float64) error {
	if !calculator.IsValidPrice(price) {
		return fmt.Errorf("%w: %.2f", ErrInvalidPrice, price)
	}
	price = calculator.RoundCents(price)

	if _, ok := calculator.Lookup(key); ok {
		if err := s.prices.SetPrice(ctx, nil, key, price); err != nil {
			return err
		}
		slog.Info("price updated", "item", key, "price", price)
		return nil
	}

	err := s.prices.UpdateCustomItemPrice(ctx, nil, key, price)
	if IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrUnknownItem, key)
	}
	if err != nil {
		return err
	}
	slog.Info("custom item price updated", "item", key, "price", price)
	return nil
}

// SetPriceText parses a typed price such as "R$ 1.234,56" and sets it.
func (s *Service) SetPriceText(ctx context.Context, key, text string) (float64, error) {
	price, err := calculator.ParsePrice(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, text)
	}
	if err := s.SetPrice(ctx, key, price); err != nil {
		return 0, err
	}
	return calculator.RoundCents(price), nil
}

// ResetPrice restores the catalog price of one item.
func (s *Service) ResetPrice(ctx context.Context, key string) error {
	err := s.prices.DeletePrice(ctx, nil, key)
	if IsNotFound(err) {
		return nil
	}
	return err
}

// ResetPrices restores every catalog price. Custom items are kept.
func (s *Service) ResetPrices(ctx context.Context) error {
	if err := s.prices.ResetPrices(ctx, nil); err != nil {
		return err
	}
	slog.Info("prices reset")
	return nil
}

// AddCustomItem creates a custom price list item.
func (s *Service) AddCustomItem(ctx context.Context, input CustomItemInput) (*models.CustomItem, error) {
	label := calculator.SanitizeString(input.Label)
	if !calculator.IsValidItemName(label) {
		return nil, fmt.Errorf("%w: item names have %d to %d characters",
			ErrInvalidName, calculator.MinItemNameLen, calculator.MaxItemNameLen)
	}
	if !calculator.IsValidPrice(input.Price) {
		return nil, fmt.Errorf("%w: %.2f", ErrInvalidPrice, input.Price)
	}
	unit := input.Unit
	if unit == "" {
		unit = models.PriceUnitPiece
	}

	item := &models.CustomItem{
		Key:      util.PrefixedID("item"),
		Label:    label,
		Price:    calculator.RoundCents(input.Price),
		Unit:     unit,
		Category: models.CategoryMyItems,
	}
	if err := s.prices.CreateCustomItem(ctx, nil, item); err != nil {
		return nil, fmt.Errorf("creating custom item: %w", err)
	}

	slog.Info("custom item added", "item", item.Key, "label", item.Label)
	return item, nil
}

// DeleteCustomItem removes a custom item.
func (s *Service) DeleteCustomItem(ctx context.Context, key string) error {
	if err := s.prices.DeleteCustomItem(ctx, nil, key); err != nil {
		return fmt.Errorf("deleting custom item: %w", err)
	}
	slog.Info("custom item deleted", "item", key)
	return nil
}
