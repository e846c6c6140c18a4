package shopping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/repository"
	"github.com/churrascometro/churrascometro/internal/util"
)

// ListStores returns every store with its prices.
func (s *Service) ListStores(ctx context.Context) ([]*models.Store, error) {
	return s.stores.List(ctx)
}

// GetStore retrieves a store by ID.
func (s *Service) GetStore(ctx context.Context, id string) (*models.Store, error) {
	return s.stores.GetByID(ctx, id)
}

func cleanPrices(prices map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(prices))
	for key, p := range prices {
		if p > 0 {
			out[key] = calculator.RoundCents(min(p, calculator.MaxPrice))
		}
	}
	return out
}

// AddStore creates a store. Names have 2 to 30 characters and are unique
// ignoring case. Non-positive prices are dropped.
func (s *Service) AddStore(ctx context.Context, name string, prices map[string]float64) (*models.Store, error) {
	name = calculator.SanitizeString(name)
	if n := utf8.RuneCountInString(name); n < calculator.MinStoreNameLen || n > calculator.MaxStoreNameLen {
		return nil, fmt.Errorf("%w: names have %d to %d characters",
			ErrInvalidName, calculator.MinStoreNameLen, calculator.MaxStoreNameLen)
	}

	store := &models.Store{
		ID:        util.PrefixedID("store"),
		Name:      name,
		Prices:    cleanPrices(prices),
		CreatedAt: s.clock.Now(),
	}

	err := s.stores.Create(ctx, nil, store)
	if errors.Is(err, repository.ErrDuplicateName) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateStore, name)
	}
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	slog.Info("store added", "store", store.ID, "name", store.Name, "prices", len(store.Prices))
	return store, nil
}

// SetStorePrices replaces the price table of a store.
func (s *Service) SetStorePrices(ctx context.Context, id string, prices map[string]float64) (*models.Store, error) {
	if err := s.stores.SetPrices(ctx, nil, id, cleanPrices(prices)); err != nil {
		return nil, fmt.Errorf("updating store prices: %w", err)
	}
	return s.stores.GetByID(ctx, id)
}

// SetStorePrice changes a single price of a store.
func (s *Service) SetStorePrice(ctx context.Context, id, key string, price float64) (*models.Store, error) {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store.Prices == nil {
		store.Prices = make(map[string]float64)
	}
	store.Prices[key] = price
	return s.SetStorePrices(ctx, id, store.Prices)
}

// DeleteStore removes a store.
func (s *Service) DeleteStore(ctx context.Context, id string) error {
	if err := s.stores.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("deleting store: %w", err)
	}
	slog.Info("store deleted", "store", id)
	return nil
}

// Compare prices the saved shopping list at every store, cheapest first.
// Items a store has no price for use the user's price or the catalog
// price.
func (s *Service) Compare(ctx context.Context) ([]calculator.StoreTotal, error) {
	lc, err := s.lastCalculation(ctx)
	if err != nil {
		return nil, err
	}
	stores, err := s.stores.List(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := s.prices.Overrides(ctx)
	if err != nil {
		return nil, err
	}

	tables := make([]calculator.StorePrices, len(stores))
	for i, st := range stores {
		tables[i] = st.PriceTable()
	}
	return calculator.Compare(calculator.CompareItems(lc.Items), tables, overrides), nil
}
