package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
)

// FixtureInput returns a ten-guest event with the default meats.
func FixtureInput(overrides ...func(*calculator.Input)) calculator.Input {
	in := calculator.DefaultInput()
	in.MeatAdults = 6
	in.VegetarianAdults = 2
	in.Children = 2
	in.BeerDrinkers = 4
	in.SodaDrinkers = 4

	for _, override := range overrides {
		override(&in)
	}
	return in
}

// FixtureProfile creates a custom profile with sensible defaults.
func FixtureProfile(overrides ...func(*models.Profile)) *models.Profile {
	id := uuid.New().String()
	p := &models.Profile{
		ID:          "custom-" + id,
		Name:        "Perfil " + id[:8],
		Icon:        models.CustomProfileIcon,
		Description: "10 pessoas",
		Config:      FixtureInput(),
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	for _, override := range overrides {
		override(p)
	}
	return p
}

// FixtureEvent creates a saved event with sensible defaults.
func FixtureEvent(overrides ...func(*models.SavedEvent)) *models.SavedEvent {
	id := uuid.New().String()
	e := &models.SavedEvent{
		ID:        id,
		Name:      "Churrasco " + id[:8],
		Date:      time.Now().UTC().Truncate(time.Second),
		Config:    FixtureInput(),
		TotalCost: 512.3,
	}

	for _, override := range overrides {
		override(e)
	}
	return e
}

// FixtureCustomItem creates a custom price list item.
func FixtureCustomItem(overrides ...func(*models.CustomItem)) *models.CustomItem {
	id := uuid.New().String()
	c := &models.CustomItem{
		Key:      "custom_" + id[:8],
		Label:    "Pão de queijo",
		Price:    19.9,
		Unit:     models.PriceUnitKg,
		Category: models.CategoryMyItems,
	}

	for _, override := range overrides {
		override(c)
	}
	return c
}

// FixtureStore creates a store with a couple of prices.
func FixtureStore(overrides ...func(*models.Store)) *models.Store {
	id := uuid.New().String()
	s := &models.Store{
		ID:   id,
		Name: "Mercado " + id[:6],
		Prices: map[string]float64{
			"picanha": 79.9,
			"cerveja": 3.2,
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	for _, override := range overrides {
		override(s)
	}
	return s
}

// FixtureLastCalculation returns the shopping list for FixtureInput at
// catalog prices.
func FixtureLastCalculation() *models.LastCalculation {
	r := calculator.Calculate(FixtureInput(), nil)
	lc := &models.LastCalculation{
		Items: calculator.Flatten(r),
		Date:  time.Now().UTC().Truncate(time.Second),
	}
	lc.Recompute()
	return lc
}
