// Package calculator computes barbecue shopping quantities and costs from
// guest counts. Everything here is a pure function of its arguments.
package calculator

import (
	"math"
)

// Duration is the expected length of the event.
type Duration string

const (
	DurationShort Duration = "short"
	DurationLong  Duration = "long"
)

// Valid returns true if the duration is a known value.
func (d Duration) Valid() bool {
	return d == DurationShort || d == DurationLong
}

// Multiplier scales every consumption quantity.
func (d Duration) Multiplier() float64 {
	if d == DurationLong {
		return 1.3
	}
	return 1.0
}

// Label returns the short display name.
func (d Duration) Label() string {
	if d == DurationLong {
		return "Longo"
	}
	return "Curto"
}

// Description returns the display hint for the duration.
func (d Duration) Description() string {
	if d == DurationLong {
		return "Mais de 4 horas"
	}
	return "Até 4 horas"
}

// Input holds the event parameters.
type Input struct {
	MeatAdults       int             `json:"meat_adults" yaml:"meat_adults" toml:"meat_adults"`
	VegetarianAdults int             `json:"vegetarian_adults" yaml:"vegetarian_adults" toml:"vegetarian_adults"`
	Children         int             `json:"children" yaml:"children" toml:"children"`
	BeerDrinkers     int             `json:"beer_drinkers" yaml:"beer_drinkers" toml:"beer_drinkers"`
	SodaDrinkers     int             `json:"soda_drinkers" yaml:"soda_drinkers" toml:"soda_drinkers"`
	Duration         Duration        `json:"duration" yaml:"duration" toml:"duration"`
	IncludeSides     bool            `json:"include_sides" yaml:"include_sides" toml:"include_sides"`
	SelectedMeats    map[string]bool `json:"selected_meats" yaml:"selected_meats" toml:"selected_meats"`
}

// DefaultInput returns an empty event with the default meat selection.
func DefaultInput() Input {
	return Input{
		Duration:      DurationShort,
		IncludeSides:  true,
		SelectedMeats: DefaultSelectedMeats(),
	}
}

// TotalAdults returns meat-eating plus vegetarian adults.
func (in Input) TotalAdults() int {
	return in.MeatAdults + in.VegetarianAdults
}

// TotalParticipants returns every guest including children.
func (in Input) TotalParticipants() int {
	return in.TotalAdults() + in.Children
}

// SelectedMeatCount counts selected catalog meats.
func (in Input) SelectedMeatCount() int {
	n := 0
	for _, key := range MeatKeys() {
		if in.SelectedMeats[key] {
			n++
		}
	}
	return n
}

// ClampDrinkers lowers drinker counts that exceed their ceiling after a
// guest count changed. Counts are never raised.
func ClampDrinkers(in Input) Input {
	if in.BeerDrinkers > in.TotalAdults() {
		in.BeerDrinkers = in.TotalAdults()
	}
	if in.SodaDrinkers > in.TotalParticipants() {
		in.SodaDrinkers = in.TotalParticipants()
	}
	return in
}

// PriceSource resolves a price override for an item key.
type PriceSource interface {
	Price(key string) (float64, bool)
}

// Overrides is a PriceSource backed by a map of custom prices.
type Overrides map[string]float64

// Price implements PriceSource.
func (o Overrides) Price(key string) (float64, bool) {
	p, ok := o[key]
	return p, ok
}

// EffectivePrice returns the override for key when positive, else the
// catalog default. Unknown keys without override price at 0.
func EffectivePrice(key string, prices PriceSource) float64 {
	if prices != nil {
		if p, ok := prices.Price(key); ok && p > 0 {
			return p
		}
	}
	if def, ok := Lookup(key); ok {
		return def.PricePerUnit
	}
	return 0
}

// ItemPrice prices a quantity given in the format's base unit.
func ItemPrice(quantity float64, format Format, pricePerUnit float64) float64 {
	switch {
	case pricePerUnit <= 0:
		return 0
	case format.Counted():
		return RoundUp(quantity) * pricePerUnit
	case format == FormatGrams:
		return (quantity / 1000) * pricePerUnit
	default:
		return quantity * pricePerUnit
	}
}

// CalculatedItem is one priced line of a result.
type CalculatedItem struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Format   Format  `json:"format"`
	Price    float64 `json:"price"`
}

// Display returns the formatted quantity.
func (c CalculatedItem) Display() string {
	return FormatQuantity(c.Quantity, c.Format)
}

// Section groups items of one category.
type Section struct {
	Category Category         `json:"category"`
	Title    string           `json:"title"`
	Icon     string           `json:"icon"`
	Items    []CalculatedItem `json:"items"`
}

// Totals holds result rollups.
type Totals struct {
	TotalMeat     float64 `json:"total_meat"`
	TotalBeer     float64 `json:"total_beer"`
	TotalSoda     float64 `json:"total_soda"`
	TotalCharcoal float64 `json:"total_charcoal"`
	TotalCost     float64 `json:"total_cost"`
}

// Participants holds guest counts of a result.
type Participants struct {
	Total    int `json:"total"`
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// Result is the outcome of a calculation.
type Result struct {
	Sections     []Section    `json:"sections"`
	Totals       Totals       `json:"totals"`
	Participants Participants `json:"participants"`
}

// Items returns every item across sections in order.
func (r Result) Items() []CalculatedItem {
	var out []CalculatedItem
	for _, s := range r.Sections {
		out = append(out, s.Items...)
	}
	return out
}

// Section returns the section for a category, if present.
func (r Result) Section(c Category) (Section, bool) {
	for _, s := range r.Sections {
		if s.Category == c {
			return s, true
		}
	}
	return Section{}, false
}

// Item finds an item by key across sections.
func (r Result) Item(key string) (CalculatedItem, bool) {
	for _, s := range r.Sections {
		for _, it := range s.Items {
			if it.Key == key {
				return it, true
			}
		}
	}
	return CalculatedItem{}, false
}

// Calculate computes quantities and prices for an event. A nil prices
// source uses catalog defaults.
func Calculate(in Input, prices PriceSource) Result {
	// Without guests nothing is bought, not even the charcoal floor.
	if in.TotalParticipants() <= 0 {
		return Result{Participants: Participants{
			Total:    in.TotalParticipants(),
			Adults:   in.TotalAdults(),
			Children: in.Children,
		}}
	}

	multiplier := in.Duration.Multiplier()
	totalAdults := float64(in.TotalAdults())
	children := float64(in.Children)
	meatAdults := float64(in.MeatAdults)

	// Total meat is sized for a four-type mix regardless of catalog size.
	meatMultiplier := 1.0
	if n := in.SelectedMeatCount(); n > 0 {
		meatMultiplier = 4 / float64(n)
	}

	priced := func(def ItemDefinition, quantity float64) CalculatedItem {
		return CalculatedItem{
			Key:      def.Key,
			Label:    def.Label,
			Quantity: quantity,
			Format:   def.Format,
			Price:    ItemPrice(quantity, def.Format, EffectivePrice(def.Key, prices)),
		}
	}

	var meats []CalculatedItem
	for _, def := range ItemsByCategory(CategoryMeat) {
		if !in.SelectedMeats[def.Key] {
			continue
		}
		q := (def.PerAdult*meatAdults + def.PerChild*children) * multiplier * meatMultiplier
		meats = append(meats, priced(def, q))
	}

	var vegetarian []CalculatedItem
	for _, def := range ItemsByCategory(CategoryVegetarian) {
		q := def.PerAdult * float64(in.VegetarianAdults) * multiplier
		vegetarian = append(vegetarian, priced(def, q))
	}

	var sides []CalculatedItem
	if in.IncludeSides {
		for _, def := range ItemsByCategory(CategorySide) {
			q := (def.PerAdult*totalAdults + def.PerChild*children) * multiplier
			sides = append(sides, priced(def, q))
		}
	}

	var drinks []CalculatedItem
	for _, def := range ItemsByCategory(CategoryDrink) {
		var q float64
		switch def.Key {
		case KeyBeer:
			q = def.PerAdult * float64(in.BeerDrinkers) * multiplier
		case KeySoda:
			q = def.PerAdult * float64(in.SodaDrinkers) * multiplier
		default:
			q = (def.PerAdult*totalAdults + def.PerChild*children) * multiplier
		}
		drinks = append(drinks, priced(def, q))
	}

	meatEaters := meatAdults + children*0.5
	var extras []CalculatedItem
	for _, def := range ItemsByCategory(CategoryExtra) {
		var q float64
		switch def.Key {
		case KeyCharcoal:
			q = math.Max(2, meatEaters*0.5) * multiplier
		case KeySalt:
			q = math.Max(0.5, meatEaters*0.1) * multiplier
		case KeyIce:
			q = float64(in.TotalParticipants()) * 1 * multiplier
		default:
			q = def.PerAdult * totalAdults * multiplier
		}
		extras = append(extras, priced(def, q))
	}

	var result Result
	add := func(c Category, items []CalculatedItem) {
		var kept []CalculatedItem
		for _, it := range items {
			if it.Quantity > 0 {
				kept = append(kept, it)
			}
		}
		if len(kept) == 0 {
			return
		}
		result.Sections = append(result.Sections, Section{
			Category: c,
			Title:    c.Title(),
			Icon:     c.Icon(),
			Items:    kept,
		})
	}

	add(CategoryMeat, meats)
	if in.VegetarianAdults > 0 {
		add(CategoryVegetarian, vegetarian)
	}
	if in.IncludeSides {
		add(CategorySide, sides)
	}
	add(CategoryDrink, drinks)
	add(CategoryExtra, extras)

	for _, s := range result.Sections {
		for _, it := range s.Items {
			result.Totals.TotalCost += it.Price
			switch {
			case s.Category == CategoryMeat:
				result.Totals.TotalMeat += it.Quantity
			case it.Key == KeyBeer:
				result.Totals.TotalBeer = it.Quantity
			case it.Key == KeySoda:
				result.Totals.TotalSoda = it.Quantity
			case it.Key == KeyCharcoal:
				result.Totals.TotalCharcoal = it.Quantity
			}
		}
	}

	result.Participants = Participants{
		Total:    in.TotalParticipants(),
		Adults:   in.TotalAdults(),
		Children: in.Children,
	}
	return result
}

// CostPerAdult divides the total cost among adults, 0 without adults.
func CostPerAdult(r Result) float64 {
	if r.Participants.Adults <= 0 {
		return 0
	}
	return r.Totals.TotalCost / float64(r.Participants.Adults)
}
