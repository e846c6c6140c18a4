package calculator

import "math"

// Per-guest cost estimates used by the budget calculator.
const (
	CostPerMeatAdult   = 45.0
	CostPerVegetarian  = 35.0
	CostPerChild       = 25.0
	CostPerBeerDrinker = 15.0

	beerDrinkerRatio = 0.7
	sidesShare       = 0.15
	extrasShare      = 0.10
)

// ReverseInput describes a budget and the guest mix to plan for.
type ReverseInput struct {
	Budget            float64 `json:"budget"`
	IncludeChildren   bool    `json:"include_children"`
	ChildPercent      int     `json:"child_percent"`
	IncludeVegetarian bool    `json:"include_vegetarian"`
	VegetarianPercent int     `json:"vegetarian_percent"`
	IncludeBeer       bool    `json:"include_beer"`
}

// DefaultReverseInput returns the budget form defaults.
func DefaultReverseInput() ReverseInput {
	return ReverseInput{
		ChildPercent:      20,
		VegetarianPercent: 20,
		IncludeBeer:       true,
	}
}

// CostBreakdown splits an estimated cost by concern.
type CostBreakdown struct {
	Meat   float64 `json:"meat"`
	Drinks float64 `json:"drinks"`
	Sides  float64 `json:"sides"`
	Extras float64 `json:"extras"`
}

// ReverseResult is the guest mix a budget affords.
type ReverseResult struct {
	TotalPeople      int           `json:"total_people"`
	MeatAdults       int           `json:"meat_adults"`
	VegetarianAdults int           `json:"vegetarian_adults"`
	Children         int           `json:"children"`
	BeerDrinkers     int           `json:"beer_drinkers"`
	EstimatedCost    float64       `json:"estimated_cost"`
	Breakdown        CostBreakdown `json:"breakdown"`
}

// ToInput converts the suggestion into calculator input with the default
// meat selection.
func (r ReverseResult) ToInput() Input {
	in := DefaultInput()
	in.MeatAdults = r.MeatAdults
	in.VegetarianAdults = r.VegetarianAdults
	in.Children = r.Children
	in.BeerDrinkers = r.BeerDrinkers
	return in
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Reverse estimates how many guests a budget covers. It returns false for
// a non-positive budget.
func Reverse(in ReverseInput) (ReverseResult, bool) {
	if in.Budget <= 0 || math.IsNaN(in.Budget) || math.IsInf(in.Budget, 0) {
		return ReverseResult{}, false
	}

	avg := CostPerMeatAdult
	if in.IncludeBeer {
		avg += CostPerBeerDrinker * beerDrinkerRatio
	}

	total := int(math.Floor(in.Budget / avg))
	meat := total
	veg := 0
	children := 0

	if in.IncludeChildren {
		children = int(math.Floor(float64(total) * float64(clampPercent(in.ChildPercent)) / 100))
		meat = total - children
		// children are cheaper, so the savings buy extra adults
		extra := int(math.Floor(float64(children) * (CostPerMeatAdult - CostPerChild) / avg))
		total += extra
		meat += extra
	}

	if in.IncludeVegetarian && meat > 0 {
		veg = int(math.Floor(float64(meat) * float64(clampPercent(in.VegetarianPercent)) / 100))
		meat -= veg
		extra := int(math.Floor(float64(veg) * (CostPerMeatAdult - CostPerVegetarian) / avg))
		if extra > 0 {
			meat += extra
			total += extra
		}
	}

	beer := 0
	if in.IncludeBeer {
		beer = int(math.Floor(float64(meat+veg) * beerDrinkerRatio))
	}

	meatCost := float64(meat) * CostPerMeatAdult
	vegCost := float64(veg) * CostPerVegetarian
	childCost := float64(children) * CostPerChild
	beerCost := float64(beer) * CostPerBeerDrinker
	estimated := meatCost + vegCost + childCost + beerCost

	return ReverseResult{
		TotalPeople:      meat + veg + children,
		MeatAdults:       meat,
		VegetarianAdults: veg,
		Children:         children,
		BeerDrinkers:     beer,
		EstimatedCost:    estimated,
		Breakdown: CostBreakdown{
			Meat:   meatCost + vegCost,
			Drinks: beerCost,
			Sides:  estimated * sidesShare,
			Extras: estimated * extrasShare,
		},
	}, true
}
