package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CompareItem is a shopping list line in pricing units.
type CompareItem struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// CompareItems re-parses persisted list items. Lines whose quantity cannot
// be parsed or is not positive are dropped.
func CompareItems(items []ListItem) []CompareItem {
	var out []CompareItem
	for _, it := range items {
		q, err := ParseQuantity(it.Quantity)
		if err != nil || q.Amount <= 0 {
			continue
		}
		unit := q.Unit
		if unit == "g" {
			unit = "kg"
		}
		out = append(out, CompareItem{
			Key:    it.Key,
			Label:  it.Label,
			Amount: q.PricingAmount(),
			Unit:   unit,
		})
	}
	return out
}

// StorePrices is a store's price table.
type StorePrices struct {
	ID     string
	Name   string
	Prices map[string]float64
}

// StoreTotal is a store's cost for a shopping list.
type StoreTotal struct {
	StoreID      string  `json:"store_id"`
	StoreName    string  `json:"store_name"`
	Total        float64 `json:"total"`
	HasAllPrices bool    `json:"has_all_prices"`
	Cheapest     bool    `json:"cheapest"`
	Savings      float64 `json:"savings"`
}

// Compare totals the list at every store, cheapest first. Items a store
// has no price for use the fallback source.
func Compare(items []CompareItem, stores []StorePrices, fallback PriceSource) []StoreTotal {
	out := make([]StoreTotal, 0, len(stores))
	for _, s := range stores {
		total := decimal.Zero
		complete := true
		for _, it := range items {
			price, ok := s.Prices[it.Key]
			if !ok {
				price = EffectivePrice(it.Key, fallback)
			}
			if price > 0 {
				total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(it.Amount)))
			} else {
				complete = false
			}
		}
		out = append(out, StoreTotal{
			StoreID:      s.ID,
			StoreName:    s.Name,
			Total:        total.Round(2).InexactFloat64(),
			HasAllPrices: complete,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total < out[j].Total
	})

	if len(out) > 0 {
		out[0].Cheapest = true
		cheapest := decimal.NewFromFloat(out[0].Total)
		for i := range out {
			out[i].Savings = decimal.NewFromFloat(out[i].Total).Sub(cheapest).InexactFloat64()
		}
	}
	return out
}
