package calculator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ceilEpsilon absorbs float noise such as 390.00000000000006 before a
// ceiling is taken.
const ceilEpsilon = 1e-9

// RoundUp returns the next whole count for a quantity.
func RoundUp(v float64) float64 {
	return math.Ceil(v - ceilEpsilon)
}

// FormatQuantity renders a base-unit quantity for display. The output is
// parsed back by ParseQuantity, so the layout must stay stable.
func FormatQuantity(quantity float64, format Format) string {
	if format.Counted() {
		n := int(RoundUp(quantity))
		switch format {
		case FormatCan:
			return plural(n, "lata", "latas")
		case FormatBag:
			return plural(n, "saco", "sacos")
		default:
			return fmt.Sprintf("%d un", n)
		}
	}
	switch format {
	case FormatGrams:
		if quantity >= 1000 {
			return fmt.Sprintf("%.1f kg", quantity/1000)
		}
		return fmt.Sprintf("%d g", int(RoundUp(quantity)))
	case FormatKilograms:
		return fmt.Sprintf("%.1f kg", quantity)
	case FormatLiters:
		return fmt.Sprintf("%.1f L", quantity)
	default:
		return fmt.Sprintf("%d", int(RoundUp(quantity)))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

// Quantity is a parsed display quantity.
type Quantity struct {
	Amount float64
	Unit   string
}

var quantityPattern = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)\s*(.*?)\s*$`)

// ParseQuantity extracts the leading number and trailing unit from a
// formatted quantity. Both "." and "," are accepted as decimal separator.
func ParseQuantity(s string) (Quantity, error) {
	m := quantityPattern.FindStringSubmatch(s)
	if m == nil {
		return Quantity{}, fmt.Errorf("invalid quantity: %q", s)
	}
	amount, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return Quantity{Amount: amount, Unit: m[2]}, nil
}

// PricingAmount converts the quantity to the unit prices refer to: grams
// become kilograms, everything else is already in pricing units.
func (q Quantity) PricingAmount() float64 {
	if q.Unit == "g" {
		return q.Amount / 1000
	}
	return q.Amount
}

// FormatCurrency renders a value in reais, e.g. "R$ 206,77".
func FormatCurrency(v float64) string {
	return "R$ " + FormatDecimal(v)
}

// FormatDecimal renders a value with two decimals and a comma separator.
func FormatDecimal(v float64) string {
	return strings.Replace(decimal.NewFromFloat(v).StringFixed(2), ".", ",", 1)
}
