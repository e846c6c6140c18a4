package calculator

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Limits applied to user-entered values.
const (
	MaxPrice        = 99999.0
	MaxTextLength   = 100
	MaxQuantity     = 999
	MinItemNameLen  = 2
	MaxItemNameLen  = 50
	MinStoreNameLen = 2
	MaxStoreNameLen = 30
)

// SanitizeString trims the input, drops angle brackets and control
// characters, and caps the length.
func SanitizeString(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if r == '<' || r == '>' || unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	if utf8.RuneCountInString(out) > MaxTextLength {
		out = string([]rune(out)[:MaxTextLength])
	}
	return out
}

// SanitizePrice parses a user-typed price, ignoring anything but digits
// and separators. Invalid or negative input yields 0; the result is capped
// and rounded to cents.
func SanitizePrice(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := ParsePrice(b.String())
	if err != nil || math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > MaxPrice {
		v = MaxPrice
	}
	return RoundCents(v)
}

// RoundCents rounds v to two decimal places.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// SanitizeQuantity floors v and clamps it to [min, max].
func SanitizeQuantity(v float64, min, max int) int {
	if math.IsNaN(v) {
		return min
	}
	n := int(math.Floor(v))
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// IsValidPrice reports whether p is a usable price.
func IsValidPrice(p float64) bool {
	return p > 0 && p <= MaxPrice
}

// IsValidItemName reports whether a custom item name has an allowed length.
func IsValidItemName(name string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	return n >= MinItemNameLen && n <= MaxItemNameLen
}

// ParsePrice reads a Brazilian formatted number such as "1.234,56".
// Without a comma, a single dot followed by one or two digits is taken as
// the decimal point ("12.50"); any other dot separates thousands.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if !strings.Contains(s, ",") && strings.Count(s, ".") == 1 {
		if decimals := len(s) - strings.Index(s, ".") - 1; decimals == 1 || decimals == 2 {
			return strconv.ParseFloat(s, 64)
		}
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	return strconv.ParseFloat(s, 64)
}
