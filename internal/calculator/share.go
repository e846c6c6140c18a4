package calculator

import (
	"fmt"
	"strings"
)

// ListItem is the persisted projection of a calculated item: the quantity
// is kept as its display string.
type ListItem struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Quantity string  `json:"quantity"`
	Price    float64 `json:"price"`
	Section  string  `json:"section"`
}

// Flatten turns a result into list items in section order.
func Flatten(r Result) []ListItem {
	var out []ListItem
	for _, s := range r.Sections {
		for _, it := range s.Items {
			out = append(out, ListItem{
				Key:      it.Key,
				Label:    it.Label,
				Quantity: it.Display(),
				Price:    it.Price,
				Section:  s.Title,
			})
		}
	}
	return out
}

// ShoppingListText builds the shareable shopping list message.
func ShoppingListText(r Result) string {
	var b strings.Builder
	b.WriteString("🔥 *LISTA DE CHURRASCO* 🔥\n\n")
	fmt.Fprintf(&b, "👥 %d pessoas (%d adultos, %d crianças)\n\n",
		r.Participants.Total, r.Participants.Adults, r.Participants.Children)

	for _, s := range r.Sections {
		if len(s.Items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "*%s:*\n", s.Title)
		for _, it := range s.Items {
			fmt.Fprintf(&b, "  • %s: %s", it.Label, it.Display())
			if it.Price > 0 {
				fmt.Fprintf(&b, " (%s)", FormatCurrency(it.Price))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "💰 *TOTAL ESTIMADO: %s*\n", FormatCurrency(r.Totals.TotalCost))
	fmt.Fprintf(&b, "📱 Por adulto: %s\n\n", FormatCurrency(CostPerAdult(r)))
	b.WriteString("📲 Calculado pelo Churrascômetro")
	return b.String()
}
