// Package checklist provides the shopping checklist view.
package checklist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	calc "github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/services/shopping"
	"github.com/churrascometro/churrascometro/internal/tui/components"
	"github.com/churrascometro/churrascometro/internal/util"
)

// View shows the saved shopping list with purchase checkboxes.
type View struct {
	service *shopping.Service
	styles  components.Styles
	mode    shopping.Mode
	list    *shopping.Checklist
	items   []models.ChecklistItem
	cursor  int
	err     error
}

// NewView creates a checklist view in recipe mode.
func NewView(service *shopping.Service, p components.Palette) *View {
	return &View{
		service: service,
		styles:  p.Styles(),
		mode:    shopping.ModeRecipe,
	}
}

// Load fetches the checklist. A missing shopping list is not an error; the
// view shows its empty state.
func (v *View) Load(ctx context.Context) error {
	v.err = nil
	list, err := v.service.Checklist(ctx, v.mode)
	if errors.Is(err, shopping.ErrNoShoppingList) {
		v.SetChecklist(nil)
		return nil
	}
	if err != nil {
		v.err = err
		return err
	}
	v.SetChecklist(list)
	return nil
}

// SetChecklist replaces the displayed list.
func (v *View) SetChecklist(list *shopping.Checklist) {
	v.list = list
	v.items = nil
	if list != nil {
		v.items = list.Items()
	}
	if v.cursor >= len(v.items) {
		v.cursor = max(len(v.items)-1, 0)
	}
}

// Mode returns the grouping mode.
func (v *View) Mode() shopping.Mode {
	return v.mode
}

// ToggleMode switches between recipe and market grouping.
func (v *View) ToggleMode() {
	if v.mode == shopping.ModeMarket {
		v.mode = shopping.ModeRecipe
	} else {
		v.mode = shopping.ModeMarket
	}
	v.cursor = 0
}

// MoveUp moves the selection up.
func (v *View) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
	}
}

// MoveDown moves the selection down.
func (v *View) MoveDown() {
	if v.cursor < len(v.items)-1 {
		v.cursor++
	}
}

// Selected returns the item under the cursor.
func (v *View) Selected() *models.ChecklistItem {
	if v.cursor < 0 || v.cursor >= len(v.items) {
		return nil
	}
	return &v.items[v.cursor]
}

// Toggle flips the selected item and reloads.
func (v *View) Toggle(ctx context.Context) error {
	it := v.Selected()
	if it == nil {
		return nil
	}
	if _, err := v.service.Toggle(ctx, it.Key); err != nil {
		return err
	}
	return v.Load(ctx)
}

// Remove drops the selected item from the list and reloads.
func (v *View) Remove(ctx context.Context) error {
	it := v.Selected()
	if it == nil {
		return nil
	}
	if _, err := v.service.RemoveItem(ctx, it.Key); err != nil {
		return err
	}
	return v.Load(ctx)
}

// Clear unchecks every item and reloads.
func (v *View) Clear(ctx context.Context) error {
	if err := v.service.ClearChecks(ctx); err != nil {
		return err
	}
	return v.Load(ctx)
}

// ShareText returns the message with what is still missing.
func (v *View) ShareText() string {
	if v.list == nil {
		return ""
	}
	return shopping.FormatShareText(v.list)
}

// Render renders the checklist.
func (v *View) Render(width, height int) string {
	var b strings.Builder

	mode := "receita"
	if v.mode == shopping.ModeMarket {
		mode = "mercado"
	}
	b.WriteString(v.styles.Title.Render("═══ LISTA DE COMPRAS ═══"))
	b.WriteString(v.styles.Muted.Render("  modo: " + mode))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Erro: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.list == nil || len(v.items) == 0 {
		b.WriteString(v.styles.Muted.Render("Nenhuma lista salva. Calcule e salve um churrasco (F1, s)."))
		b.WriteString("\n")
		return b.String()
	}

	l := v.list
	b.WriteString(fmt.Sprintf("%s %d/%d itens  %.0f%%\n",
		v.styles.ProgressBar(float64(l.Checked), float64(l.Total), min(width/2, 40)),
		l.Checked, l.Total, l.Progress))
	b.WriteString(v.styles.Label.Render("Falta gastar: ") + v.styles.Value.Render(calc.FormatCurrency(l.RemainingCost)))
	b.WriteString(v.styles.Muted.Render(" de " + calc.FormatCurrency(l.TotalCost)))
	b.WriteString(v.styles.Muted.Render("  (lista de " + util.FormatDate(l.Date) + ")"))
	b.WriteString("\n")

	idx := 0
	for _, g := range l.Groups {
		b.WriteString("\n" + v.styles.Section.Render(g.Title) + "\n")
		for _, it := range g.Items {
			box := "⬜"
			if it.Checked {
				box = "✅"
			}
			line := fmt.Sprintf("%s %s  %s", box,
				components.PadRight(components.Truncate(it.Label, 24), 24),
				components.PadLeft(it.Quantity, 10))
			if it.Price > 0 {
				line += "  " + components.PadLeft(calc.FormatCurrency(it.Price), 12)
			}

			switch {
			case idx == v.cursor:
				b.WriteString(v.styles.Selected.Render(line))
			case it.Checked:
				b.WriteString(v.styles.Muted.Render(line))
			default:
				b.WriteString(v.styles.Value.Render(line))
			}
			b.WriteString("\n")
			idx++
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑↓:Item  Espaço:Marcar  d:Remover  c:Limpar marcas  m:Modo  x:Exportar"))
	return b.String()
}
