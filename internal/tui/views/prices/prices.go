// Package prices provides the price list view with editing and custom
// items.
package prices

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	calc "github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/services/planner"
	"github.com/churrascometro/churrascometro/internal/tui/components"
)

type formKind int

const (
	formNone formKind = iota
	formEdit
	formAdd
)

// View shows the effective price of every item.
type View struct {
	service *planner.Service
	palette components.Palette
	styles  components.Styles
	table   *components.Table
	entries []models.PriceEntry
	err     error

	form    *components.Form
	kind    formKind
	editing models.PriceEntry
	price   *components.Input
	label   *components.Input
	unit    *components.Select
}

// NewView creates a price list view.
func NewView(service *planner.Service, p components.Palette) *View {
	columns := []components.Column{
		{Title: "Categoria", Width: 18},
		{Title: "Item", Width: 22},
		{Title: "Un.", Width: 6},
		{Title: "Padrão", Width: 12, Align: lipgloss.Right},
		{Title: "Atual", Width: 12, Align: lipgloss.Right},
		{Title: "", Width: 1},
	}
	table := components.NewTable(columns, p)
	table.SetVisibleRows(15)
	table.Focus(true)

	return &View{
		service: service,
		palette: p,
		styles:  p.Styles(),
		table:   table,
	}
}

// SetVisibleRows sets the number of visible table rows.
func (v *View) SetVisibleRows(n int) {
	v.table.SetVisibleRows(n)
}

// Load fetches the price list.
func (v *View) Load(ctx context.Context) error {
	v.err = nil
	entries, err := v.service.PriceList(ctx)
	if err != nil {
		v.err = err
		return err
	}
	v.SetEntries(entries)
	return nil
}

// SetEntries replaces the displayed prices.
func (v *View) SetEntries(entries []models.PriceEntry) {
	v.entries = entries
	rows := make([][]string, len(entries))
	for i, e := range entries {
		mark := ""
		if e.Overridden {
			mark = "*"
		}
		def := calc.FormatCurrency(e.DefaultPrice)
		if e.Custom {
			def = "-"
		}
		rows[i] = []string{
			e.Category,
			e.Label,
			"/" + string(e.Unit),
			def,
			calc.FormatCurrency(e.Price),
			mark,
		}
	}
	v.table.SetRows(rows)
}

// MoveUp moves the selection up.
func (v *View) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *View) MoveDown() {
	v.table.MoveDown()
}

// Selected returns the entry under the cursor.
func (v *View) Selected() *models.PriceEntry {
	idx := v.table.Selected()
	if idx < 0 || idx >= len(v.entries) {
		return nil
	}
	return &v.entries[idx]
}

// Editing returns true while a form is open.
func (v *View) Editing() bool {
	return v.form != nil
}

// StartEdit opens the price form for the selected entry.
func (v *View) StartEdit() {
	e := v.Selected()
	if e == nil {
		return
	}
	v.editing = *e
	v.kind = formEdit
	v.price = components.NewInput("Preço (R$)").
		SetValue(calc.FormatDecimal(e.Price)).
		SetMaxLength(12).
		SetRequired(true)
	v.form = components.NewForm(e.Label+" /"+string(e.Unit), v.palette)
	v.form.AddField(v.price)
}

// StartAdd opens the custom item form.
func (v *View) StartAdd() {
	units := make([]string, 0, len(models.PriceUnits()))
	for _, u := range models.PriceUnits() {
		units = append(units, string(u))
	}
	v.kind = formAdd
	v.label = components.NewInput("Nome").
		SetMaxLength(calc.MaxItemNameLen).
		SetWidth(30).
		SetRequired(true)
	v.price = components.NewInput("Preço (R$)").
		SetPlaceholder("0,00").
		SetMaxLength(12).
		SetRequired(true)
	v.unit = components.NewSelect("Unidade", units)
	v.form = components.NewForm("Novo item", v.palette)
	v.form.AddField(v.label).AddField(v.price).AddField(v.unit)
}

// HandleFormKey passes a key to the open form and reports whether it was
// submitted. A cancelled form is closed.
func (v *View) HandleFormKey(key string) bool {
	if v.form == nil {
		return false
	}
	v.form.HandleKey(key)
	if v.form.IsCancelled() {
		v.closeForm()
		return false
	}
	return v.form.IsSubmitted()
}

func (v *View) closeForm() {
	v.form = nil
	v.kind = formNone
}

// Submit saves the open form. On failure the form stays open with the
// error shown.
func (v *View) Submit(ctx context.Context) error {
	if v.form == nil {
		return nil
	}

	var err error
	switch v.kind {
	case formEdit:
		_, err = v.service.SetPriceText(ctx, v.editing.Key, v.price.Value())
	case formAdd:
		var price float64
		price, err = calc.ParsePrice(v.price.Value())
		if err != nil {
			err = planner.ErrInvalidPrice
			break
		}
		_, err = v.service.AddCustomItem(ctx, planner.CustomItemInput{
			Label: v.label.Value(),
			Price: price,
			Unit:  models.PriceUnit(v.unit.Value()),
		})
	}
	if err != nil {
		v.form.Reopen(formError(err))
		return err
	}

	v.closeForm()
	return v.Load(ctx)
}

func formError(err error) string {
	switch {
	case errors.Is(err, planner.ErrInvalidPrice):
		return "preço inválido"
	case errors.Is(err, planner.ErrInvalidName):
		return "nome deve ter de 2 a 50 caracteres"
	default:
		return err.Error()
	}
}

// Reset restores the catalog price of the selected entry.
func (v *View) Reset(ctx context.Context) error {
	e := v.Selected()
	if e == nil || e.Custom {
		return nil
	}
	if err := v.service.ResetPrice(ctx, e.Key); err != nil {
		return err
	}
	return v.Load(ctx)
}

// ResetAll restores every catalog price.
func (v *View) ResetAll(ctx context.Context) error {
	if err := v.service.ResetPrices(ctx); err != nil {
		return err
	}
	return v.Load(ctx)
}

// DeleteCustom removes the selected entry when it is a custom item.
func (v *View) DeleteCustom(ctx context.Context) (bool, error) {
	e := v.Selected()
	if e == nil || !e.Custom {
		return false, nil
	}
	if err := v.service.DeleteCustomItem(ctx, e.Key); err != nil {
		return false, err
	}
	return true, v.Load(ctx)
}

// Render renders the price list or the open form.
func (v *View) Render(width, height int) string {
	if v.form != nil {
		return v.form.Render()
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("═══ PREÇOS ═══"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Erro: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(v.table.Render())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("* preço personalizado"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("↑↓:Item  Enter:Editar  r:Restaurar  R:Restaurar todos  a:Novo item  d:Apagar item"))
	return b.String()
}
