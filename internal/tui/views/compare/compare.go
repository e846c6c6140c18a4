// Package compare provides the store price comparison view.
package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	calc "github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/services/shopping"
	"github.com/churrascometro/churrascometro/internal/tui/components"
)

type priceField struct {
	key   string
	input *components.Input
}

// View shows what the saved shopping list costs at each store.
type View struct {
	service *shopping.Service
	palette components.Palette
	styles  components.Styles
	table   *components.Table
	stores  []*models.Store
	totals  []calc.StoreTotal
	items   []calc.ListItem
	noList  bool
	err     error

	form    *components.Form
	editing *models.Store
	name    *components.Input
	fields  []priceField
}

// NewView creates a comparison view.
func NewView(service *shopping.Service, p components.Palette) *View {
	columns := []components.Column{
		{Title: "Loja", Width: 24},
		{Title: "Total", Width: 12, Align: lipgloss.Right},
		{Title: "Diferença", Width: 12, Align: lipgloss.Right},
		{Title: "", Width: 32},
	}
	table := components.NewTable(columns, p)
	table.SetVisibleRows(10)
	table.Focus(true)

	return &View{
		service: service,
		palette: p,
		styles:  p.Styles(),
		table:   table,
	}
}

// Load fetches the stores and, when a shopping list exists, their totals.
func (v *View) Load(ctx context.Context) error {
	v.err = nil
	stores, err := v.service.ListStores(ctx)
	if err != nil {
		v.err = err
		return err
	}
	v.stores = stores

	v.noList = false
	v.items = nil
	list, err := v.service.Checklist(ctx, shopping.ModeRecipe)
	switch {
	case errors.Is(err, shopping.ErrNoShoppingList):
		v.noList = true
	case err != nil:
		v.err = err
		return err
	default:
		for _, it := range list.Items() {
			v.items = append(v.items, it.ListItem)
		}
	}

	v.totals = nil
	if !v.noList {
		if v.totals, err = v.service.Compare(ctx); err != nil {
			v.err = err
			return err
		}
	}
	v.refreshRows()
	return nil
}

// SetData replaces the stores and totals without touching the database.
func (v *View) SetData(stores []*models.Store, totals []calc.StoreTotal) {
	v.stores = stores
	v.totals = totals
	v.noList = totals == nil
	v.refreshRows()
}

// rowStores returns the stores in display order: by total when compared,
// by name otherwise.
func (v *View) rowStores() []*models.Store {
	if v.noList {
		return v.stores
	}
	byID := make(map[string]*models.Store, len(v.stores))
	for _, s := range v.stores {
		byID[s.ID] = s
	}
	out := make([]*models.Store, 0, len(v.totals))
	for _, t := range v.totals {
		if s, ok := byID[t.StoreID]; ok {
			out = append(out, s)
		}
	}
	return out
}

func (v *View) refreshRows() {
	var rows [][]string
	if v.noList {
		for _, s := range v.stores {
			rows = append(rows, []string{s.Name, "-", "-", fmt.Sprintf("%d preços", len(s.Prices))})
		}
	} else {
		for _, t := range v.totals {
			var notes []string
			if t.Cheapest {
				notes = append(notes, "🏆 mais barato")
			}
			if !t.HasAllPrices {
				notes = append(notes, "preços faltando")
			}
			note := strings.Join(notes, ", ")
			diff := "-"
			if t.Savings > 0 {
				diff = "+" + calc.FormatCurrency(t.Savings)
			}
			rows = append(rows, []string{t.StoreName, calc.FormatCurrency(t.Total), diff, note})
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

// Selected returns the store under the cursor.
func (v *View) Selected() *models.Store {
	stores := v.rowStores()
	idx := v.table.Selected()
	if idx < 0 || idx >= len(stores) {
		return nil
	}
	return stores[idx]
}

// Editing returns true while a form is open.
func (v *View) Editing() bool {
	return v.form != nil
}

// priceItems are the items offered in the store form: the shopping list
// when there is one, the catalog otherwise.
func (v *View) priceItems() []calc.ListItem {
	if len(v.items) > 0 {
		return v.items
	}
	var out []calc.ListItem
	for _, def := range calc.Catalog() {
		out = append(out, calc.ListItem{Key: def.Key, Label: def.Label})
	}
	return out
}

// StartAdd opens the new store form.
func (v *View) StartAdd() {
	v.openForm("Nova loja", nil)
}

// StartEdit opens the form for the selected store.
func (v *View) StartEdit() {
	s := v.Selected()
	if s == nil {
		return
	}
	v.openForm(s.Name, s)
}

func (v *View) openForm(title string, store *models.Store) {
	v.editing = store
	v.form = components.NewForm(title, v.palette)
	v.fields = nil
	v.name = nil

	if store == nil {
		v.name = components.NewInput("Nome").
			SetMaxLength(calc.MaxStoreNameLen).
			SetWidth(30).
			SetRequired(true)
		v.form.AddField(v.name)
	}
	for _, it := range v.priceItems() {
		in := components.NewInput(components.Truncate(it.Label, 16)).
			SetPlaceholder("padrão").
			SetMaxLength(12)
		if store != nil {
			if p, ok := store.Prices[it.Key]; ok {
				in.SetValue(calc.FormatDecimal(p))
			}
		}
		v.form.AddField(in)
		v.fields = append(v.fields, priceField{key: it.Key, input: in})
	}
}

// HandleFormKey passes a key to the open form and reports whether it was
// submitted. A cancelled form is closed.
func (v *View) HandleFormKey(key string) bool {
	if v.form == nil {
		return false
	}
	v.form.HandleKey(key)
	if v.form.IsCancelled() {
		v.form = nil
		return false
	}
	return v.form.IsSubmitted()
}

// formPrices reads the typed prices. Blank, unparseable or zero fields are
// left out so the store falls back to the default price.
func (v *View) formPrices() map[string]float64 {
	prices := make(map[string]float64)
	for _, f := range v.fields {
		if p := calc.SanitizePrice(f.input.Value()); p > 0 {
			prices[f.key] = p
		}
	}
	return prices
}

// Submit saves the open form. On failure the form stays open with the
// error shown.
func (v *View) Submit(ctx context.Context) error {
	if v.form == nil {
		return nil
	}

	var err error
	if v.editing == nil {
		_, err = v.service.AddStore(ctx, v.name.Value(), v.formPrices())
	} else {
		_, err = v.service.SetStorePrices(ctx, v.editing.ID, v.formPrices())
	}
	if err != nil {
		msg := err.Error()
		switch {
		case errors.Is(err, shopping.ErrDuplicateStore):
			msg = "já existe uma loja com esse nome"
		case errors.Is(err, shopping.ErrInvalidName):
			msg = "nome deve ter de 2 a 30 caracteres"
		}
		v.form.Reopen(msg)
		return err
	}

	v.form = nil
	return v.Load(ctx)
}

// Delete removes the selected store.
func (v *View) Delete(ctx context.Context) error {
	s := v.Selected()
	if s == nil {
		return nil
	}
	if err := v.service.DeleteStore(ctx, s.ID); err != nil {
		return err
	}
	return v.Load(ctx)
}

// Render renders the comparison or the open form.
func (v *View) Render(width, height int) string {
	if v.form != nil {
		return v.form.Render()
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("═══ COMPARAR LOJAS ═══"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Erro: " + v.err.Error()))
		b.WriteString("\n\n")
	}
	if v.noList {
		b.WriteString(v.styles.Warning.Render("Salve um churrasco (F1, s) para comparar o total nas lojas."))
		b.WriteString("\n\n")
	}

	if v.table.Empty() {
		b.WriteString(v.styles.Muted.Render("Nenhuma loja cadastrada."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑↓:Loja  a:Nova loja  Enter/e:Editar preços  d:Apagar"))
	return b.String()
}
