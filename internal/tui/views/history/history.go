// Package history provides the saved events view.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	calc "github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/services/planner"
	"github.com/churrascometro/churrascometro/internal/tui/components"
	"github.com/churrascometro/churrascometro/internal/util"
)

// View lists saved events newest first.
type View struct {
	service *planner.Service
	styles  components.Styles
	table   *components.Table
	events  []*models.SavedEvent
	now     time.Time
	err     error
}

// NewView creates a history view.
func NewView(service *planner.Service, p components.Palette) *View {
	columns := []components.Column{
		{Title: "Nome", Width: 28},
		{Title: "Quando", Width: 14},
		{Title: "Pessoas", Width: 7, Align: lipgloss.Right},
		{Title: "Duração", Width: 7},
		{Title: "Total", Width: 12, Align: lipgloss.Right},
	}
	table := components.NewTable(columns, p)
	table.SetVisibleRows(models.MaxSavedEvents)
	table.Focus(true)

	return &View{
		service: service,
		styles:  p.Styles(),
		table:   table,
		now:     time.Now(),
	}
}

// SetNow sets the reference time for relative dates.
func (v *View) SetNow(t time.Time) {
	v.now = t
}

// Load fetches the saved events.
func (v *View) Load(ctx context.Context) error {
	v.err = nil
	list, err := v.service.ListHistory(ctx, models.DefaultPagination())
	if err != nil {
		v.err = err
		return err
	}
	v.SetEvents(list.Events)
	return nil
}

// SetEvents replaces the displayed events.
func (v *View) SetEvents(events []*models.SavedEvent) {
	v.events = events
	rows := make([][]string, len(events))
	for i, e := range events {
		rows[i] = []string{
			e.Name,
			util.RelativeTimeString(e.Date, v.now),
			fmt.Sprintf("%d", e.Config.TotalParticipants()),
			e.Config.Duration.Label(),
			calc.FormatCurrency(e.TotalCost),
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

// Selected returns the event under the cursor.
func (v *View) Selected() *models.SavedEvent {
	idx := v.table.Selected()
	if idx < 0 || idx >= len(v.events) {
		return nil
	}
	return v.events[idx]
}

// Reload returns the configuration of the selected event.
func (v *View) Reload(ctx context.Context) (*models.SavedEvent, calc.Input, error) {
	e := v.Selected()
	if e == nil {
		return nil, calc.Input{}, nil
	}
	in, err := v.service.ReloadHistory(ctx, e.ID)
	return e, in, err
}

// Delete removes the selected event and reloads.
func (v *View) Delete(ctx context.Context) error {
	e := v.Selected()
	if e == nil {
		return nil
	}
	if err := v.service.DeleteHistory(ctx, e.ID); err != nil {
		return err
	}
	return v.Load(ctx)
}

// Clear removes every event and reloads.
func (v *View) Clear(ctx context.Context) error {
	if err := v.service.ClearHistory(ctx); err != nil {
		return err
	}
	return v.Load(ctx)
}

// Render renders the history view.
func (v *View) Render(width, height int) string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("═══ HISTÓRICO ═══"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Erro: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.table.Empty() {
		b.WriteString(v.styles.Muted.Render("Nenhum churrasco salvo ainda."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.Render())
		if e := v.Selected(); e != nil {
			b.WriteString("\n\n")
			b.WriteString(v.styles.Label.Render("Convidados: "))
			b.WriteString(v.styles.Value.Render(fmt.Sprintf("%d adultos, %d vegetarianos, %d crianças, %d cerveja, %d refri",
				e.Config.MeatAdults, e.Config.VegetarianAdults, e.Config.Children,
				e.Config.BeerDrinkers, e.Config.SodaDrinkers)))
			b.WriteString("\n")
			b.WriteString(v.styles.Label.Render("Salvo em:   "))
			b.WriteString(v.styles.Value.Render(util.FormatDateTime(e.Date)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑↓:Evento  Enter:Carregar na calculadora  d:Apagar  C:Apagar tudo"))
	return b.String()
}
