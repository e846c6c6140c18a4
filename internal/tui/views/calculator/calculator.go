// Package calculator provides the main calculator view: guest counters,
// options, meat selection and the live shopping list.
package calculator

import (
	"context"
	"fmt"
	"strings"

	calc "github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/services/planner"
	"github.com/churrascometro/churrascometro/internal/tui/components"
)

type rowKind int

const (
	rowMeatAdults rowKind = iota
	rowVegetarian
	rowChildren
	rowBeer
	rowSoda
	rowDuration
	rowSides
	rowMeat
)

type row struct {
	kind  rowKind
	label string
	meat  string
}

// View is the calculator screen. Every change recalculates the result
// with the loaded price overrides.
type View struct {
	service   *planner.Service
	styles    components.Styles
	palette   components.Palette
	rows      []row
	cursor    int
	input     calc.Input
	result    calc.Result
	overrides calc.Overrides
	profiles  []*models.Profile
	profile   int
	err       error
}

// NewView creates a calculator view starting from the given input.
func NewView(service *planner.Service, start calc.Input, p components.Palette) *View {
	rows := []row{
		{kind: rowMeatAdults, label: "Adultos (carne)"},
		{kind: rowVegetarian, label: "Vegetarianos"},
		{kind: rowChildren, label: "Crianças"},
		{kind: rowBeer, label: "Bebem cerveja"},
		{kind: rowSoda, label: "Bebem refri"},
		{kind: rowDuration, label: "Duração"},
		{kind: rowSides, label: "Acompanhamentos"},
	}
	for _, key := range calc.MeatKeys() {
		def, _ := calc.Lookup(key)
		rows = append(rows, row{kind: rowMeat, label: def.Label, meat: key})
	}

	v := &View{
		service: service,
		styles:  p.Styles(),
		palette: p,
		rows:    rows,
		profile: -1,
	}
	v.SetInput(start)
	return v
}

// Load fetches price overrides and profiles.
func (v *View) Load(ctx context.Context) error {
	v.err = nil
	overrides, err := v.service.Overrides(ctx)
	if err != nil {
		v.err = err
		return err
	}
	profiles, err := v.service.ListProfiles(ctx)
	if err != nil {
		v.err = err
		return err
	}
	v.overrides = overrides
	v.profiles = profiles
	if v.profile >= len(profiles) {
		v.profile = -1
	}
	v.recalculate()
	return nil
}

func (v *View) recalculate() {
	v.input = calc.ClampDrinkers(v.input)
	v.result = calc.Calculate(v.input, v.overrides)
}

// SetInput replaces the event parameters.
func (v *View) SetInput(in calc.Input) {
	if in.SelectedMeats == nil {
		in.SelectedMeats = calc.DefaultSelectedMeats()
	}
	if !in.Duration.Valid() {
		in.Duration = calc.DurationShort
	}
	meats := make(map[string]bool, len(in.SelectedMeats))
	for k, on := range in.SelectedMeats {
		meats[k] = on
	}
	in.SelectedMeats = meats
	v.input = in
	v.recalculate()
}

// Input returns the current event parameters.
func (v *View) Input() calc.Input {
	return v.input
}

// Result returns the current calculation.
func (v *View) Result() calc.Result {
	return v.result
}

// Reset zeroes the guest counts and keeps the options.
func (v *View) Reset() {
	in := v.input
	in.MeatAdults, in.VegetarianAdults, in.Children = 0, 0, 0
	in.BeerDrinkers, in.SodaDrinkers = 0, 0
	v.profile = -1
	v.SetInput(in)
}

// MoveUp moves the cursor up.
func (v *View) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
	}
}

// MoveDown moves the cursor down.
func (v *View) MoveDown() {
	if v.cursor < len(v.rows)-1 {
		v.cursor++
	}
}

// Increment raises the counter under the cursor or toggles an option.
func (v *View) Increment() { v.adjust(1) }

// Decrement lowers the counter under the cursor or toggles an option.
func (v *View) Decrement() { v.adjust(-1) }

func (v *View) adjust(delta int) {
	in := v.input
	clamp := func(n, ceiling int) int {
		return calc.SanitizeQuantity(float64(n+delta), 0, ceiling)
	}

	switch r := v.rows[v.cursor]; r.kind {
	case rowMeatAdults:
		in.MeatAdults = clamp(in.MeatAdults, calc.MaxQuantity)
	case rowVegetarian:
		in.VegetarianAdults = clamp(in.VegetarianAdults, calc.MaxQuantity)
	case rowChildren:
		in.Children = clamp(in.Children, calc.MaxQuantity)
	case rowBeer:
		in.BeerDrinkers = clamp(in.BeerDrinkers, in.TotalAdults())
	case rowSoda:
		in.SodaDrinkers = clamp(in.SodaDrinkers, in.TotalParticipants())
	default:
		v.Toggle()
		return
	}
	v.input = in
	v.recalculate()
}

// Toggle flips the option or meat under the cursor.
func (v *View) Toggle() {
	switch r := v.rows[v.cursor]; r.kind {
	case rowDuration:
		if v.input.Duration == calc.DurationLong {
			v.input.Duration = calc.DurationShort
		} else {
			v.input.Duration = calc.DurationLong
		}
	case rowSides:
		v.input.IncludeSides = !v.input.IncludeSides
	case rowMeat:
		v.input.SelectedMeats[r.meat] = !v.input.SelectedMeats[r.meat]
	default:
		return
	}
	v.recalculate()
}

// NextProfile applies the next profile in the list, wrapping around.
func (v *View) NextProfile() *models.Profile {
	if len(v.profiles) == 0 {
		return nil
	}
	v.profile = (v.profile + 1) % len(v.profiles)
	p := v.profiles[v.profile]
	v.SetInput(p.Config)
	return p
}

// SelectedProfile returns the last applied profile, if any.
func (v *View) SelectedProfile() *models.Profile {
	if v.profile < 0 || v.profile >= len(v.profiles) {
		return nil
	}
	return v.profiles[v.profile]
}

// ShareText returns the shareable shopping list of the current result, or
// "" when there is nothing to buy.
func (v *View) ShareText() string {
	if len(v.result.Sections) == 0 {
		return ""
	}
	return calc.ShoppingListText(v.result)
}

// NewNameForm builds the name prompt used for saving events and profiles.
func (v *View) NewNameForm(title, placeholder string, required bool) (*components.Form, *components.Input) {
	name := components.NewInput("Nome").
		SetPlaceholder(placeholder).
		SetMaxLength(calc.MaxTextLength).
		SetWidth(30).
		SetRequired(required)
	form := components.NewForm(title, v.palette)
	form.AddField(name)
	return form, name
}

func (v *View) value(r row) string {
	in := v.input
	switch r.kind {
	case rowMeatAdults:
		return counter(in.MeatAdults)
	case rowVegetarian:
		return counter(in.VegetarianAdults)
	case rowChildren:
		return counter(in.Children)
	case rowBeer:
		return counter(in.BeerDrinkers)
	case rowSoda:
		return counter(in.SodaDrinkers)
	case rowDuration:
		return fmt.Sprintf("%s (%s)", in.Duration.Label(), in.Duration.Description())
	case rowSides:
		return checkbox(in.IncludeSides)
	default:
		return checkbox(in.SelectedMeats[r.meat])
	}
}

func counter(n int) string {
	return fmt.Sprintf("◀ %3d ▶", n)
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (v *View) renderInputs() string {
	var b strings.Builder
	b.WriteString(v.styles.Section.Render("CONVIDADOS"))
	b.WriteString("\n")
	for i, r := range v.rows {
		if r.kind == rowDuration {
			b.WriteString("\n" + v.styles.Section.Render("OPÇÕES") + "\n")
		}
		if r.kind == rowMeat && v.rows[i-1].kind != rowMeat {
			b.WriteString("\n" + v.styles.Section.Render("CARNES") + "\n")
		}

		label := components.PadRight(r.label, 17)
		line := label + " " + v.value(r)
		if i == v.cursor {
			b.WriteString(v.styles.Focus.Render("> " + line))
		} else {
			b.WriteString("  " + v.styles.Label.Render(label) + " " + v.styles.Value.Render(v.value(r)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	profile := "nenhum"
	if p := v.SelectedProfile(); p != nil {
		profile = p.Icon + " " + p.Name
	}
	b.WriteString(v.styles.Label.Render("Perfil: ") + v.styles.Value.Render(profile))
	return b.String()
}

func (v *View) renderResult() string {
	var b strings.Builder
	r := v.result
	b.WriteString(v.styles.Section.Render(fmt.Sprintf("LISTA  👥 %d pessoas (%d adultos, %d crianças)",
		r.Participants.Total, r.Participants.Adults, r.Participants.Children)))
	b.WriteString("\n")

	if len(r.Sections) == 0 {
		b.WriteString("\n" + v.styles.Muted.Render("Informe os convidados para ver a lista."))
		return b.String()
	}

	for _, s := range r.Sections {
		b.WriteString("\n" + v.styles.Title.Render(s.Icon+" "+s.Title) + "\n")
		for _, it := range s.Items {
			line := components.PadRight("  "+it.Label, 22) + components.PadLeft(it.Display(), 10)
			if it.Price > 0 {
				line += "  " + components.PadLeft(calc.FormatCurrency(it.Price), 12)
			}
			b.WriteString(v.styles.Value.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Total: ") + v.styles.Success.Render(calc.FormatCurrency(r.Totals.TotalCost)))
	if per := calc.CostPerAdult(r); per > 0 {
		b.WriteString(v.styles.Muted.Render("  (" + calc.FormatCurrency(per) + " por adulto)"))
	}
	return b.String()
}

// Render renders the calculator, responsive to the given width.
func (v *View) Render(width, height int) string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("═══ CHURRASCÔMETRO ═══"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Erro: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(components.SideBySide(v.renderInputs(), v.renderResult(), width, 4))
	b.WriteString("\n\n")

	if width < 80 {
		b.WriteString(v.styles.Help.Render("↑↓ ←→ Espaço  s:Salvar p:Perfil P:Próx. perfil x:Exportar"))
	} else {
		b.WriteString(v.styles.Help.Render("↑↓:Campo  ←→:Ajustar  Espaço:Alternar  s:Salvar evento  p:Salvar perfil  P:Próximo perfil  D:Apagar perfil  x:Exportar  r:Zerar"))
	}
	return b.String()
}
