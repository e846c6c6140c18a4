// Package budget provides the reverse calculator view: how many guests a
// budget covers.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	calc "github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/services/planner"
	"github.com/churrascometro/churrascometro/internal/tui/components"
)

var yesNo = []string{"Não", "Sim"}

// View holds the budget form and the last suggestion.
type View struct {
	service *planner.Service
	palette components.Palette
	styles  components.Styles

	form       *components.Form
	budget     *components.Input
	children   *components.Select
	childPct   *components.Input
	vegetarian *components.Select
	vegPct     *components.Input
	beer       *components.Select

	result *planner.BudgetResult
}

// NewView creates a budget view with the default options.
func NewView(service *planner.Service, p components.Palette) *View {
	v := &View{service: service, palette: p, styles: p.Styles()}
	v.buildForm(calc.DefaultReverseInput())
	return v
}

func selected(on bool) int {
	if on {
		return 1
	}
	return 0
}

func (v *View) buildForm(in calc.ReverseInput) {
	v.budget = components.NewInput("Orçamento (R$)").SetPlaceholder("500,00").SetMaxLength(12).SetRequired(true)
	if in.Budget > 0 {
		v.budget.SetValue(calc.FormatDecimal(in.Budget))
	}
	v.children = components.NewSelect("Crianças", yesNo).SetSelected(selected(in.IncludeChildren))
	v.childPct = components.NewInput("% crianças").SetValue(strconv.Itoa(in.ChildPercent)).SetMaxLength(3).SetWidth(5)
	v.vegetarian = components.NewSelect("Vegetarianos", yesNo).SetSelected(selected(in.IncludeVegetarian))
	v.vegPct = components.NewInput("% vegetarianos").SetValue(strconv.Itoa(in.VegetarianPercent)).SetMaxLength(3).SetWidth(5)
	v.beer = components.NewSelect("Cerveja", yesNo).SetSelected(selected(in.IncludeBeer))

	v.form = components.NewForm("Quanto churrasco cabe no bolso?", v.palette)
	v.form.AddField(v.budget).
		AddField(v.children).
		AddField(v.childPct).
		AddField(v.vegetarian).
		AddField(v.vegPct).
		AddField(v.beer)
}

// ReverseInput reads the form.
func (v *View) ReverseInput() (calc.ReverseInput, error) {
	budget, err := calc.ParsePrice(v.budget.Value())
	if err != nil || budget <= 0 {
		return calc.ReverseInput{}, planner.ErrInvalidBudget
	}
	percent := func(in *components.Input) int {
		n, err := strconv.Atoi(strings.TrimSpace(in.Value()))
		if err != nil {
			return 0
		}
		return min(max(n, 0), 100)
	}
	return calc.ReverseInput{
		Budget:            budget,
		IncludeChildren:   v.children.SelectedIndex() == 1,
		ChildPercent:      percent(v.childPct),
		IncludeVegetarian: v.vegetarian.SelectedIndex() == 1,
		VegetarianPercent: percent(v.vegPct),
		IncludeBeer:       v.beer.SelectedIndex() == 1,
	}, nil
}

// HandleKey passes a key to the form and reports whether it was submitted.
// Esc clears the form back to the defaults.
func (v *View) HandleKey(key string) bool {
	v.form.HandleKey(key)
	if v.form.IsCancelled() {
		v.result = nil
		v.buildForm(calc.DefaultReverseInput())
		return false
	}
	return v.form.IsSubmitted()
}

// Submit runs the reverse calculation for the form values.
func (v *View) Submit(ctx context.Context) error {
	in, err := v.ReverseInput()
	if err == nil {
		v.result, err = v.service.Budget(ctx, in)
	}
	if err != nil {
		v.result = nil
		msg := err.Error()
		if errors.Is(err, planner.ErrInvalidBudget) {
			msg = "informe um orçamento maior que zero"
		}
		v.form.Reopen(msg)
		return err
	}
	v.form.Reopen("")
	return nil
}

// Result returns the last suggestion.
func (v *View) Result() *planner.BudgetResult {
	return v.result
}

func (v *View) renderResult() string {
	r := v.result
	s := r.Suggestion
	var b strings.Builder

	b.WriteString(v.styles.Section.Render(fmt.Sprintf("Dá para %d pessoas", s.TotalPeople)))
	b.WriteString("\n")
	lines := [][2]string{
		{"Adultos (carne)", strconv.Itoa(s.MeatAdults)},
		{"Vegetarianos", strconv.Itoa(s.VegetarianAdults)},
		{"Crianças", strconv.Itoa(s.Children)},
		{"Bebem cerveja", strconv.Itoa(s.BeerDrinkers)},
		{"Estimativa", calc.FormatCurrency(s.EstimatedCost)},
		{"  carnes", calc.FormatCurrency(s.Breakdown.Meat)},
		{"  bebidas", calc.FormatCurrency(s.Breakdown.Drinks)},
		{"  acompanhamentos", calc.FormatCurrency(s.Breakdown.Sides)},
		{"  extras", calc.FormatCurrency(s.Breakdown.Extras)},
		{"Com seus preços", calc.FormatCurrency(r.Result.Totals.TotalCost)},
	}
	for _, l := range lines {
		b.WriteString(v.styles.Label.Render(components.PadRight(l[0], 20)))
		b.WriteString(v.styles.Value.Render(l[1]))
		b.WriteString("\n")
	}
	return b.String()
}

// Render renders the form and the suggestion.
func (v *View) Render(width, height int) string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("═══ ORÇAMENTO ═══"))
	b.WriteString("\n\n")
	b.WriteString(v.form.Render())
	b.WriteString("\n\n")

	if v.result != nil {
		b.WriteString(v.renderResult())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("Ctrl+P:Usar na calculadora"))
	}
	return b.String()
}
