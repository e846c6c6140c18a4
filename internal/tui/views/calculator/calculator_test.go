package calculator

import (
	"strings"
	"testing"

	calc "github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/tui/components"
)

func newTestView() *View {
	return NewView(nil, calc.Input{}, components.EmberPalette())
}

func TestView_Defaults(t *testing.T) {
	v := newTestView()
	in := v.Input()

	if in.Duration != calc.DurationShort {
		t.Errorf("expected short duration, got %v", in.Duration)
	}
	if !in.SelectedMeats["picanha"] || in.SelectedMeats["maminha"] {
		t.Errorf("expected default meat selection, got %v", in.SelectedMeats)
	}
	if len(v.Result().Sections) != 0 {
		t.Error("expected empty result without guests")
	}
	if v.ShareText() != "" {
		t.Error("expected nothing to share without guests")
	}
}

func TestView_Counters(t *testing.T) {
	v := newTestView()

	v.Increment()
	v.Increment()
	v.Decrement()
	v.Increment()
	if got := v.Input().MeatAdults; got != 2 {
		t.Fatalf("expected 2 meat adults, got %d", got)
	}

	v.Decrement()
	v.Decrement()
	v.Decrement()
	if got := v.Input().MeatAdults; got != 0 {
		t.Errorf("expected counter to stop at 0, got %d", got)
	}
}

func TestView_DrinkerCeilings(t *testing.T) {
	v := newTestView()
	v.Increment() // 1 meat adult
	v.MoveDown()
	v.MoveDown()
	v.Increment() // 1 child

	v.MoveDown() // beer
	for i := 0; i < 3; i++ {
		v.Increment()
	}
	if got := v.Input().BeerDrinkers; got != 1 {
		t.Errorf("expected beer drinkers capped at the adults, got %d", got)
	}

	v.MoveDown() // soda
	for i := 0; i < 5; i++ {
		v.Increment()
	}
	if got := v.Input().SodaDrinkers; got != 2 {
		t.Errorf("expected soda drinkers capped at everyone, got %d", got)
	}
}

func TestView_Toggles(t *testing.T) {
	v := newTestView()
	for i := 0; i < 5; i++ {
		v.MoveDown()
	}

	v.Toggle()
	if v.Input().Duration != calc.DurationLong {
		t.Error("expected long duration after toggle")
	}
	v.Increment()
	if v.Input().Duration != calc.DurationShort {
		t.Error("expected adjusting an option to toggle it")
	}

	v.MoveDown()
	sides := v.Input().IncludeSides
	v.Toggle()
	if v.Input().IncludeSides == sides {
		t.Error("expected sides toggled")
	}

	v.MoveDown()
	first := calc.MeatKeys()[0]
	on := v.Input().SelectedMeats[first]
	v.Toggle()
	if v.Input().SelectedMeats[first] == on {
		t.Errorf("expected %s toggled", first)
	}

	// the cursor stops at the last meat
	for i := 0; i < 20; i++ {
		v.MoveDown()
	}
	v.Toggle()
	last := calc.MeatKeys()[len(calc.MeatKeys())-1]
	if !v.Input().SelectedMeats[last] {
		t.Errorf("expected %s selected", last)
	}
}

func TestView_SetInputCopiesMeats(t *testing.T) {
	meats := calc.DefaultSelectedMeats()
	v := newTestView()
	v.SetInput(calc.Input{MeatAdults: 3, SelectedMeats: meats})

	for i := 0; i < 7; i++ {
		v.MoveDown()
	}
	v.Toggle()

	if !meats[calc.MeatKeys()[0]] {
		t.Error("expected caller's map untouched")
	}
}

func TestView_Reset(t *testing.T) {
	v := newTestView()
	v.SetInput(calc.Input{MeatAdults: 5, Children: 2, BeerDrinkers: 3, Duration: calc.DurationLong})
	v.Reset()

	in := v.Input()
	if in.TotalParticipants() != 0 || in.BeerDrinkers != 0 {
		t.Errorf("expected guests cleared, got %+v", in)
	}
	if in.Duration != calc.DurationLong {
		t.Error("expected options kept")
	}
}

func TestView_NextProfile(t *testing.T) {
	v := newTestView()
	if v.NextProfile() != nil {
		t.Fatal("expected nil without profiles")
	}

	v.profiles = []*models.Profile{
		{ID: "casal", Name: "Casal", Config: calc.Input{MeatAdults: 2, BeerDrinkers: 2}},
		{ID: "amigos", Name: "Amigos", Config: calc.Input{MeatAdults: 8, BeerDrinkers: 8}},
	}

	if p := v.NextProfile(); p.ID != "casal" || v.Input().MeatAdults != 2 {
		t.Errorf("expected casal applied, got %s with %d adults", p.ID, v.Input().MeatAdults)
	}
	if p := v.NextProfile(); p.ID != "amigos" || v.Input().MeatAdults != 8 {
		t.Errorf("expected amigos applied, got %s", p.ID)
	}
	if p := v.NextProfile(); p.ID != "casal" {
		t.Errorf("expected wrap around to casal, got %s", p.ID)
	}
	if v.SelectedProfile().ID != "casal" {
		t.Error("expected selected profile casal")
	}
}

func TestView_Render(t *testing.T) {
	v := newTestView()

	out := v.Render(120, 40)
	for _, want := range []string{"CHURRASCÔMETRO", "CONVIDADOS", "CARNES", "Informe os convidados"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in empty render", want)
		}
	}

	v.SetInput(calc.Input{MeatAdults: 4, BeerDrinkers: 4})
	out = v.Render(120, 40)
	for _, want := range []string{"4 pessoas", "Picanha", "Total:", "por adulto"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in render", want)
		}
	}
	if !strings.Contains(v.ShareText(), "LISTA DE CHURRASCO") {
		t.Error("expected share text header")
	}
}

func TestView_RenderHelp_Narrow(t *testing.T) {
	v := newTestView()

	if !strings.Contains(v.Render(60, 40), "P:Próx. perfil") {
		t.Error("expected compact help on narrow terminal")
	}
}
