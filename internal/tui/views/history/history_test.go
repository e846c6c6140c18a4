package history

import (
	"context"
	"strings"
	"testing"
	"time"

	calc "github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/services/planner"
	"github.com/churrascometro/churrascometro/internal/testutil"
	"github.com/churrascometro/churrascometro/internal/tui/components"
	"github.com/churrascometro/churrascometro/internal/util"
)

func TestView_EmptyRender(t *testing.T) {
	v := NewView(nil, components.EmberPalette())
	out := v.Render(120, 40)

	if !strings.Contains(out, "HISTÓRICO") {
		t.Error("expected title in output")
	}
	if !strings.Contains(out, "Nenhum churrasco salvo ainda") {
		t.Error("expected empty state message")
	}
	if v.Selected() != nil {
		t.Error("expected no selection")
	}
}

func TestView_SetEvents(t *testing.T) {
	now := time.Date(2024, 6, 15, 15, 0, 0, 0, time.UTC)
	v := NewView(nil, components.EmberPalette())
	v.SetNow(now)
	v.SetEvents([]*models.SavedEvent{
		{ID: "1", Name: "Aniversário", Date: now.Add(-2 * time.Hour), TotalCost: 450.5,
			Config: calc.Input{MeatAdults: 10, Children: 2, Duration: calc.DurationLong}},
		{ID: "2", Name: "Domingo", Date: now.AddDate(0, 0, -7), TotalCost: 120,
			Config: calc.Input{MeatAdults: 4, Duration: calc.DurationShort}},
	})

	out := v.Render(120, 40)
	for _, want := range []string{"Aniversário", "R$ 450,50", "12", "Domingo", "Convidados:", "10 adultos"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}

	v.MoveDown()
	if e := v.Selected(); e == nil || e.ID != "2" {
		t.Errorf("expected second event selected, got %+v", e)
	}
	v.MoveUp()
	if e := v.Selected(); e == nil || e.ID != "1" {
		t.Errorf("expected first event selected, got %+v", e)
	}
}

func TestView_LoadReloadDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	clock := util.NewFixedClock(time.Date(2024, 6, 15, 15, 0, 0, 0, time.UTC))
	svc := planner.NewService(db.DB.DB).WithClock(clock)
	ctx := context.Background()

	in := calc.Input{MeatAdults: 6, BeerDrinkers: 4, Duration: calc.DurationLong, SelectedMeats: calc.DefaultSelectedMeats()}
	if _, err := svc.SaveEvent(ctx, "Primeiro", in); err != nil {
		t.Fatalf("saving event: %v", err)
	}
	clock.Advance(time.Hour)
	if _, err := svc.SaveEvent(ctx, "Segundo", calc.Input{MeatAdults: 2}); err != nil {
		t.Fatalf("saving event: %v", err)
	}

	v := NewView(svc, components.EmberPalette())
	v.SetNow(clock.Now())
	if err := v.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if e := v.Selected(); e == nil || e.Name != "Segundo" {
		t.Fatalf("expected newest event first, got %+v", e)
	}

	v.MoveDown()
	e, got, err := v.Reload(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if e.Name != "Primeiro" || got.MeatAdults != 6 || got.BeerDrinkers != 4 || got.Duration != calc.DurationLong {
		t.Errorf("unexpected reloaded input %+v for %s", got, e.Name)
	}

	if err := v.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	db.AssertRowCount(t, "saved_events", 1)

	if err := v.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if v.Selected() != nil {
		t.Error("expected empty history after clear")
	}
}
