package checklist

import (
	"context"
	"strings"
	"testing"

	calc "github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/services/planner"
	"github.com/churrascometro/churrascometro/internal/services/shopping"
	"github.com/churrascometro/churrascometro/internal/testutil"
	"github.com/churrascometro/churrascometro/internal/tui/components"
)

func newSavedView(t *testing.T) *View {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	in := calc.Input{MeatAdults: 4, BeerDrinkers: 2, IncludeSides: true, SelectedMeats: calc.DefaultSelectedMeats()}
	if _, err := planner.NewService(db.DB.DB).SaveEvent(ctx, "Sábado", in); err != nil {
		t.Fatalf("saving event: %v", err)
	}

	v := NewView(shopping.NewService(db.DB.DB), components.EmberPalette())
	if err := v.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	return v
}

func TestView_EmptyRender(t *testing.T) {
	v := NewView(nil, components.EmberPalette())
	out := v.Render(120, 40)

	if !strings.Contains(out, "LISTA DE COMPRAS") {
		t.Error("expected title in output")
	}
	if !strings.Contains(out, "Nenhuma lista salva") {
		t.Error("expected empty state message")
	}
	if v.ShareText() != "" {
		t.Error("expected nothing to share")
	}
}

func TestView_LoadWithoutList(t *testing.T) {
	db := testutil.NewTestDB(t)
	v := NewView(shopping.NewService(db.DB.DB), components.EmberPalette())

	if err := v.Load(context.Background()); err != nil {
		t.Fatalf("expected a missing list to be the empty state, got %v", err)
	}
	if v.Selected() != nil {
		t.Error("expected no items")
	}
}

func TestView_ToggleAndClear(t *testing.T) {
	v := newSavedView(t)
	ctx := context.Background()

	out := v.Render(120, 40)
	if !strings.Contains(out, "0/") || !strings.Contains(out, "Falta gastar:") {
		t.Errorf("expected progress header, got:\n%s", out)
	}

	v.MoveDown()
	key := v.Selected().Key
	if err := v.Toggle(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if it := v.Selected(); it.Key != key || !it.Checked {
		t.Errorf("expected %s checked, got %+v", key, it)
	}
	if v.list.Checked != 1 {
		t.Errorf("expected 1 checked item, got %d", v.list.Checked)
	}
	if !strings.Contains(v.Render(120, 40), "✅") {
		t.Error("expected checked box in render")
	}

	if err := v.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if v.list.Checked != 0 {
		t.Errorf("expected no checked items, got %d", v.list.Checked)
	}
}

func TestView_Remove(t *testing.T) {
	v := newSavedView(t)
	ctx := context.Background()
	before := len(v.items)
	key := v.Selected().Key

	if err := v.Remove(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(v.items) != before-1 {
		t.Errorf("expected %d items, got %d", before-1, len(v.items))
	}
	for _, it := range v.items {
		if it.Key == key {
			t.Errorf("expected %s removed", key)
		}
	}
}

func TestView_ToggleMode(t *testing.T) {
	v := newSavedView(t)
	recipeItems := len(v.items)

	v.ToggleMode()
	if v.Mode() != shopping.ModeMarket {
		t.Fatalf("expected market mode, got %s", v.Mode())
	}
	if err := v.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(v.items) != recipeItems {
		t.Errorf("expected the same items regrouped, got %d of %d", len(v.items), recipeItems)
	}
	if !strings.Contains(v.Render(120, 40), "modo: mercado") {
		t.Error("expected market mode label")
	}

	v.ToggleMode()
	if v.Mode() != shopping.ModeRecipe {
		t.Error("expected recipe mode again")
	}
}

func TestView_ShareText(t *testing.T) {
	v := newSavedView(t)

	if v.ShareText() == "" {
		t.Error("expected share text for a saved list")
	}
}
