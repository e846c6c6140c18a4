package prices

import (
	"context"
	"strings"
	"testing"

	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/services/planner"
	"github.com/churrascometro/churrascometro/internal/testutil"
	"github.com/churrascometro/churrascometro/internal/tui/components"
)

func newLoadedView(t *testing.T) *View {
	t.Helper()
	db := testutil.NewTestDB(t)
	v := NewView(planner.NewService(db.DB.DB), components.EmberPalette())
	if err := v.Load(context.Background()); err != nil {
		t.Fatalf("loading prices: %v", err)
	}
	return v
}

func typeKeys(v *View, keys ...string) bool {
	submitted := false
	for _, k := range keys {
		submitted = v.HandleFormKey(k)
	}
	return submitted
}

func clearField(v *View) {
	for i := 0; i < 20; i++ {
		v.HandleFormKey("backspace")
	}
}

func TestView_EmptyRender(t *testing.T) {
	v := NewView(nil, components.EmberPalette())
	out := v.Render(120, 40)

	if !strings.Contains(out, "PREÇOS") {
		t.Error("expected title in output")
	}
	if v.Selected() != nil {
		t.Error("expected no selection without entries")
	}
	v.StartEdit()
	if v.Editing() {
		t.Error("expected no form without a selection")
	}
}

func TestView_SetEntries(t *testing.T) {
	v := NewView(nil, components.EmberPalette())
	v.SetEntries([]models.PriceEntry{
		{Key: "picanha", Label: "Picanha", Category: "Carnes", Unit: "kg", DefaultPrice: 89.9, Price: 79.9, Overridden: true},
		{Key: "item-1", Label: "Farofa pronta", Category: "Meus itens", Unit: "un", Price: 8.5, Custom: true},
	})

	out := v.Render(120, 40)
	for _, want := range []string{"Picanha", "R$ 79,90", "R$ 89,90", "Farofa pronta", "* preço personalizado"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}

	v.MoveDown()
	if e := v.Selected(); e == nil || !e.Custom {
		t.Errorf("expected custom item selected, got %+v", e)
	}
}

func TestView_EditPrice(t *testing.T) {
	v := newLoadedView(t)
	ctx := context.Background()

	first := *v.Selected()
	v.StartEdit()
	if !v.Editing() {
		t.Fatal("expected edit form")
	}

	clearField(v)
	if !typeKeys(v, "7", "9", ",", "9", "0", "enter") {
		t.Fatal("expected submit on enter")
	}
	if err := v.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if v.Editing() {
		t.Error("expected form closed after save")
	}

	e := v.Selected()
	if e.Key != first.Key || e.Price != 79.9 || !e.Overridden {
		t.Errorf("expected %s overridden at 79.90, got %+v", first.Key, e)
	}

	if err := v.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if e := v.Selected(); e.Overridden || e.Price != first.DefaultPrice {
		t.Errorf("expected catalog price restored, got %+v", e)
	}
}

func TestView_EditPriceWithDotDecimal(t *testing.T) {
	v := newLoadedView(t)

	v.StartEdit()
	clearField(v)
	if !typeKeys(v, "1", "2", ".", "5", "0", "enter") {
		t.Fatal("expected submit on enter")
	}
	if err := v.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if e := v.Selected(); e.Price != 12.5 {
		t.Errorf("expected 12.50 saved as 12.5, got %v", e.Price)
	}
}

func TestView_EditInvalidPrice(t *testing.T) {
	v := newLoadedView(t)

	v.StartEdit()
	clearField(v)
	typeKeys(v, "a", "b", "c", "enter")

	err := v.Submit(context.Background())
	if err == nil {
		t.Fatal("expected error for invalid price")
	}
	if !v.Editing() {
		t.Fatal("expected form to stay open")
	}
	if !strings.Contains(v.Render(120, 40), "preço inválido") {
		t.Error("expected error shown in form")
	}

	typeKeys(v, "esc")
	if v.Editing() {
		t.Error("expected esc to close the form")
	}
}

func TestView_AddAndDeleteCustomItem(t *testing.T) {
	v := newLoadedView(t)
	ctx := context.Background()
	before := len(v.entries)

	v.StartAdd()
	typeKeys(v, "G", "e", "l", "o", "tab", "1", "5", "tab", "right")
	if !typeKeys(v, "enter") {
		t.Fatal("expected submit on the last field")
	}
	if err := v.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(v.entries) != before+1 {
		t.Fatalf("expected %d entries, got %d", before+1, len(v.entries))
	}

	for i := 0; i < before; i++ {
		v.MoveDown()
	}
	e := v.Selected()
	if e == nil || e.Label != "Gelo" || !e.Custom || e.Price != 15 {
		t.Fatalf("expected custom item Gelo, got %+v", e)
	}
	if e.Unit != models.PriceUnits()[1] {
		t.Errorf("expected second unit, got %s", e.Unit)
	}

	deleted, err := v.DeleteCustom(ctx)
	if err != nil || !deleted {
		t.Fatalf("expected custom item deleted, got %v, %v", deleted, err)
	}
	if len(v.entries) != before {
		t.Errorf("expected %d entries after delete, got %d", before, len(v.entries))
	}

	v.table.Select(0)
	if deleted, _ := v.DeleteCustom(ctx); deleted {
		t.Error("expected catalog items to be kept")
	}
}

func TestView_AddInvalidName(t *testing.T) {
	v := newLoadedView(t)

	v.StartAdd()
	typeKeys(v, "X", "tab", "5", "ctrl+s")
	if err := v.Submit(context.Background()); err == nil {
		t.Fatal("expected error for a one letter name")
	}
	if !strings.Contains(v.Render(120, 40), "nome deve ter de 2 a 50 caracteres") {
		t.Error("expected name error in form")
	}
}
