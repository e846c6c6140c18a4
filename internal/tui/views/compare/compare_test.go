package compare

import (
	"context"
	"strings"
	"testing"

	calc "github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/services/planner"
	"github.com/churrascometro/churrascometro/internal/services/shopping"
	"github.com/churrascometro/churrascometro/internal/testutil"
	"github.com/churrascometro/churrascometro/internal/tui/components"
)

type fixture struct {
	view     *View
	planner  *planner.Service
	shopping *shopping.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc := shopping.NewService(db.DB.DB)
	return fixture{
		view:     NewView(svc, components.EmberPalette()),
		planner:  planner.NewService(db.DB.DB),
		shopping: svc,
	}
}

func submitForm(t *testing.T, v *View, keys ...string) error {
	t.Helper()
	for _, k := range keys {
		v.HandleFormKey(k)
	}
	if !v.HandleFormKey("ctrl+s") {
		t.Fatal("expected form submitted")
	}
	return v.Submit(context.Background())
}

func TestView_EmptyRender(t *testing.T) {
	v := NewView(nil, components.EmberPalette())
	v.SetData(nil, nil)
	out := v.Render(120, 40)

	for _, want := range []string{"COMPARAR LOJAS", "Nenhuma loja cadastrada", "Salve um churrasco"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestView_SetDataOrdersByTotal(t *testing.T) {
	v := NewView(nil, components.EmberPalette())
	stores := []*models.Store{
		{ID: "a", Name: "Atacadão"},
		{ID: "b", Name: "Mercado do Bairro"},
	}
	v.SetData(stores, []calc.StoreTotal{
		{StoreID: "b", StoreName: "Mercado do Bairro", Total: 250, HasAllPrices: true, Cheapest: true},
		{StoreID: "a", StoreName: "Atacadão", Total: 280, Savings: 30},
	})

	if s := v.Selected(); s == nil || s.ID != "b" {
		t.Fatalf("expected cheapest store first, got %+v", s)
	}
	out := v.Render(120, 40)
	for _, want := range []string{"mais barato", "+R$ 30,00", "preços faltando"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestView_AddStoreWithoutList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := f.view.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	f.view.StartAdd()
	if !f.view.Editing() {
		t.Fatal("expected form open")
	}
	// without a list the form offers the whole catalog
	if len(f.view.fields) != len(calc.Catalog()) {
		t.Errorf("expected %d price fields, got %d", len(calc.Catalog()), len(f.view.fields))
	}

	err := submitForm(t, f.view, "A", "ç", "o", "u", "g", "u", "e", "tab", "8", "5", ",", "5", "0")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if f.view.Editing() {
		t.Error("expected form closed")
	}

	s := f.view.Selected()
	if s == nil || s.Name != "Açougue" {
		t.Fatalf("expected store Açougue, got %+v", s)
	}
	if got := s.Prices[calc.Catalog()[0].Key]; got != 85.5 {
		t.Errorf("expected first item priced 85.50, got %v", got)
	}
	if len(s.Prices) != 1 {
		t.Errorf("expected blank fields left out, got %v", s.Prices)
	}
}

func TestView_DuplicateStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.shopping.AddStore(ctx, "Atacadão", nil); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	if err := f.view.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	f.view.StartAdd()
	if err := submitForm(t, f.view, "a", "t", "a", "c", "a", "d", "ã", "o"); err == nil {
		t.Fatal("expected duplicate error")
	}
	if !f.view.Editing() {
		t.Fatal("expected form to stay open")
	}
	if !strings.Contains(f.view.Render(120, 40), "já existe uma loja com esse nome") {
		t.Error("expected duplicate message")
	}
}

func TestView_CompareWithList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.planner.SaveEvent(ctx, "Domingo", calc.Input{MeatAdults: 4, SelectedMeats: calc.DefaultSelectedMeats()}); err != nil {
		t.Fatalf("saving event: %v", err)
	}
	if _, err := f.shopping.AddStore(ctx, "Cara", map[string]float64{"picanha": 120}); err != nil {
		t.Fatalf("adding store: %v", err)
	}
	if _, err := f.shopping.AddStore(ctx, "Barata", map[string]float64{"picanha": 60}); err != nil {
		t.Fatalf("adding store: %v", err)
	}

	if err := f.view.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.view.noList {
		t.Fatal("expected the saved list to be found")
	}
	if s := f.view.Selected(); s == nil || s.Name != "Barata" {
		t.Fatalf("expected cheapest store first, got %+v", s)
	}

	// the edit form offers the list items and keeps known prices
	f.view.StartEdit()
	if len(f.view.fields) != len(f.view.items) {
		t.Errorf("expected one field per list item, got %d for %d", len(f.view.fields), len(f.view.items))
	}
	for _, fld := range f.view.fields {
		if fld.key == "picanha" && fld.input.Value() != "60,00" {
			t.Errorf("expected picanha prefilled with 60,00, got %q", fld.input.Value())
		}
	}
	f.view.HandleFormKey("esc")

	if err := f.view.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s := f.view.Selected(); s == nil || s.Name != "Cara" {
		t.Errorf("expected only Cara left, got %+v", s)
	}
}

func TestView_CheapestWithMissingPrices(t *testing.T) {
	v := NewView(nil, components.EmberPalette())
	stores := []*models.Store{{ID: "a", Name: "Atacadão"}}
	v.SetData(stores, []calc.StoreTotal{
		{StoreID: "a", StoreName: "Atacadão", Total: 200, Cheapest: true},
	})

	out := v.Render(120, 40)
	for _, want := range []string{"mais barato", "preços faltando"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestView_StorePricesSanitized(t *testing.T) {
	f := newFixture(t)
	if err := f.view.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	f.view.StartAdd()
	keys := []string{"L", "o", "j", "a", "tab", "1", "2", ".", "5", "0", "tab", "x", "y", "tab", "R", "$", " ", "9", ",", "9", "0"}
	if err := submitForm(t, f.view, keys...); err != nil {
		t.Fatalf("submit: %v", err)
	}

	s := f.view.Selected()
	if s == nil {
		t.Fatal("expected store saved")
	}
	catalog := calc.Catalog()
	if got := s.Prices[catalog[0].Key]; got != 12.5 {
		t.Errorf("%s price = %v, want 12.5", catalog[0].Key, got)
	}
	if _, ok := s.Prices[catalog[1].Key]; ok {
		t.Errorf("expected unparseable %s price left out", catalog[1].Key)
	}
	if got := s.Prices[catalog[2].Key]; got != 9.9 {
		t.Errorf("%s price = %v, want 9.9", catalog[2].Key, got)
	}
}
