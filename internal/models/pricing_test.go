package models

import (
	"testing"
)

func TestPriceUnit_Valid(t *testing.T) {
	tests := []struct {
		unit PriceUnit
		want bool
	}{
		{PriceUnitKg, true},
		{PriceUnitPiece, true},
		{PriceUnitLiter, true},
		{PriceUnitPack, true},
		{PriceUnitBox, true},
		{PriceUnit(""), false},
		{PriceUnit("ton"), false},
	}

	for _, tt := range tests {
		if got := tt.unit.Valid(); got != tt.want {
			t.Errorf("PriceUnit(%q).Valid() = %v, want %v", tt.unit, got, tt.want)
		}
	}
}

func TestPriceCategories(t *testing.T) {
	want := []string{
		"🥩 Carnes",
		"🧀 Vegetariano",
		"🍚 Acompanhamentos",
		"🍺 Bebidas",
		"🔥 Extras",
		"📦 Meus Itens",
	}
	got := PriceCategories()
	if len(got) != len(want) {
		t.Fatalf("PriceCategories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PriceCategories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCustomItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    *CustomItem
		wantErr bool
	}{
		{"Valid item", &CustomItem{Key: "custom_1", Label: "Cupim", Price: 39.9, Unit: PriceUnitKg, Category: CategoryMyItems}, false},
		{"Missing key", &CustomItem{Label: "Cupim", Price: 39.9, Unit: PriceUnitKg}, true},
		{"Short label", &CustomItem{Key: "custom_1", Label: "C", Price: 39.9, Unit: PriceUnitKg}, true},
		{"Zero price", &CustomItem{Key: "custom_1", Label: "Cupim", Unit: PriceUnitKg}, true},
		{"Bad unit", &CustomItem{Key: "custom_1", Label: "Cupim", Price: 10, Unit: "ton"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("CustomItem.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStore_Validate(t *testing.T) {
	tests := []struct {
		name    string
		store   *Store
		wantErr bool
	}{
		{"Valid store", &Store{ID: "store_1", Name: "Atacadão"}, false},
		{"Missing ID", &Store{Name: "Atacadão"}, true},
		{"Short name", &Store{ID: "store_1", Name: "A"}, true},
		{"Long name", &Store{ID: "store_1", Name: "Supermercado Muito Longo Demais Mesmo"}, true},
		{"Negative price", &Store{ID: "store_1", Name: "Extra", Prices: map[string]float64{"picanha": -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.store.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Store.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPagination(t *testing.T) {
	p := Pagination{Page: 3, PageSize: 10}
	if got := p.Offset(); got != 20 {
		t.Errorf("Offset() = %d, want 20", got)
	}
	if got := p.TotalPages(25); got != 3 {
		t.Errorf("TotalPages(25) = %d, want 3", got)
	}
	if got := (Pagination{PageSize: 500}).Limit(); got != 100 {
		t.Errorf("Limit() = %d, want 100", got)
	}
}
