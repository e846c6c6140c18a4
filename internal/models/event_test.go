package models

import (
	"testing"
	"time"

	"github.com/churrascometro/churrascometro/internal/calculator"
)

func TestSavedEvent_Validate(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		event   *SavedEvent
		wantErr bool
	}{
		{"Valid event", &SavedEvent{ID: "e1", Name: "Churrasco", Date: now, TotalCost: 100}, false},
		{"Missing ID", &SavedEvent{Name: "Churrasco", Date: now}, true},
		{"Missing name", &SavedEvent{ID: "e1", Date: now}, true},
		{"Missing date", &SavedEvent{ID: "e1", Name: "Churrasco"}, true},
		{"Negative cost", &SavedEvent{ID: "e1", Name: "Churrasco", Date: now, TotalCost: -1}, true},
		{"Negative guests", &SavedEvent{ID: "e1", Name: "Churrasco", Date: now, Config: calculator.Input{MeatAdults: -2}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("SavedEvent.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLastCalculation_Without(t *testing.T) {
	date := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	last := &LastCalculation{
		Items: []calculator.ListItem{
			{Key: "picanha", Price: 100},
			{Key: "cerveja", Price: 42},
			{Key: "gelo", Price: 8},
		},
		TotalCost: 150,
		Date:      date,
	}

	got := last.Without("cerveja")
	if len(got.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(got.Items))
	}
	if got.TotalCost != 108 {
		t.Errorf("TotalCost = %v, want 108", got.TotalCost)
	}
	if len(last.Items) != 3 {
		t.Error("Without() must not modify the receiver")
	}

	same := last.Without("missing")
	if len(same.Items) != 3 || same.TotalCost != 150 {
		t.Errorf("Without(missing) = %+v", same)
	}
}
