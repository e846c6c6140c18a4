package components

import (
	"strings"
	"testing"
)

func typeInto(i *Input, text string) {
	for _, r := range text {
		i.HandleKey(string(r))
	}
}

func TestInput_RequiredValidation(t *testing.T) {
	input := NewInput("Nome").SetRequired(true)

	if input.Validate() {
		t.Error("expected validation to fail for empty required field")
	}
	if !strings.Contains(input.Render(), "Obrigatório") {
		t.Error("expected error in render")
	}

	input.SetValue("   ")
	if input.Validate() {
		t.Error("expected whitespace-only value to fail")
	}

	input.SetValue("Churrasco do Zé")
	if !input.Validate() {
		t.Error("expected validation to pass with value set")
	}
	if strings.Contains(input.Render(), "Obrigatório") {
		t.Error("expected error cleared")
	}
}

func TestInput_IgnoresKeysWhenUnfocused(t *testing.T) {
	input := NewInput("Nome")
	typeInto(input, "abc")

	if input.Value() != "" {
		t.Errorf("expected no input while unfocused, got %q", input.Value())
	}
}

func TestInput_Editing(t *testing.T) {
	input := NewInput("Nome")
	input.Focus(true)

	typeInto(input, "Pão")
	input.HandleKey(" ")
	typeInto(input, "alho")
	if input.Value() != "Pão alho" {
		t.Fatalf("expected %q, got %q", "Pão alho", input.Value())
	}

	// insert in the middle, counting runes
	for i := 0; i < 4; i++ {
		input.HandleKey("left")
	}
	typeInto(input, "de ")
	if input.Value() != "Pão de alho" {
		t.Fatalf("expected %q, got %q", "Pão de alho", input.Value())
	}

	input.HandleKey("home")
	input.HandleKey("delete")
	if input.Value() != "ão de alho" {
		t.Errorf("expected first rune deleted, got %q", input.Value())
	}

	input.HandleKey("end")
	input.HandleKey("backspace")
	if input.Value() != "ão de alh" {
		t.Errorf("expected last rune removed, got %q", input.Value())
	}
}

func TestInput_MaxLength(t *testing.T) {
	input := NewInput("Preço").SetMaxLength(4)
	input.Focus(true)
	typeInto(input, "123456")

	if input.Value() != "1234" {
		t.Errorf("expected value capped to 4 runes, got %q", input.Value())
	}

	input.SetValue("çççççç")
	if input.Value() != "çççç" {
		t.Errorf("expected SetValue capped to 4 runes, got %q", input.Value())
	}
}

func TestInput_RenderPlaceholder(t *testing.T) {
	input := NewInput("Nome").SetPlaceholder("Churrasco 15/06/2024")

	if !strings.Contains(input.Render(), "Churrasco 15/06/2024") {
		t.Error("expected placeholder when empty and unfocused")
	}

	input.Focus(true)
	if strings.Contains(input.Render(), "Churrasco 15/06/2024") {
		t.Error("expected placeholder hidden while focused")
	}
}

func TestSelect(t *testing.T) {
	sel := NewSelect("Cerveja", []string{"Não", "Sim"}).SetSelected(1)

	if sel.Value() != "Sim" {
		t.Errorf("expected Sim, got %q", sel.Value())
	}

	sel.HandleKey("left")
	if sel.SelectedIndex() != 1 {
		t.Error("expected unfocused select to ignore keys")
	}

	sel.Focus(true)
	sel.HandleKey("left")
	if sel.Value() != "Não" {
		t.Errorf("expected Não, got %q", sel.Value())
	}
	sel.HandleKey("left")
	if sel.SelectedIndex() != 0 {
		t.Error("expected left to stop at the first option")
	}

	sel.HandleKey(" ")
	sel.HandleKey(" ")
	if sel.SelectedIndex() != 0 {
		t.Errorf("expected space to wrap around, got %d", sel.SelectedIndex())
	}

	sel.SetSelected(5)
	if sel.SelectedIndex() != 0 {
		t.Error("expected out of range SetSelected ignored")
	}
}

func TestForm_Navigation(t *testing.T) {
	name := NewInput("Nome")
	price := NewInput("Preço")
	unit := NewSelect("Unidade", []string{"kg", "un"})

	form := NewForm("Novo item", EmberPalette())
	form.AddField(name).AddField(price).AddField(unit)

	if !name.IsFocused() {
		t.Fatal("expected first field focused")
	}

	form.HandleKey("tab")
	if !price.IsFocused() || name.IsFocused() {
		t.Error("expected focus on second field")
	}

	form.HandleKey("shift+tab")
	form.HandleKey("shift+tab")
	if !unit.IsFocused() {
		t.Error("expected focus to wrap to the last field")
	}

	form.HandleKey("up")
	form.HandleKey("up")
	typeInto(name, "Alcatra")
	if name.Value() != "Alcatra" {
		t.Errorf("expected keys routed to focused field, got %q", name.Value())
	}
}

func TestForm_Submit(t *testing.T) {
	first := NewInput("A")
	second := NewInput("B")
	form := NewForm("Teste", EmberPalette())
	form.AddField(first).AddField(second)

	form.HandleKey("enter")
	if form.IsSubmitted() {
		t.Fatal("expected enter on a middle field to advance")
	}
	if !second.IsFocused() {
		t.Fatal("expected enter to move focus")
	}

	form.HandleKey("enter")
	if !form.IsSubmitted() {
		t.Fatal("expected enter on the last field to submit")
	}

	form.Reopen("preço inválido")
	if form.IsSubmitted() {
		t.Error("expected Reopen to clear the submit state")
	}
	if !strings.Contains(form.Render(), "preço inválido") {
		t.Error("expected error in form render")
	}

	form.HandleKey("ctrl+s")
	if !form.IsSubmitted() {
		t.Error("expected ctrl+s to submit")
	}
}

func TestForm_Cancel(t *testing.T) {
	form := NewForm("Teste", EmberPalette())
	form.AddField(NewInput("A"))

	form.HandleKey("esc")
	if !form.IsCancelled() {
		t.Error("expected esc to cancel")
	}

	out := form.Render()
	if !strings.Contains(out, "=== Teste ===") {
		t.Error("expected title in render")
	}
}
