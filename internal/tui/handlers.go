package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/churrascometro/churrascometro/internal/util"
)

// ============================================================================
// CALCULATOR
// ============================================================================

func (a *App) handleCalculatorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := a.calculatorView
	switch msg.String() {
	case "up", "k":
		v.MoveUp()
	case "down", "j":
		v.MoveDown()
	case "left", "h", "-":
		v.Decrement()
	case "right", "l", "+":
		v.Increment()
	case " ", "enter":
		v.Toggle()
	case "r":
		v.Reset()
	case "s":
		if v.Input().TotalParticipants() == 0 {
			a.AddAlert(AlertWarning, "Informe ao menos um convidado")
			return a, nil
		}
		a.openNameForm(saveEvent)
	case "p":
		if v.Input().TotalParticipants() == 0 {
			a.AddAlert(AlertWarning, "Informe ao menos um convidado")
			return a, nil
		}
		a.openNameForm(saveProfile)
	case "P":
		if p := v.NextProfile(); p != nil {
			a.AddAlert(AlertInfo, "Perfil aplicado: "+p.Icon+" "+p.Name)
		}
	case "D":
		p := v.SelectedProfile()
		if p == nil || p.Preset {
			a.AddAlert(AlertWarning, "Só perfis personalizados podem ser apagados")
			return a, nil
		}
		return a, a.action("Perfil apagado: "+p.Name, func(ctx context.Context) error {
			return a.planner.DeleteProfile(ctx, p.ID)
		}, ModuleCalculator)
	case "x":
		return a, a.export("lista-churrasco", v.ShareText())
	}
	return a, nil
}

func (a *App) openNameForm(kind nameFormKind) {
	title, placeholder, required := "Salvar churrasco", "Churrasco "+util.FormatDate(a.clock.Now()), false
	if kind == saveProfile {
		title, placeholder, required = "Salvar perfil", "Meu churrasco", true
	}
	a.nameForm, a.nameInput = a.calculatorView.NewNameForm(title, placeholder, required)
	a.nameKind = kind
}

func (a *App) handleNameFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.nameForm.HandleKey(msg.String())
	if a.nameForm.IsCancelled() {
		a.nameForm = nil
		return a, nil
	}
	if !a.nameForm.IsSubmitted() {
		return a, nil
	}
	if !a.nameInput.Validate() {
		a.nameForm.Reopen("")
		return a, nil
	}

	name := a.nameInput.Value()
	in := a.calculatorView.Input()
	kind := a.nameKind
	a.nameForm = nil

	if kind == saveProfile {
		return a, a.action("Perfil salvo: "+name, func(ctx context.Context) error {
			_, err := a.planner.SaveProfile(ctx, name, in)
			return err
		}, ModuleCalculator)
	}
	return a, func() tea.Msg {
		saved, err := a.planner.SaveEvent(context.Background(), name, in)
		return eventSavedMsg{saved: saved, err: err}
	}
}

// export writes text to a timestamped file in the export directory.
func (a *App) export(prefix, text string) tea.Cmd {
	if text == "" {
		a.AddAlert(AlertWarning, "Nada para exportar")
		return nil
	}
	name := fmt.Sprintf("%s-%s.txt", prefix, a.clock.Now().Format("20060102-150405"))
	path := filepath.Join(a.exportDir, name)
	return func() tea.Msg {
		if err := os.MkdirAll(a.exportDir, 0750); err != nil {
			return exportedMsg{err: err}
		}
		if err := os.WriteFile(path, []byte(text), 0640); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

// ============================================================================
// CHECKLIST
// ============================================================================

func (a *App) handleChecklistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := a.checklistView
	switch msg.String() {
	case "up", "k":
		v.MoveUp()
	case "down", "j":
		v.MoveDown()
	case " ", "enter":
		return a, a.action("", v.Toggle)
	case "d", "delete":
		if it := v.Selected(); it != nil {
			return a, a.action("Item removido: "+it.Label, v.Remove)
		}
	case "c":
		return a, a.action("Marcas limpas", v.Clear)
	case "m":
		v.ToggleMode()
		return a, a.load(ModuleChecklist)
	case "x":
		return a, a.export("lista-compras", v.ShareText())
	}
	return a, nil
}

// ============================================================================
// HISTORY
// ============================================================================

func (a *App) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := a.historyView
	switch msg.String() {
	case "up", "k":
		v.MoveUp()
	case "down", "j":
		v.MoveDown()
	case "enter":
		if v.Selected() == nil {
			return a, nil
		}
		return a, func() tea.Msg {
			e, in, err := v.Reload(context.Background())
			if err != nil {
				return historyReloadedMsg{err: err}
			}
			return historyReloadedMsg{name: e.Name, input: in}
		}
	case "d", "delete":
		if e := v.Selected(); e != nil {
			return a, a.action("Evento apagado: "+e.Name, v.Delete)
		}
	case "C":
		return a, a.action("Histórico limpo", v.Clear)
	}
	return a, nil
}

// ============================================================================
// PRICES
// ============================================================================

func (a *App) handlePricesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := a.pricesView
	if v.Editing() {
		if v.HandleFormKey(msg.String()) {
			return a, a.action("Preço salvo", v.Submit, ModuleCalculator)
		}
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		v.MoveUp()
	case "down", "j":
		v.MoveDown()
	case "enter", "e":
		v.StartEdit()
	case "a":
		v.StartAdd()
	case "r":
		return a, a.action("Preço restaurado", v.Reset, ModuleCalculator)
	case "R":
		return a, a.action("Preços restaurados", v.ResetAll, ModuleCalculator)
	case "d", "delete":
		e := v.Selected()
		if e == nil || !e.Custom {
			a.AddAlert(AlertWarning, "Só itens personalizados podem ser apagados")
			return a, nil
		}
		return a, a.action("Item apagado: "+e.Label, func(ctx context.Context) error {
			_, err := v.DeleteCustom(ctx)
			return err
		})
	}
	return a, nil
}

// ============================================================================
// COMPARE
// ============================================================================

func (a *App) handleCompareKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := a.compareView
	if v.Editing() {
		if v.HandleFormKey(msg.String()) {
			return a, a.action("Loja salva", v.Submit)
		}
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		v.MoveUp()
	case "down", "j":
		v.MoveDown()
	case "a":
		v.StartAdd()
	case "enter", "e":
		v.StartEdit()
	case "d", "delete":
		if s := v.Selected(); s != nil {
			return a, a.action("Loja apagada: "+s.Name, v.Delete)
		}
	}
	return a, nil
}

// ============================================================================
// BUDGET
// ============================================================================

func (a *App) handleBudgetKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := a.budgetView
	if msg.String() == "ctrl+p" {
		r := v.Result()
		if r == nil {
			return a, nil
		}
		a.calculatorView.SetInput(r.Input)
		a.currentModule = ModuleCalculator
		a.AddAlert(AlertInfo, fmt.Sprintf("Sugestão aplicada: %d pessoas", r.Suggestion.TotalPeople))
		return a, a.load(ModuleCalculator)
	}

	if v.HandleKey(msg.String()) {
		return a, a.action("", v.Submit)
	}
	return a, nil
}
