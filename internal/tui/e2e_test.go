package tui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/churrascometro/churrascometro/internal/config"
	"github.com/churrascometro/churrascometro/internal/util"
)

// newE2EApp creates an App for end-to-end testing via teatest.
// Unlike newTestApp, this does NOT pre-configure width/height/ready
// since teatest sends WindowSizeMsg via WithInitialTermSize.
func newE2EApp(t *testing.T) *App {
	t.Helper()

	app := New(newTestDB(t), config.Default()).WithClock(util.NewFixedClock(testNow))
	app.SetExportDir(t.TempDir())
	return app
}

// waitFor is a convenience wrapper around teatest.WaitFor with a standard
// timeout. Every text must show up in the output read by this one call:
// WaitFor consumes what it reads, so a second call never sees a frame the
// first one already matched.
func waitFor(t *testing.T, tm *teatest.TestModel, texts ...string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		plain := []byte(ansi.Strip(string(bts)))
		for _, text := range texts {
			if !bytes.Contains(plain, []byte(text)) {
				return false
			}
		}
		return true
	}, teatest.WithDuration(5*time.Second))
}

func newTestModel(t *testing.T) *teatest.TestModel {
	t.Helper()
	tm := teatest.NewTestModel(t, newE2EApp(t), teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })
	return tm
}

// --- End-to-end tests ---
// These launch the real Bubble Tea program in a headless virtual terminal,
// send actual keystrokes, and assert on the rendered screen output.

func TestE2E_CalculatorOnStartup(t *testing.T) {
	tm := newTestModel(t)
	waitFor(t, tm, "CHURRASCÔMETRO", "Informe os convidados")
}

func TestE2E_NavigateToHistory(t *testing.T) {
	tm := newTestModel(t)
	waitFor(t, tm, "CHURRASCÔMETRO")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "Nenhum churrasco salvo ainda")
}

func TestE2E_NavigateToTips(t *testing.T) {
	tm := newTestModel(t)

	tm.Send(tea.KeyMsg{Type: tea.KeyF7})
	waitFor(t, tm, "DICAS DE CHURRASCO")
}

func TestE2E_NavigateToPrices(t *testing.T) {
	tm := newTestModel(t)

	tm.Send(tea.KeyMsg{Type: tea.KeyF4})
	waitFor(t, tm, "Picanha")
}

func TestE2E_AddGuests(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t), teatest.WithInitialTermSize(120, 40))
	waitFor(t, tm, "Informe os convidados")

	for i := 0; i < 4; i++ {
		tm.Send(tea.KeyMsg{Type: tea.KeyRight})
	}
	waitFor(t, tm, "4 pessoas", "Total:")

	if err := tm.Quit(); err != nil {
		t.Fatal(err)
	}
	app, ok := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second)).(*App)
	if !ok {
		t.Fatal("expected *App as final model")
	}
	if got := app.calculatorView.Input().MeatAdults; got != 4 {
		t.Errorf("MeatAdults = %d, want 4", got)
	}
}

func TestE2E_SaveEventAndOpenHistory(t *testing.T) {
	tm := newTestModel(t)
	waitFor(t, tm, "Informe os convidados")

	tm.Send(tea.KeyMsg{Type: tea.KeyRight})
	tm.Send(tea.KeyMsg{Type: tea.KeyRight})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	waitFor(t, tm, "Salvar churrasco")

	tm.Type("Domingo")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "salvo")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "Domingo")
}

func TestE2E_QuitConfirmation(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t), teatest.WithInitialTermSize(120, 40))
	waitFor(t, tm, "CHURRASCÔMETRO")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	waitFor(t, tm, "Deseja mesmo sair?")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	app, ok := m.(*App)
	if !ok {
		t.Fatal("expected *App as final model")
	}
	if !app.quitting {
		t.Error("expected app to be quitting")
	}
}

func TestE2E_QuitCancel(t *testing.T) {
	tm := newTestModel(t)
	waitFor(t, tm, "CHURRASCÔMETRO")

	tm.Send(tea.KeyMsg{Type: tea.KeyF10})
	waitFor(t, tm, "Deseja mesmo sair?")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	tm.Send(tea.KeyMsg{Type: tea.KeyF5})
	waitFor(t, tm, "Nenhuma loja cadastrada")
}
