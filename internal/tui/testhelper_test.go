package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/churrascometro/churrascometro/internal/config"
	"github.com/churrascometro/churrascometro/internal/database"
	"github.com/churrascometro/churrascometro/internal/database/seed"
	"github.com/churrascometro/churrascometro/internal/util"
)

var testNow = time.Date(2024, 6, 15, 15, 0, 0, 0, time.UTC)

// newTestDB opens a migrated in-memory database with the preset profiles.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.NewMigratedInMemory(ctx)
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := seed.NewGenerator(db.DB, seed.DefaultConfig()).Generate(ctx); err != nil {
		t.Fatalf("seeding test database: %v", err)
	}
	return db
}

// newTestApp creates an App backed by an in-memory database with a fixed
// clock. The window is set to 120x40 and marked ready.
func newTestApp(t *testing.T) *App {
	t.Helper()

	app := New(newTestDB(t), config.Default()).WithClock(util.NewFixedClock(testNow))
	app.SetExportDir(t.TempDir())
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	run(t, app, app.Init())
	return app
}

// run executes a command synchronously and feeds its message back into the
// app, following any command the update returns.
func run(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()

	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = app.Update(msg)
	}
}

// press sends a key and runs the resulting command.
func press(t *testing.T, app *App, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := app.Update(msg)
	run(t, app, cmd)
}

// typeText sends each rune as a key press.
func typeText(t *testing.T, app *App, text string) {
	t.Helper()
	for _, r := range text {
		press(t, app, keyMsg(string(r)))
	}
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	if key == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(key)}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}
