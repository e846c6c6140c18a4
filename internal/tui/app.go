package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/config"
	"github.com/churrascometro/churrascometro/internal/database"
	"github.com/churrascometro/churrascometro/internal/services/planner"
	"github.com/churrascometro/churrascometro/internal/services/shopping"
	"github.com/churrascometro/churrascometro/internal/tui/components"
	budgetview "github.com/churrascometro/churrascometro/internal/tui/views/budget"
	calcview "github.com/churrascometro/churrascometro/internal/tui/views/calculator"
	checklistview "github.com/churrascometro/churrascometro/internal/tui/views/checklist"
	compareview "github.com/churrascometro/churrascometro/internal/tui/views/compare"
	historyview "github.com/churrascometro/churrascometro/internal/tui/views/history"
	pricesview "github.com/churrascometro/churrascometro/internal/tui/views/prices"
	tipsview "github.com/churrascometro/churrascometro/internal/tui/views/tips"
	"github.com/churrascometro/churrascometro/internal/util"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// chromeLines is the height of header, alert bar and footer.
const chromeLines = 6

// Module represents a view module in the application.
type Module string

const (
	ModuleCalculator Module = "calculator"
	ModuleChecklist  Module = "checklist"
	ModuleHistory    Module = "history"
	ModulePrices     Module = "prices"
	ModuleCompare    Module = "compare"
	ModuleBudget     Module = "budget"
	ModuleTips       Module = "tips"
	ModuleHelp       Module = "help"
)

// Alert is a message shown in the alert bar.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertError
)

// nameFormKind is what the calculator name prompt saves.
type nameFormKind int

const (
	saveEvent nameFormKind = iota + 1
	saveProfile
)

// App is the main Bubble Tea application model.
type App struct {
	db     *database.DB
	config *config.Config
	clock  util.Clock

	planner  *planner.Service
	shopping *shopping.Service

	calculatorView *calcview.View
	checklistView  *checklistview.View
	historyView    *historyview.View
	pricesView     *pricesview.View
	compareView    *compareview.View
	budgetView     *budgetview.View
	tipsView       *tipsview.View

	theme     *Theme
	keys      KeyMap
	width     int
	height    int
	ready     bool
	quitting  bool
	exportDir string

	showConfirm    bool
	currentModule  Module
	previousModule Module

	nameForm  *components.Form
	nameInput *components.Input
	nameKind  nameFormKind

	alerts []Alert
}

// New creates a new App instance.
func New(db *database.DB, cfg *config.Config) *App {
	palette := PaletteFor(cfg.Display.ColorScheme)
	plannerSvc := planner.NewService(db.DB)
	shoppingSvc := shopping.NewService(db.DB)

	exportDir := os.TempDir()
	if p := db.Path(); p != "" && p != ":memory:" {
		exportDir = filepath.Dir(p)
	}

	return &App{
		db:             db,
		config:         cfg,
		clock:          util.SystemClock{},
		planner:        plannerSvc,
		shopping:       shoppingSvc,
		calculatorView: calcview.NewView(plannerSvc, cfg.Event.Input(), palette),
		checklistView:  checklistview.NewView(shoppingSvc, palette),
		historyView:    historyview.NewView(plannerSvc, palette),
		pricesView:     pricesview.NewView(plannerSvc, palette),
		compareView:    compareview.NewView(shoppingSvc, palette),
		budgetView:     budgetview.NewView(plannerSvc, palette),
		tipsView:       tipsview.NewView(palette),
		theme:          NewTheme(cfg.Display.ColorScheme),
		keys:           DefaultKeyMap(),
		exportDir:      exportDir,
		currentModule:  ModuleCalculator,
	}
}

// WithClock replaces the time source of the app and its services.
func (a *App) WithClock(c util.Clock) *App {
	a.clock = c
	a.planner.WithClock(c)
	a.shopping.WithClock(c)
	return a
}

// SetExportDir sets where exported shopping lists are written.
func (a *App) SetExportDir(dir string) {
	a.exportDir = dir
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.load(ModuleCalculator)
}

// loadedMsg reports that a module fetched its data.
type loadedMsg struct {
	module Module
	err    error
}

// actionMsg reports the outcome of a user action.
type actionMsg struct {
	info string
	err  error
}

type eventSavedMsg struct {
	saved *planner.SavedEventResult
	err   error
}

type historyReloadedMsg struct {
	name  string
	input calculator.Input
	err   error
}

type exportedMsg struct {
	path string
	err  error
}

// loader returns the fetch function of a module, or nil for modules
// without data.
func (a *App) loader(m Module) func(context.Context) error {
	switch m {
	case ModuleCalculator:
		return a.calculatorView.Load
	case ModuleChecklist:
		return a.checklistView.Load
	case ModuleHistory:
		a.historyView.SetNow(a.clock.Now())
		return a.historyView.Load
	case ModulePrices:
		return a.pricesView.Load
	case ModuleCompare:
		return a.compareView.Load
	}
	return nil
}

// load fetches the data of a module.
func (a *App) load(m Module) tea.Cmd {
	fn := a.loader(m)
	if fn == nil {
		return nil
	}
	return func() tea.Msg {
		return loadedMsg{module: m, err: fn(context.Background())}
	}
}

// action runs fn, then refreshes the given modules, and reports info on
// success.
func (a *App) action(info string, fn func(context.Context) error, refresh ...Module) tea.Cmd {
	loaders := make([]func(context.Context) error, 0, len(refresh))
	for _, m := range refresh {
		if l := a.loader(m); l != nil {
			loaders = append(loaders, l)
		}
	}
	return func() tea.Msg {
		ctx := context.Background()
		if err := fn(ctx); err != nil {
			return actionMsg{err: err}
		}
		for _, l := range loaders {
			if err := l(ctx); err != nil {
				return actionMsg{err: err}
			}
		}
		return actionMsg{info: info}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resizeViews()
		return a, nil

	case loadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertWarning, fmt.Sprintf("Falha ao carregar %s: %v", msg.module, msg.err))
		}
		return a, nil

	case actionMsg:
		if msg.err != nil {
			a.AddAlert(AlertError, msg.err.Error())
		} else if msg.info != "" {
			a.AddAlert(AlertInfo, msg.info)
		}
		return a, nil

	case eventSavedMsg:
		if msg.err != nil {
			a.AddAlert(AlertError, "Falha ao salvar: "+msg.err.Error())
			return a, nil
		}
		a.AddAlert(AlertInfo, fmt.Sprintf("Churrasco \"%s\" salvo: %s",
			msg.saved.Event.Name, calculator.FormatCurrency(msg.saved.Event.TotalCost)))
		return a, nil

	case historyReloadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertError, "Falha ao carregar evento: "+msg.err.Error())
			return a, nil
		}
		a.calculatorView.SetInput(msg.input)
		a.currentModule = ModuleCalculator
		a.AddAlert(AlertInfo, "Evento carregado: "+msg.name)
		return a, a.load(ModuleCalculator)

	case exportedMsg:
		if msg.err != nil {
			a.AddAlert(AlertError, "Falha ao exportar: "+msg.err.Error())
		} else {
			a.AddAlert(AlertInfo, "Lista exportada para "+msg.path)
		}
		return a, nil
	}

	if a.currentModule == ModuleTips {
		return a, a.tipsView.Update(msg)
	}
	return a, nil
}

func (a *App) resizeViews() {
	a.tipsView.SetSize(ContentWidth(a.width, 40, MaxContentWidth), ContentHeight(a.height, chromeLines+4))
	a.pricesView.SetVisibleRows(ContentHeight(a.height, chromeLines+10))
}

// inputMode reports whether the current screen needs every key, so global
// single-letter bindings must not fire.
func (a *App) inputMode() bool {
	switch {
	case a.nameForm != nil:
		return true
	case a.currentModule == ModulePrices:
		return a.pricesView.Editing()
	case a.currentModule == ModuleCompare:
		return a.compareView.Editing()
	case a.currentModule == ModuleBudget:
		return true
	}
	return false
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// the quit confirmation is modal
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "s", "S", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
		}
		return a, nil
	}

	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	if m, ok := a.keys.ModuleFor(msg); ok && (msg.Type != tea.KeyRunes || !a.inputMode()) {
		return a, a.switchModule(m)
	}

	if a.nameForm != nil {
		return a.handleNameFormKeys(msg)
	}

	switch a.currentModule {
	case ModuleCalculator:
		return a.handleCalculatorKeys(msg)
	case ModuleChecklist:
		return a.handleChecklistKeys(msg)
	case ModuleHistory:
		return a.handleHistoryKeys(msg)
	case ModulePrices:
		return a.handlePricesKeys(msg)
	case ModuleCompare:
		return a.handleCompareKeys(msg)
	case ModuleBudget:
		return a.handleBudgetKeys(msg)
	case ModuleTips:
		return a, a.tipsView.Update(msg)
	case ModuleHelp:
		if a.keys.Back.Matches(msg) && a.previousModule != "" {
			a.currentModule = a.previousModule
			a.previousModule = ""
		}
	}
	return a, nil
}

func (a *App) switchModule(m Module) tea.Cmd {
	if m == ModuleHelp {
		if a.currentModule != ModuleHelp {
			a.previousModule = a.currentModule
		}
	}
	a.currentModule = m
	return a.load(m)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Acendendo a churrasqueira..."
	}

	if a.quitting {
		return a.theme.Title.Render("Até o próximo churrasco! 🔥")
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	contentHeight := ContentHeight(a.height, chromeLines)
	if a.showConfirm {
		b.WriteString(a.renderConfirmDialog(contentHeight))
	} else {
		b.WriteString(a.renderContent(contentHeight))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())
	return b.String()
}

func (a *App) renderHeader() string {
	title := fmt.Sprintf("🔥 CHURRASCÔMETRO v%s", Version)
	if GetBreakpoint(a.width) == BreakpointNarrow {
		return a.theme.Header.Render(title) + "\n" + a.theme.DrawDoubleLine(a.width)
	}
	in := a.calculatorView.Input()
	info := fmt.Sprintf("%d pessoas | %s", in.TotalParticipants(),
		calculator.FormatCurrency(a.calculatorView.Result().Totals.TotalCost))

	spacing := max(a.width-lipgloss.Width(title)-lipgloss.Width(info)-4, 1)
	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

func (a *App) renderAlertBar() string {
	now := a.clock.Now()
	timeStr := now.Format(a.config.Display.DateFormat + " " + a.config.Display.TimeFormat)

	alertText := a.theme.Muted.Render("Tudo pronto para o churrasco")
	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		switch alert.Level {
		case AlertError:
			alertText = a.theme.AlertErr.Render("ERRO: " + alert.Message)
		case AlertWarning:
			alertText = a.theme.AlertWarn.Render("AVISO: " + alert.Message)
		default:
			alertText = a.theme.Alert.Render(alert.Message)
		}
	}

	return a.theme.Value.Render(timeStr) + a.theme.StatusDivider.Render() + alertText
}

func (a *App) renderContent(height int) string {
	contentWidth := ContentWidth(a.width, 40, MaxContentWidth)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	return style.Render(lipgloss.NewStyle().Width(contentWidth).Render(a.moduleContent(contentWidth, height)))
}

func (a *App) moduleContent(width, height int) string {
	switch a.currentModule {
	case ModuleCalculator:
		if a.nameForm != nil {
			return a.nameForm.Render()
		}
		return a.calculatorView.Render(width, height)
	case ModuleChecklist:
		return a.checklistView.Render(width, height)
	case ModuleHistory:
		return a.historyView.Render(width, height)
	case ModulePrices:
		return a.pricesView.Render(width, height)
	case ModuleCompare:
		return a.compareView.Render(width, height)
	case ModuleBudget:
		return a.budgetView.Render(width, height)
	case ModuleTips:
		return a.tipsView.Render()
	default:
		return a.renderHelp(width)
	}
}

func (a *App) renderHelp(width int) string {
	var nav strings.Builder
	for _, mk := range a.keys.moduleKeys() {
		nav.WriteString(fmt.Sprintf("%-6s %s\n", strings.ToUpper(mk.key.Keys[0]), mk.key.Help))
	}
	nav.WriteString(fmt.Sprintf("%-6s %s", "F10", a.keys.F10.Help))

	controls := strings.Join([]string{
		"↑↓      Navegar",
		"←→      Ajustar contador",
		"Espaço  Alternar",
		"Enter   Selecionar/Salvar",
		"Tab     Próximo campo",
		"Esc     Voltar/Cancelar",
	}, "\n")

	w := min(width, 60)
	return a.theme.Title.Render("═══ AJUDA ═══") + "\n\n" +
		a.theme.Panel("Módulos", nav.String(), w) + "\n" +
		a.theme.Panel("Controles", controls, w) + "\n\n" +
		a.theme.Muted.Render("Esc para voltar")
}

func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("SAIR") + "\n\n" +
			a.theme.Base.Render("Deseja mesmo sair?") + "\n\n" +
			a.theme.Label.Render("[S]im  [N]ão"),
	)

	return lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(dialog)
}

func (a *App) renderFooter() string {
	return a.theme.DrawHorizontalLine(a.width) + "\n" + a.theme.Footer.Render(a.keys.StatusBarHelp())
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    a.clock.Now(),
	}}, a.alerts...)

	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// ClearAlerts removes all alerts.
func (a *App) ClearAlerts() {
	a.alerts = nil
}

// Run starts the TUI application.
func Run(ctx context.Context, db *database.DB, cfg *config.Config) error {
	app := New(db, cfg)

	p := tea.NewProgram(app, tea.WithAltScreen())

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
