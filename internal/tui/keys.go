package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

func bind(help string, keys ...string) Key {
	return Key{Keys: keys, Help: help, Enabled: true}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}
	s := msg.String()
	for _, key := range k.Keys {
		if s == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// KeyMap defines the global key bindings. View-specific keys are handled
// by the views themselves.
type KeyMap struct {
	Quit Key
	Back Key

	F1  Key
	F2  Key
	F3  Key
	F4  Key
	F5  Key
	F6  Key
	F7  Key
	F9  Key
	F10 Key
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: bind("sair", "ctrl+c"),
		Back: bind("voltar", "esc"),

		F1:  bind("Calcular", "f1"),
		F2:  bind("Lista", "f2"),
		F3:  bind("Histórico", "f3"),
		F4:  bind("Preços", "f4"),
		F5:  bind("Comparar", "f5"),
		F6:  bind("Orçamento", "f6"),
		F7:  bind("Dicas", "f7"),
		F9:  bind("Ajuda", "f9", "?"),
		F10: bind("Sair", "f10"),
	}
}

// IsQuit checks if the key message is a quit command.
func (km KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return km.Quit.Matches(msg) || km.F10.Matches(msg)
}

type moduleKey struct {
	key    Key
	module Module
}

// moduleKeys pairs function keys with the module they open, in status bar
// order.
func (km KeyMap) moduleKeys() []moduleKey {
	return []moduleKey{
		{km.F1, ModuleCalculator},
		{km.F2, ModuleChecklist},
		{km.F3, ModuleHistory},
		{km.F4, ModulePrices},
		{km.F5, ModuleCompare},
		{km.F6, ModuleBudget},
		{km.F7, ModuleTips},
		{km.F9, ModuleHelp},
	}
}

// ModuleFor returns the module a function key opens.
func (km KeyMap) ModuleFor(msg tea.KeyMsg) (Module, bool) {
	for _, mk := range km.moduleKeys() {
		if mk.key.Matches(msg) {
			return mk.module, true
		}
	}
	return "", false
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp() string {
	var b strings.Builder
	for _, k := range append(km.moduleKeys(), moduleKey{key: km.F10}) {
		fmt.Fprintf(&b, "[%s]%s ", strings.ToUpper(k.key.Keys[0]), k.key.Help)
	}
	return strings.TrimSpace(b.String())
}
