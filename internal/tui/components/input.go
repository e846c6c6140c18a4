package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

const labelWidth = 18

// Input is a single line text input. It edits runes, so accented names
// behave.
type Input struct {
	label       string
	value       []rune
	placeholder string
	width       int
	focused     bool
	cursorPos   int
	maxLength   int
	required    bool
	err         string
	styles      Styles
}

// NewInput creates a new input field.
func NewInput(label string) *Input {
	return &Input{
		label:     label,
		width:     20,
		maxLength: 100,
		styles:    EmberPalette().Styles(),
	}
}

// SetValue sets the input value.
func (i *Input) SetValue(v string) *Input {
	i.value = []rune(v)
	if len(i.value) > i.maxLength {
		i.value = i.value[:i.maxLength]
	}
	i.cursorPos = len(i.value)
	return i
}

// SetPlaceholder sets the placeholder text.
func (i *Input) SetPlaceholder(p string) *Input {
	i.placeholder = p
	return i
}

// SetWidth sets the input width.
func (i *Input) SetWidth(w int) *Input {
	i.width = w
	return i
}

// SetMaxLength sets the maximum input length in characters.
func (i *Input) SetMaxLength(m int) *Input {
	i.maxLength = m
	return i
}

// SetRequired marks the field as required.
func (i *Input) SetRequired(r bool) *Input {
	i.required = r
	return i
}

// SetError sets an error message.
func (i *Input) SetError(e string) *Input {
	i.err = e
	return i
}

// SetStyles sets the render styles.
func (i *Input) SetStyles(s Styles) {
	i.styles = s
}

// Focus sets the focus state.
func (i *Input) Focus(focused bool) {
	i.focused = focused
	if i.cursorPos > len(i.value) {
		i.cursorPos = len(i.value)
	}
}

// IsFocused returns the focus state.
func (i *Input) IsFocused() bool {
	return i.focused
}

// Value returns the current value.
func (i *Input) Value() string {
	return string(i.value)
}

// HandleKey handles a key press.
func (i *Input) HandleKey(key string) {
	if !i.focused {
		return
	}

	switch key {
	case "backspace":
		if i.cursorPos > 0 {
			i.value = append(i.value[:i.cursorPos-1], i.value[i.cursorPos:]...)
			i.cursorPos--
		}
	case "delete":
		if i.cursorPos < len(i.value) {
			i.value = append(i.value[:i.cursorPos], i.value[i.cursorPos+1:]...)
		}
	case "left":
		if i.cursorPos > 0 {
			i.cursorPos--
		}
	case "right":
		if i.cursorPos < len(i.value) {
			i.cursorPos++
		}
	case "home", "ctrl+a":
		i.cursorPos = 0
	case "end", "ctrl+e":
		i.cursorPos = len(i.value)
	case " ":
		i.insert(' ')
	default:
		if utf8.RuneCountInString(key) == 1 {
			r, _ := utf8.DecodeRuneInString(key)
			i.insert(r)
		}
	}
}

func (i *Input) insert(r rune) {
	if len(i.value) >= i.maxLength {
		return
	}
	i.value = append(i.value[:i.cursorPos], append([]rune{r}, i.value[i.cursorPos:]...)...)
	i.cursorPos++
}

// Validate validates the input.
func (i *Input) Validate() bool {
	if i.required && strings.TrimSpace(i.Value()) == "" {
		i.err = "Obrigatório"
		return false
	}
	i.err = ""
	return true
}

// Render renders the input field.
func (i *Input) Render() string {
	label := i.label
	if i.required {
		label += "*"
	}
	label += ":"

	var display string
	switch {
	case len(i.value) == 0 && i.placeholder != "" && !i.focused:
		display = i.styles.Muted.Render(i.placeholder)
	case i.focused:
		before := string(i.value[:i.cursorPos])
		after := string(i.value[i.cursorPos:])
		display = i.styles.Focus.Render(before + "_" + after)
	default:
		display = i.styles.Value.Render(i.Value())
	}

	if pad := i.width - lipgloss.Width(display); pad > 0 {
		display += strings.Repeat(" ", pad)
	}

	result := i.styles.Label.Width(labelWidth).Render(label) + " " + display
	if i.err != "" {
		result += " " + i.styles.Error.Render(i.err)
	}
	return result
}

// Select is a selection input component.
type Select struct {
	label    string
	options  []string
	selected int
	focused  bool
	styles   Styles
}

// NewSelect creates a new select input.
func NewSelect(label string, options []string) *Select {
	return &Select{
		label:   label,
		options: options,
		styles:  EmberPalette().Styles(),
	}
}

// SetSelected sets the selected index.
func (s *Select) SetSelected(idx int) *Select {
	if idx >= 0 && idx < len(s.options) {
		s.selected = idx
	}
	return s
}

// SetStyles sets the render styles.
func (s *Select) SetStyles(st Styles) {
	s.styles = st
}

// Focus sets the focus state.
func (s *Select) Focus(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state.
func (s *Select) IsFocused() bool {
	return s.focused
}

// Value returns the selected value.
func (s *Select) Value() string {
	if s.selected >= 0 && s.selected < len(s.options) {
		return s.options[s.selected]
	}
	return ""
}

// SelectedIndex returns the selected index.
func (s *Select) SelectedIndex() int {
	return s.selected
}

// HandleKey handles a key press.
func (s *Select) HandleKey(key string) {
	if !s.focused {
		return
	}

	switch key {
	case "left", "h":
		if s.selected > 0 {
			s.selected--
		}
	case "right", "l", " ":
		if s.selected < len(s.options)-1 {
			s.selected++
		} else if key == " " {
			s.selected = 0
		}
	}
}

// Render renders the select.
func (s *Select) Render() string {
	var b strings.Builder
	b.WriteString(s.styles.Label.Width(labelWidth).Render(s.label + ":"))
	b.WriteString(" ")

	for i, opt := range s.options {
		if i > 0 {
			b.WriteString(" ")
		}
		switch {
		case i == s.selected && s.focused:
			b.WriteString(s.styles.Focus.Render("[" + opt + "]"))
		case i == s.selected:
			b.WriteString(s.styles.Value.Render("(" + opt + ")"))
		default:
			b.WriteString(s.styles.Muted.Render(" " + opt + " "))
		}
	}
	return b.String()
}

// FormField is a focusable form component.
type FormField interface {
	Focus(bool)
	IsFocused() bool
	HandleKey(string)
	Render() string
	SetStyles(Styles)
}

var (
	_ FormField = (*Input)(nil)
	_ FormField = (*Select)(nil)
)

// Form is a vertical list of fields with submit and cancel.
type Form struct {
	title      string
	fields     []FormField
	focusIndex int
	submitted  bool
	cancelled  bool
	err        string
	styles     Styles
}

// NewForm creates a new form.
func NewForm(title string, p Palette) *Form {
	return &Form{
		title:  title,
		styles: p.Styles(),
	}
}

// AddField adds a field to the form.
func (f *Form) AddField(field FormField) *Form {
	field.SetStyles(f.styles)
	f.fields = append(f.fields, field)
	if len(f.fields) == 1 {
		field.Focus(true)
	}
	return f
}

// HandleKey handles form navigation. Enter on the last field submits.
func (f *Form) HandleKey(key string) {
	switch key {
	case "tab", "down":
		f.moveFocus(1)
	case "shift+tab", "up":
		f.moveFocus(-1)
	case "ctrl+s":
		f.submitted = true
	case "esc":
		f.cancelled = true
	case "enter":
		if f.focusIndex == len(f.fields)-1 {
			f.submitted = true
		} else {
			f.moveFocus(1)
		}
	default:
		if f.focusIndex < len(f.fields) {
			f.fields[f.focusIndex].HandleKey(key)
		}
	}
}

// moveFocus shifts focus by delta fields, wrapping at both ends.
func (f *Form) moveFocus(delta int) {
	n := len(f.fields)
	if n == 0 {
		return
	}
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex = ((f.focusIndex+delta)%n + n) % n
	f.fields[f.focusIndex].Focus(true)
}

// IsSubmitted returns true if form was submitted.
func (f *Form) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if form was cancelled.
func (f *Form) IsCancelled() bool {
	return f.cancelled
}

// Reopen clears the submitted flag after a failed save so the user can
// correct the values.
func (f *Form) Reopen(err string) {
	f.submitted = false
	f.err = err
}

// Render renders the form.
func (f *Form) Render() string {
	var b strings.Builder

	b.WriteString(f.styles.Title.Render(fmt.Sprintf("=== %s ===", f.title)))
	b.WriteString("\n\n")

	for _, field := range f.fields {
		b.WriteString(field.Render())
		b.WriteString("\n")
	}

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(f.styles.Error.Render("Erro: " + f.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(f.styles.Help.Render("Tab:Próximo  Shift+Tab:Anterior  Enter/Ctrl+S:Salvar  Esc:Cancelar"))
	return b.String()
}
