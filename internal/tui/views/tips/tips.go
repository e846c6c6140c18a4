// Package tips provides the barbecue tips view.
package tips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/churrascometro/churrascometro/internal/tui/components"
)

// Tip is one piece of grilling advice.
type Tip struct {
	Icon  string
	Title string
	Text  string
}

// Tips returns the tips in display order.
func Tips() []Tip {
	return []Tip{
		{"🌡️", "Temperatura da Carne", "Retire a carne da geladeira 30 minutos antes de assar. Carne gelada cozinha de forma desigual e fica dura por fora e crua por dentro."},
		{"🔥", "Preparando o Carvão", "Use um acendedor de carvão ao invés de álcool. Deixe o carvão queimar até formar uma camada de cinza branca antes de começar a assar."},
		{"⏱️", "Paciência é Fundamental", "Não fique virando a carne a todo momento. Deixe selar de um lado antes de virar. A picanha leva cerca de 25-30 minutos dependendo do ponto."},
		{"🧂", "Sal Grosso", "Sal grosso deve ser aplicado pouco antes de assar. Se salgar muito antes, a carne pode perder água e ficar seca."},
		{"🔪", "Corte Correto", "Sempre corte a carne contra as fibras. Isso deixa a carne mais macia e fácil de mastigar."},
		{"😴", "Descanso da Carne", "Após retirar do fogo, deixe a carne descansar por 5 minutos antes de cortar. Isso permite que os sucos se redistribuam."},
		{"🍺", "Cerveja Gelada", "A temperatura ideal da cerveja é entre 2°C e 5°C. Use bastante gelo e mantenha as garrafas/latas bem enterradas."},
		{"🥗", "Opções Vegetarianas", "Queijo coalho, abacaxi, cogumelos portobello e legumes grelhados são ótimas opções para vegetarianos no churrasco."},
		{"📍", "Posição da Brasa", "Mantenha a brasa mais forte de um lado da churrasqueira. Assim você pode mover as carnes conforme o ponto desejado."},
		{"📋", "Ordem das Carnes", "Comece pelas carnes que levam mais tempo: costela e cupim. Linguiça e picanha vão depois. Frango e coração por último."},
	}
}

// View shows the tips in a scrollable viewport.
type View struct {
	styles   components.Styles
	viewport viewport.Model
	width    int
}

// NewView creates a tips view.
func NewView(p components.Palette) *View {
	v := &View{styles: p.Styles()}
	v.SetSize(80, 20)
	return v
}

// SetSize resizes the viewport and re-wraps the content.
func (v *View) SetSize(width, height int) {
	offset := v.viewport.YOffset
	v.width = max(width, 20)
	v.viewport = viewport.New(v.width, max(height, 3))
	v.viewport.SetContent(v.content())
	v.viewport.SetYOffset(offset)
}

func (v *View) content() string {
	wrap := lipgloss.NewStyle().Width(v.width - 4)
	var b strings.Builder
	b.WriteString(v.styles.Muted.Render("Aprenda os segredos para um churrasco perfeito"))
	b.WriteString("\n\n")
	for i, t := range Tips() {
		b.WriteString(v.styles.Section.Render(fmt.Sprintf("%s %d. %s", t.Icon, i+1, t.Title)))
		b.WriteString("\n")
		b.WriteString(v.styles.Value.Render(wrap.Render("  " + t.Text)))
		b.WriteString("\n\n")
	}
	b.WriteString(v.styles.Title.Render("🥩 Bom churrasco para você! 🔥"))
	return b.String()
}

// Update scrolls the viewport.
func (v *View) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

// AtTop reports whether the viewport shows the first line.
func (v *View) AtTop() bool {
	return v.viewport.AtTop()
}

// Render renders the tips with a scroll indicator.
func (v *View) Render() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("═══ DICAS DE CHURRASCO ═══"))
	b.WriteString("\n\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(fmt.Sprintf("↑↓/PgUp/PgDn:Rolar  %3.0f%%", v.viewport.ScrollPercent()*100)))
	return b.String()
}
