package game

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/devkit/internal/revert"
)

// Status lines.
const (
	StatusNew      = "¡Nuevo personaje!"
	StatusRevealed = "¡Revelado!"
	StatusReset    = "Juego reiniciado"
	hiddenItem     = "???"
	startHint      = `Presiona "espacio" para comenzar`
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e94560"))
	itemStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e94560")).Padding(1, 4)
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#0f3460")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#3b82f6")).Padding(0, 1)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#aaaaaa"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f43f5e"))
)

// statusTickMsg asks the model to redraw after the status reverted.
type statusTickMsg struct{}

// Model is the bubbletea model of the game.
type Model struct {
	game   *Game
	status *revert.Value[string]
	delay  time.Duration
	cursor int
	err    error
}

// NewModel wraps g in a TUI. Transient status lines clear after delay.
func NewModel(g *Game, delay time.Duration) *Model {
	return &Model{
		game:   g,
		status: revert.New("", delay),
		delay:  delay,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Status returns the transient status line.
func (m *Model) Status() string {
	return m.status.Get()
}

func (m *Model) flash(s string) tea.Cmd {
	m.status.Set(s)
	// Redraw slightly after the revert fires.
	return tea.Tick(m.delay+50*time.Millisecond, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusTickMsg:
		return m, nil
	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.status.Stop()
			return m, tea.Quit
		case " ", "enter":
			if _, err := m.game.Draw(); err != nil {
				m.err = err
				return m, nil
			}
			return m, m.flash(StatusNew)
		case "r":
			if _, ok := m.game.Current(); ok && !m.game.Revealed() {
				m.game.Reveal()
				return m, m.flash(StatusRevealed)
			}
		case "x":
			m.game.Reset()
			return m, m.flash(StatusReset)
		case "tab":
			cats := Categories()
			m.cursor = (m.cursor + 1) % len(cats)
			_ = m.game.Select(cats[m.cursor].Name)
		case "1", "2", "3", "4", "5":
			i := int(msg.String()[0] - '1')
			cats := Categories()
			if i < len(cats) {
				_ = m.game.Toggle(cats[i].Name)
			}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Hedbanz - Adivina Quién"))
	b.WriteString("\n\n")

	tags := make([]string, 0, len(builtin))
	for i, c := range builtin {
		label := fmt.Sprintf("%d %s (%d)", i+1, c.Name, len(c.Items))
		if m.game.IsSelected(c.Name) {
			tags = append(tags, selectedStyle.Render(label))
		} else {
			tags = append(tags, categoryStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(tags, " "))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Total: %d  Restantes: %d\n\n", m.game.Total(), m.game.Remaining())

	if e, ok := m.game.Current(); ok {
		b.WriteString(categoryStyle.Render(e.Category))
		b.WriteString("\n")
		item := hiddenItem
		if m.game.Revealed() {
			item = e.Item
		}
		b.WriteString(itemStyle.Render(item))
	} else {
		b.WriteString(mutedStyle.Render(startHint))
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if s := m.status.Get(); s != "" {
		b.WriteString(statusStyle.Render(s))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("espacio: siguiente · r: revelar · x: reiniciar · tab: categoría · 1-5: alternar · q: salir"))
	b.WriteString("\n")
	return b.String()
}
