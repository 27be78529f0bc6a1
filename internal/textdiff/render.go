package textdiff

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	gutterStyle  = lipgloss.NewStyle().Faint(true)
)

func styleFor(k Kind) lipgloss.Style {
	switch k {
	case Added:
		return addedStyle
	case Removed:
		return removedStyle
	default:
		return lipgloss.NewStyle()
	}
}

// FormatUnified renders the diff with markers, colored when styled is set.
func FormatUnified(lines []Line, styled bool) string {
	if !styled {
		return Unified(lines)
	}
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(styleFor(l.Kind).Render(l.Kind.Prefix() + l.Text))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatSplit renders rows as two columns of the given total width, each
// with a line number gutter.
func FormatSplit(rows []Row, width int, styled bool) string {
	col := max((width-3)/2, 20)
	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString(cell(r.Left, col, true, styled))
		sb.WriteString(" | ")
		sb.WriteString(strings.TrimRight(cell(r.Right, col, false, styled), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cell(l *Line, width int, left, styled bool) string {
	const gutter = 5
	if l == nil {
		return strings.Repeat(" ", width)
	}

	no := l.NewNo
	if left {
		no = l.OldNo
	}
	num := fmt.Sprintf("%4d ", no)
	text := fit(l.Kind.Prefix()+l.Text, width-gutter)
	if !styled {
		return num + text
	}
	return gutterStyle.Render(num) + styleFor(l.Kind).Render(text)
}

// fit truncates or pads s to exactly n runes.
func fit(s string, n int) string {
	c := utf8.RuneCountInString(s)
	if c > n {
		r := []rune(s)
		return string(r[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-c)
}
