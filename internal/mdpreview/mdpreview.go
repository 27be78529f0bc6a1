// Package mdpreview renders GitHub-flavored Markdown to sanitized HTML or
// to styled terminal output, and re-renders a file when it changes.
package mdpreview

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultWidth is the word wrap width of terminal rendering.
const DefaultWidth = 80

// ErrUnknownViewMode is returned by ParseViewMode.
var ErrUnknownViewMode = errors.New("unknown view mode")

// ViewMode selects what the preview shows.
type ViewMode string

// View modes.
const (
	// ViewSplit shows the source followed by the rendered output.
	ViewSplit ViewMode = "split"
	// ViewPreview shows only the rendered output.
	ViewPreview ViewMode = "preview"
	// ViewEdit shows only the source.
	ViewEdit ViewMode = "edit"
)

// ParseViewMode validates a view mode name.
func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ViewSplit, ViewPreview, ViewEdit:
		return m, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownViewMode, s)
}

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	policy = newPolicy()
)

// newPolicy allows user generated content plus the disabled checkboxes
// produced for task lists.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("type").Matching(bluemonday.SpaceSeparatedTokens).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return p
}

// Render converts Markdown to HTML. Raw HTML in the source is kept but
// passed through a sanitizer, so scripts and event handlers never survive.
func Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

// RenderTerminal renders Markdown with ANSI styling for a terminal,
// wrapping at width columns.
func RenderTerminal(src string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(src)
}

// Compose arranges source and rendered output for the view mode.
func Compose(mode ViewMode, src, rendered string) string {
	switch mode {
	case ViewEdit:
		return src
	case ViewPreview:
		return rendered
	default:
		var sb strings.Builder
		sb.WriteString(strings.TrimRight(src, "\n"))
		sb.WriteString("\n\n")
		sb.WriteString(strings.Repeat("─", 40))
		sb.WriteString("\n\n")
		sb.WriteString(rendered)
		return sb.String()
	}
}
