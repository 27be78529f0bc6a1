package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/devkit/internal/model"
	"github.com/nao1215/devkit/internal/registry"
)

// TextWriter outputs results as plain text. A title is written first,
// then items as aligned "Label: value" lines followed by the body, so a result with only a body
// can be piped into other tools unchanged.
type TextWriter struct {
	baseWriter

	// highlight colors bodies that have a language.
	highlight bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithHighlight enables syntax highlighting of bodies.
func WithHighlight(enabled bool) TextWriterOption {
	return func(w *TextWriter) {
		w.highlight = enabled
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the result in plain text.
func (w *TextWriter) Write(result *model.Result) (int, error) {
	var sb strings.Builder

	if result.Title != "" {
		sb.WriteString(result.Title)
		sb.WriteString("\n\n")
	}

	width := 0
	for _, it := range result.Items {
		width = max(width, len([]rune(it.Label)))
	}
	for _, it := range result.Items {
		pad := width - len([]rune(it.Label))
		fmt.Fprintf(&sb, "%s:%s %s\n", it.Label, strings.Repeat(" ", pad), it.Value)
	}

	if result.Body != "" {
		if len(result.Items) > 0 {
			sb.WriteString("\n")
		}
		body := result.Body
		if w.highlight && result.Language != "" {
			if colored, err := Highlight(body, result.Language); err == nil {
				body = colored
			}
		}
		sb.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			sb.WriteString("\n")
		}
	}

	return io.WriteString(w.output, sb.String())
}

// WriteCatalog outputs one block per category with the command names
// aligned.
func (w *TextWriter) WriteCatalog(groups []registry.Group) (int, error) {
	width := 0
	for _, g := range groups {
		for _, t := range g.Tools {
			width = max(width, len(t.Name()))
		}
	}

	var sb strings.Builder
	for i, g := range groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(g.Category.Label())
		sb.WriteString("\n")
		for _, t := range g.Tools {
			fmt.Fprintf(&sb, "  %-*s  %s\n", width, t.Name(), t.Description)
		}
	}
	return io.WriteString(w.output, sb.String())
}
