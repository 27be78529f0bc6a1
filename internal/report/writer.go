package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/devkit/internal/model"
	"github.com/nao1215/devkit/internal/registry"
)

// Output formats accepted by NewWriter.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ErrUnknownFormat is returned by NewWriter for an unsupported format.
var ErrUnknownFormat = errors.New("unknown output format")

// Writer defines the interface for result output.
type Writer interface {
	// Write outputs one tool result.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.Result) (int, error)

	// WriteCatalog outputs the registered tools grouped by category.
	WriteCatalog(groups []registry.Group) (int, error)
}

// Options are shared by the writers built with NewWriter.
type Options struct {
	// Highlight colors text bodies for terminals.
	Highlight bool
}

// NewWriter returns the writer for format.
func NewWriter(format string, output io.Writer, opts Options) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(output, WithHighlight(opts.Highlight)), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// MultiWriter writes to multiple Writers simultaneously.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *model.Result) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteCatalog outputs the catalog to all configured Writers.
func (m *MultiWriter) WriteCatalog(groups []registry.Group) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteCatalog(groups)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
