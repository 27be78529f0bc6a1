package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/devkit/internal/model"
	"github.com/nao1215/devkit/internal/registry"
)

// JSONWriter outputs results in JSON format.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the result as a JSON object.
func (w *JSONWriter) Write(result *model.Result) (int, error) {
	return w.writeJSON(result)
}

// catalogTool is a registry entry with its command name.
type catalogTool struct {
	Command string `json:"command"`
	registry.Tool
}

type catalogGroup struct {
	Category string        `json:"category"`
	Label    string        `json:"label"`
	Tools    []catalogTool `json:"tools"`
}

// WriteCatalog outputs the groups as a JSON array.
func (w *JSONWriter) WriteCatalog(groups []registry.Group) (int, error) {
	out := make([]catalogGroup, len(groups))
	for i, g := range groups {
		tools := make([]catalogTool, len(g.Tools))
		for j, t := range g.Tools {
			tools[j] = catalogTool{Command: t.Name(), Tool: t}
		}
		out[i] = catalogGroup{Category: g.Category.String(), Label: g.Category.Label(), Tools: tools}
	}
	return w.writeJSON(out)
}

// writeJSON marshals the given value to JSON and writes it to the output.
// HTML characters are not escaped since bodies often hold markup.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	cw := &countingWriter{w: w.output}
	enc := json.NewEncoder(cw)
	enc.SetEscapeHTML(false)
	if w.indent {
		enc.SetIndent(w.indentPrefix, w.indentString)
	}
	err := enc.Encode(v)
	return cw.n, err
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
