package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/devkit/internal/model"
	"github.com/nao1215/devkit/internal/registry"
)

// MarkdownWriter outputs results in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs a heading, a table of the items and the body in a fenced
// code block.
func (w *MarkdownWriter) Write(result *model.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H2(w.title(result))
	md.PlainText("")

	if len(result.Items) > 0 {
		rows := make([][]string, len(result.Items))
		for i, it := range result.Items {
			rows[i] = []string{it.Label, "`" + escapeCell(it.Value) + "`"}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Name", "Value"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if result.Body != "" {
		md.CodeBlocks(markdown.SyntaxHighlight(result.Language), strings.TrimRight(result.Body, "\n"))
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) title(result *model.Result) string {
	if result.Title != "" {
		return result.Title
	}
	if t, err := registry.Lookup(result.Tool); err == nil {
		return t.Label
	}
	return result.Tool
}

// WriteCatalog outputs a table per category and a pie chart of the number
// of tools in each.
func (w *MarkdownWriter) WriteCatalog(groups []registry.Group) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("devkit tools")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Tools per Category"),
		piechart.WithShowData(true),
	)
	total := 0
	for _, g := range groups {
		chart.LabelAndIntValue(g.Category.Label(), uint64(len(g.Tools)))
		total += len(g.Tools)
	}
	if total > 0 {
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	for _, g := range groups {
		md.H2(g.Category.Label())
		md.PlainText("")
		rows := make([][]string, len(g.Tools))
		for i, t := range g.Tools {
			rows[i] = []string{"`devkit " + t.Name() + "`", t.Label, escapeCell(t.Description)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Command", "Tool", "Description"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	md.Tip(fmt.Sprintf("Run `devkit info <tool>` for details. %d tools are available.", total))
	return len(md.String()), md.Build()
}

// escapeCell keeps a value on one table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
