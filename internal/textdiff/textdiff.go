// Package textdiff compares two texts line by line and lays the result out
// as a unified or a side-by-side diff.
package textdiff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Kind classifies a diff line.
type Kind int

// Line kinds.
const (
	Context Kind = iota
	Added
	Removed
)

// String returns "context", "added" or "removed".
func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "context"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Prefix returns the unified diff marker of the kind.
func (k Kind) Prefix() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a diff. Line numbers start at 1; a number is 0 on the
// side the line does not exist on.
type Line struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text"`
	OldNo int    `json:"oldNo,omitempty"`
	NewNo int    `json:"newNo,omitempty"`
	// NewText is set on context lines whose new text differs from Text,
	// which happens only when whitespace is ignored.
	NewText string `json:"newText,omitempty"`
}

// Options controls Compare.
type Options struct {
	// IgnoreWhitespace compares lines with runs of whitespace collapsed and
	// the ends trimmed.
	IgnoreWhitespace bool
}

// SplitLines splits text into lines. A trailing newline does not start an
// extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func normalize(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.Join(strings.Fields(l), " ")
	}
	return out
}

// Compare returns the line diff that turns oldText into newText.
func Compare(oldText, newText string, opts Options) []Line {
	a, b := SplitLines(oldText), SplitLines(newText)
	ka, kb := a, b
	if opts.IgnoreWhitespace {
		ka, kb = normalize(a), normalize(b)
	}

	m := difflib.NewMatcherWithJunk(ka, kb, false, nil)
	var out []Line
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for i, j := op.I1, op.J1; i < op.I2; i, j = i+1, j+1 {
				l := Line{Kind: Context, Text: a[i], OldNo: i + 1, NewNo: j + 1}
				if b[j] != a[i] {
					l.NewText = b[j]
				}
				out = append(out, l)
			}
		case 'd', 'r', 'i':
			for i := op.I1; i < op.I2; i++ {
				out = append(out, Line{Kind: Removed, Text: a[i], OldNo: i + 1})
			}
			for j := op.J1; j < op.J2; j++ {
				out = append(out, Line{Kind: Added, Text: b[j], NewNo: j + 1})
			}
		}
	}
	return out
}

// Row is one row of a side-by-side diff. A nil side is a blank placeholder.
type Row struct {
	Left  *Line `json:"left"`
	Right *Line `json:"right"`
}

// Split lays lines out side by side. Runs of removed lines followed by
// added lines share rows; the longer run gets blank placeholders.
func Split(lines []Line) []Row {
	var rows []Row
	for i := 0; i < len(lines); {
		l := lines[i]
		if l.Kind == Context {
			left := l
			right := l
			if l.NewText != "" {
				right.Text = l.NewText
			}
			rows = append(rows, Row{Left: &left, Right: &right})
			i++
			continue
		}

		var removed, added []Line
		for i < len(lines) && lines[i].Kind == Removed {
			removed = append(removed, lines[i])
			i++
		}
		for i < len(lines) && lines[i].Kind == Added {
			added = append(added, lines[i])
			i++
		}
		for k := range max(len(removed), len(added)) {
			var row Row
			if k < len(removed) {
				row.Left = &removed[k]
			}
			if k < len(added) {
				row.Right = &added[k]
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// Unified renders lines with " ", "+" and "-" markers, one per line.
func Unified(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Kind.Prefix())
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Stats counts the lines of each kind.
type Stats struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

// Count returns the statistics of a diff.
func Count(lines []Line) Stats {
	var s Stats
	for _, l := range lines {
		switch l.Kind {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		default:
			s.Unchanged++
		}
	}
	return s
}

// Identical reports whether the diff has no changes.
func (s Stats) Identical() bool {
	return s.Added == 0 && s.Removed == 0
}
