package report

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"
)

// highlightStyle is the chroma style used for terminal output.
const highlightStyle = "monokai"

// Highlight returns source colored for a 256-color terminal. language is a
// chroma lexer name such as "json", "yaml" or "html".
func Highlight(source, language string) (string, error) {
	var sb strings.Builder
	if err := quick.Highlight(&sb, source, language, "terminal256", highlightStyle); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
