package jsonedit

import (
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a node in a document. Each segment is a string object key
// or an int array index.
type Path []any

// String renders the path in dotted form, e.g. "a.b[2].c".
func (p Path) String() string {
	var sb strings.Builder
	for _, seg := range p {
		switch s := seg.(type) {
		case int:
			fmt.Fprintf(&sb, "[%d]", s)
		default:
			if sb.Len() > 0 {
				sb.WriteByte('.')
			}
			fmt.Fprint(&sb, s)
		}
	}
	return sb.String()
}

// ParsePath parses "a.b[2].c" or "a/b/2/c". An empty string or "." is the
// root. Bracketed segments are indexes; other numeric segments are
// resolved against the document when they are used.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." || s == "/" {
		return Path{}, nil
	}

	if strings.Contains(s, "/") && !strings.ContainsAny(s, ".[") {
		var p Path
		for _, part := range strings.Split(strings.Trim(s, "/"), "/") {
			if part == "" {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPath, s)
			}
			p = append(p, part)
		}
		return p, nil
	}

	var (
		p   Path
		cur strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			p = append(p, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '.':
			flush()
		case '[':
			flush()
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed bracket in %q", ErrInvalidPath, s)
			}
			inner := s[i+1 : i+end]
			n, err := strconv.Atoi(inner)
			if err != nil {
				p = append(p, strings.Trim(inner, `"'`))
			} else {
				p = append(p, n)
			}
			i += end
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return p, nil
}
