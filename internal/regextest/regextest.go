// Package regextest runs a JavaScript-style regular expression against a
// text and reports every match with its capture groups, plus the text
// split into matching and non-matching parts for highlighting.
package regextest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single evaluation against runaway backtracking.
const MatchTimeout = time.Second

// DefaultFlags are used when no flags are given.
const DefaultFlags = "g"

// Errors returned by Test and ParseFlags.
var (
	ErrInvalidPattern = errors.New("invalid regular expression")
	ErrInvalidFlag    = errors.New("invalid flag")
	ErrTimeout        = errors.New("regular expression timed out")
)

// Flags are the JavaScript flags supported by the tester.
type Flags struct {
	Global     bool
	IgnoreCase bool
	Multiline  bool
	DotAll     bool
	Unicode    bool
}

// ParseFlags parses a flag string such as "gi". Repeated flags are allowed.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for _, c := range s {
		switch c {
		case 'g':
			f.Global = true
		case 'i':
			f.IgnoreCase = true
		case 'm':
			f.Multiline = true
		case 's':
			f.DotAll = true
		case 'u':
			f.Unicode = true
		default:
			return Flags{}, fmt.Errorf("%w: %q", ErrInvalidFlag, c)
		}
	}
	return f, nil
}

// String returns the flags in canonical "gimsu" order.
func (f Flags) String() string {
	var sb strings.Builder
	for _, x := range []struct {
		on bool
		c  byte
	}{{f.Global, 'g'}, {f.IgnoreCase, 'i'}, {f.Multiline, 'm'}, {f.DotAll, 's'}, {f.Unicode, 'u'}} {
		if x.on {
			sb.WriteByte(x.c)
		}
	}
	return sb.String()
}

// options maps the flags onto engine options. ECMAScript mode accepts no
// single-line option, so dot-all is applied to the pattern by dotAll.
// Unicode is implied because matching always works on runes.
func (f Flags) options() regexp2.RegexOptions {
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	if f.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if f.Multiline {
		opts |= regexp2.Multiline
	}
	return opts
}

// dotAll rewrites every unescaped "." outside a character class to
// "[\s\S]", which matches any character including line terminators.
func dotAll(pattern string) string {
	var sb strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			sb.WriteByte(c)
			i++
			sb.WriteByte(pattern[i])
			continue
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '.' && !inClass:
			sb.WriteString(`[\s\S]`)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// Match is one match of the pattern.
type Match struct {
	FullMatch string `json:"fullMatch"`
	// Groups holds the numbered captures; unmatched groups are empty.
	Groups      []string          `json:"groups"`
	NamedGroups map[string]string `json:"namedGroups,omitempty"`
	// Index is the offset of the match in runes.
	Index int `json:"index"`
}

// Part is a segment of the input text.
type Part struct {
	Text    string `json:"text"`
	IsMatch bool   `json:"isMatch"`
}

// Result is the outcome of Test.
type Result struct {
	Pattern string  `json:"pattern"`
	Flags   string  `json:"flags"`
	Matches []Match `json:"matches"`
	Parts   []Part  `json:"parts"`
}

// Compile builds the expression with the given flags.
func Compile(pattern string, flags Flags) (*regexp2.Regexp, error) {
	if flags.DotAll {
		pattern = dotAll(pattern)
	}
	re, err := regexp2.Compile(pattern, flags.options())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

// Test evaluates pattern against text. Without the g flag only the first
// match is reported.
func Test(pattern, flags, text string) (*Result, error) {
	f, err := ParseFlags(flags)
	if err != nil {
		return nil, err
	}
	re, err := Compile(pattern, f)
	if err != nil {
		return nil, err
	}

	res := &Result{Pattern: pattern, Flags: f.String(), Matches: []Match{}}

	m, err := re.FindStringMatch(text)
	prevIndex, prevLen := -1, -1
	for m != nil && err == nil {
		if m.Index == prevIndex && m.Length == 0 && prevLen == 0 {
			break
		}
		res.Matches = append(res.Matches, toMatch(re, m))
		if !f.Global {
			break
		}
		prevIndex, prevLen = m.Index, m.Length
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	res.Parts = split([]rune(text), res.Matches)
	return res, nil
}

func toMatch(re *regexp2.Regexp, m *regexp2.Match) Match {
	out := Match{FullMatch: m.String(), Index: m.Index}

	groups := m.Groups()
	for _, g := range groups[1:] {
		out.Groups = append(out.Groups, captured(g))
	}
	if out.Groups == nil {
		out.Groups = []string{}
	}

	for _, name := range re.GetGroupNames() {
		if isNumber(name) {
			continue
		}
		if out.NamedGroups == nil {
			out.NamedGroups = make(map[string]string)
		}
		if g := m.GroupByName(name); g != nil {
			out.NamedGroups[name] = captured(*g)
		}
	}
	return out
}

func captured(g regexp2.Group) string {
	if len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// split cuts text into alternating non-matching and matching parts.
func split(text []rune, matches []Match) []Part {
	parts := []Part{}
	last := 0
	for _, m := range matches {
		if m.Index > last {
			parts = append(parts, Part{Text: string(text[last:m.Index])})
		}
		if m.FullMatch != "" {
			parts = append(parts, Part{Text: m.FullMatch, IsMatch: true})
		}
		last = m.Index + len([]rune(m.FullMatch))
	}
	if last < len(text) {
		parts = append(parts, Part{Text: string(text[last:])})
	}
	return parts
}
