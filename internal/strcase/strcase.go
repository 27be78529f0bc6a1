// Package strcase converts identifiers and phrases between naming styles
// such as camelCase, snake_case and Title Case.
package strcase

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownKind is returned for an unsupported case name.
var ErrUnknownKind = errors.New("unknown case")

// Kind is a naming style.
type Kind int

// Supported naming styles, in display order.
const (
	Camel Kind = iota
	Pascal
	Snake
	ScreamingSnake
	Kebab
	ScreamingKebab
	Title
	Sentence
	Lower
	Upper
	Dot
	Path
)

var kindNames = []string{
	Camel:          "camelCase",
	Pascal:         "PascalCase",
	Snake:          "snake_case",
	ScreamingSnake: "SCREAMING_SNAKE_CASE",
	Kebab:          "kebab-case",
	ScreamingKebab: "SCREAMING-KEBAB-CASE",
	Title:          "Title Case",
	Sentence:       "Sentence case",
	Lower:          "lowercase",
	Upper:          "UPPERCASE",
	Dot:            "dot.case",
	Path:           "path/case",
}

// Kinds returns every style in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// String returns the style name written in that style, e.g. "kebab-case".
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind resolves a style name. Matching ignores case and separators,
// so "snake", "snake_case" and "SNAKE-CASE" are all accepted.
func ParseKind(name string) (Kind, error) {
	want := squash(name)
	for i, n := range kindNames {
		s := squash(n)
		if s == want || strings.TrimSuffix(s, "case") == want {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownKind, name)
}

func squash(s string) string {
	return strings.ToLower(separators.ReplaceAllString(strings.ReplaceAll(s, " ", ""), ""))
}

var (
	lowerUpper = regexp.MustCompile(`([a-z])([A-Z])`)
	separators = regexp.MustCompile(`[-_./\\]`)
	spaces     = regexp.MustCompile(`\s+`)
)

// SplitWords breaks s into lowercase words. Lower-to-upper transitions,
// whitespace and the characters - _ . / \ are word boundaries.
func SplitWords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	s = lowerUpper.ReplaceAllString(s, "$1 $2")
	s = separators.ReplaceAllString(s, " ")
	s = strings.TrimSpace(spaces.ReplaceAllString(s, " "))
	return strings.Fields(strings.ToLower(s))
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

func mapJoin(words []string, sep string, fn func(i int, w string) string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = fn(i, w)
	}
	return strings.Join(out, sep)
}

// Convert renders s in the given style.
func Convert(k Kind, s string) string {
	words := SplitWords(s)
	if len(words) == 0 {
		return ""
	}
	return convertWords(k, words)
}

func convertWords(k Kind, words []string) string {
	upper := cases.Upper(language.Und)
	switch k {
	case Camel:
		return mapJoin(words, "", func(i int, w string) string {
			if i == 0 {
				return w
			}
			return capitalize(w)
		})
	case Pascal:
		return mapJoin(words, "", func(_ int, w string) string { return capitalize(w) })
	case Snake:
		return strings.Join(words, "_")
	case ScreamingSnake:
		return upper.String(strings.Join(words, "_"))
	case Kebab:
		return strings.Join(words, "-")
	case ScreamingKebab:
		return upper.String(strings.Join(words, "-"))
	case Title:
		return cases.Title(language.Und).String(strings.Join(words, " "))
	case Sentence:
		return mapJoin(words, " ", func(i int, w string) string {
			if i == 0 {
				return capitalize(w)
			}
			return w
		})
	case Lower:
		return strings.Join(words, " ")
	case Upper:
		return upper.String(strings.Join(words, " "))
	case Dot:
		return strings.Join(words, ".")
	case Path:
		return strings.Join(words, "/")
	default:
		return ""
	}
}

// Result is one converted rendering.
type Result struct {
	Kind  Kind   `json:"-"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// All renders s in every style. Blank input yields no results.
func All(s string) []Result {
	words := SplitWords(s)
	if len(words) == 0 {
		return nil
	}
	out := make([]Result, 0, len(kindNames))
	for _, k := range Kinds() {
		out = append(out, Result{Kind: k, Name: k.String(), Value: convertWords(k, words)})
	}
	return out
}
