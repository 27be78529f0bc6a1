// Package lorem generates lorem ipsum placeholder text.
package lorem

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Unit is what a count refers to.
type Unit string

// Generation units.
const (
	Paragraphs Unit = "paragraphs"
	Sentences  Unit = "sentences"
	Words      Unit = "words"
)

// ErrUnknownUnit is returned by ParseUnit.
var ErrUnknownUnit = errors.New("unknown unit")

// ParseUnit accepts a unit name or its singular form.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paragraphs", "paragraph", "p":
		return Paragraphs, nil
	case "sentences", "sentence", "s":
		return Sentences, nil
	case "words", "word", "w":
		return Words, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownUnit, s)
}

// MaxCount returns the largest count accepted for the unit.
func (u Unit) MaxCount() int {
	switch u {
	case Paragraphs:
		return 50
	case Sentences:
		return 200
	default:
		return 1000
	}
}

// DefaultCount returns the count used when none is given.
func (u Unit) DefaultCount() int {
	switch u {
	case Paragraphs:
		return 3
	case Sentences:
		return 10
	default:
		return 50
	}
}

// Clamp limits n to 1..MaxCount.
func (u Unit) Clamp(n int) int {
	return max(1, min(n, u.MaxCount()))
}

var words = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit",
	"sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore", "et", "dolore",
	"magna", "aliqua", "enim", "ad", "minim", "veniam", "quis", "nostrud",
	"exercitation", "ullamco", "laboris", "nisi", "aliquip", "ex", "ea", "commodo",
	"consequat", "duis", "aute", "irure", "in", "reprehenderit", "voluptate",
	"velit", "esse", "cillum", "fugiat", "nulla", "pariatur", "excepteur", "sint",
	"occaecat", "cupidatat", "non", "proident", "sunt", "culpa", "qui", "officia",
	"deserunt", "mollit", "anim", "id", "est", "laborum",
}

// Generator produces placeholder text. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded from the clock.
func New() *Generator {
	return NewSeeded(uint64(time.Now().UnixNano())) //nolint:gosec // not security sensitive
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec // placeholder text
}

// Generate produces n units of text, with n clamped to the unit's range.
func (g *Generator) Generate(u Unit, n int) string {
	n = u.Clamp(n)
	switch u {
	case Paragraphs:
		return g.Paragraphs(n)
	case Sentences:
		return g.Sentences(n)
	default:
		return g.Words(n)
	}
}

// Words returns n lowercase words separated by spaces.
func (g *Generator) Words(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = words[g.rng.IntN(len(words))]
	}
	return strings.Join(out, " ")
}

// sentence is 5 to 14 words, capitalized and ending with a period.
func (g *Generator) sentence() string {
	s := g.Words(g.rng.IntN(10) + 5)
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:] + "."
}

// Sentences returns n sentences separated by spaces.
func (g *Generator) Sentences(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = g.sentence()
	}
	return strings.Join(out, " ")
}

// Paragraphs returns n paragraphs of 3 to 6 sentences separated by a blank
// line.
func (g *Generator) Paragraphs(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = g.Sentences(g.rng.IntN(4) + 3)
	}
	return strings.Join(out, "\n\n")
}
