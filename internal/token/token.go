// Package token generates random tokens from a fixed set of alphabets.
package token

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Limits for generated tokens.
const (
	MinLength = 1
	MaxLength = 512
	MaxCount  = 100
)

var (
	// ErrInvalidLength is returned when the requested length is out of range.
	ErrInvalidLength = fmt.Errorf("token length must be between %d and %d", MinLength, MaxLength)

	// ErrInvalidCount is returned when the requested count is out of range.
	ErrInvalidCount = fmt.Errorf("token count must be between 1 and %d", MaxCount)

	// ErrUnknownCharset is returned for an unsupported charset name.
	ErrUnknownCharset = errors.New("unknown charset")
)

// Charset selects the alphabet tokens are drawn from.
type Charset int

// Supported charsets.
const (
	Alphanumeric Charset = iota
	Alphabetic
	Numeric
	Hex
	Base64
	URLSafe
)

const (
	upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lower  = "abcdefghijklmnopqrstuvwxyz"
	digits = "0123456789"
)

var charsets = []struct {
	charset  Charset
	name     string
	alphabet string
}{
	{Alphanumeric, "alphanumeric", upper + lower + digits},
	{Alphabetic, "alphabetic", upper + lower},
	{Numeric, "numeric", digits},
	{Hex, "hex", digits + "abcdef"},
	{Base64, "base64", upper + lower + digits + "+/"},
	{URLSafe, "urlsafe", upper + lower + digits + "-_"},
}

// String returns the charset name.
func (c Charset) String() string {
	for _, cs := range charsets {
		if cs.charset == c {
			return cs.name
		}
	}
	return "unknown"
}

// Alphabet returns the characters of the charset.
func (c Charset) Alphabet() string {
	for _, cs := range charsets {
		if cs.charset == c {
			return cs.alphabet
		}
	}
	return ""
}

// Charsets returns every supported charset.
func Charsets() []Charset {
	out := make([]Charset, len(charsets))
	for i, cs := range charsets {
		out[i] = cs.charset
	}
	return out
}

// ParseCharset resolves a charset name such as "hex".
func ParseCharset(name string) (Charset, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, cs := range charsets {
		if cs.name == n {
			return cs.charset, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownCharset, name)
}

// Generator draws tokens from a random source.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a Generator reading from r. A nil reader selects
// crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Generate returns one token of the given length. Each character consumes
// four random bytes interpreted as a big-endian uint32 reduced modulo the
// alphabet size.
func (g *Generator) Generate(c Charset, length int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", ErrInvalidLength
	}
	alphabet := c.Alphabet()
	if alphabet == "" {
		return "", fmt.Errorf("%w: %d", ErrUnknownCharset, int(c))
	}

	buf := make([]byte, 4*length)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	out := make([]byte, length)
	n := uint32(len(alphabet))
	for i := range out {
		v := binary.BigEndian.Uint32(buf[i*4:])
		out[i] = alphabet[v%n]
	}
	return string(out), nil
}

// GenerateN returns count tokens.
func (g *Generator) GenerateN(c Charset, length, count int) ([]string, error) {
	if count < 1 || count > MaxCount {
		return nil, ErrInvalidCount
	}
	out := make([]string, count)
	for i := range out {
		tok, err := g.Generate(c, length)
		if err != nil {
			return nil, err
		}
		out[i] = tok
	}
	return out, nil
}
