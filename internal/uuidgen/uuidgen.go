// Package uuidgen generates version 4 UUIDs and renders them in the common
// textual formats.
package uuidgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MaxCount is the largest batch New will generate.
const MaxCount = 100

var (
	// ErrInvalidUUID is returned when a value is not 32 hexadecimal digits.
	ErrInvalidUUID = errors.New("invalid UUID")

	// ErrInvalidCount is returned when the requested count is out of range.
	ErrInvalidCount = fmt.Errorf("uuid count must be between 1 and %d", MaxCount)

	// ErrUnknownFormat is returned for an unsupported format name.
	ErrUnknownFormat = errors.New("unknown UUID format")
)

// Format is the textual rendering of a UUID.
type Format int

const (
	// Lowercase renders 8-4-4-4-12 lowercase hex.
	Lowercase Format = iota
	// Uppercase renders 8-4-4-4-12 uppercase hex.
	Uppercase
	// NoHyphens renders 32 lowercase hex digits.
	NoHyphens
	// Braces renders {8-4-4-4-12} lowercase hex.
	Braces
)

var formatNames = map[Format]string{
	Lowercase: "lowercase",
	Uppercase: "uppercase",
	NoHyphens: "no-hyphens",
	Braces:    "braces",
}

// String returns the format name.
func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return "unknown"
}

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for f, fn := range formatNames {
		if fn == n {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// Render formats u.
func Render(u uuid.UUID, f Format) string {
	s := u.String()
	switch f {
	case Uppercase:
		return strings.ToUpper(s)
	case NoHyphens:
		return strings.ReplaceAll(s, "-", "")
	case Braces:
		return "{" + s + "}"
	default:
		return s
	}
}

// New returns a random version 4 UUID rendered in f.
func New(f Format) (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return Render(u, f), nil
}

// NewN returns n UUIDs rendered in f.
func NewN(f Format, n int) ([]string, error) {
	if n < 1 || n > MaxCount {
		return nil, ErrInvalidCount
	}
	out := make([]string, n)
	for i := range out {
		s, err := New(f)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Reformat normalizes s (braces and hyphens removed, lowercased) and
// renders it again in f.
func Reformat(s string, f Format) (string, error) {
	clean := strings.NewReplacer("{", "", "}", "", "-", "").Replace(strings.TrimSpace(s))
	u, err := uuid.Parse(strings.ToLower(clean))
	if err != nil || len(clean) != 32 {
		return "", fmt.Errorf("%w: %q", ErrInvalidUUID, s)
	}
	return Render(u, f), nil
}
