package uuidgen

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  Format
		pattern string
	}{
		{Lowercase, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`},
		{Uppercase, `^[0-9A-F]{8}-[0-9A-F]{4}-4[0-9A-F]{3}-[89AB][0-9A-F]{3}-[0-9A-F]{12}$`},
		{NoHyphens, `^[0-9a-f]{12}4[0-9a-f]{3}[89ab][0-9a-f]{15}$`},
		{Braces, `^\{[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\}$`},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			t.Parallel()

			got, err := New(tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !regexp.MustCompile(tt.pattern).MatchString(got) {
				t.Errorf("%q does not match %s", got, tt.pattern)
			}
		})
	}
}

func TestNewN(t *testing.T) {
	t.Parallel()

	got, err := NewN(Lowercase, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make(map[string]bool)
	for _, s := range got {
		if seen[s] {
			t.Errorf("duplicate uuid %s", s)
		}
		seen[s] = true
	}

	if _, err := NewN(Lowercase, 0); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("expected ErrInvalidCount, got %v", err)
	}
}

func TestReformat(t *testing.T) {
	t.Parallel()

	const id = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	u := uuid.MustParse(id)

	tests := []struct {
		name  string
		input string
		f     Format
		want  string
	}{
		{name: "braces to uppercase", input: "{" + id + "}", f: Uppercase, want: "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"},
		{name: "uppercase to no hyphens", input: "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", f: NoHyphens, want: "6ba7b8109dad11d180b400c04fd430c8"},
		{name: "no hyphens to braces", input: "6ba7b8109dad11d180b400c04fd430c8", f: Braces, want: "{" + id + "}"},
		{name: "render matches reformat", input: id, f: Lowercase, want: Render(u, Lowercase)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Reformat(tt.input, tt.f)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("rejects short input", func(t *testing.T) {
		t.Parallel()
		if _, err := Reformat("1234", Lowercase); !errors.Is(err, ErrInvalidUUID) {
			t.Errorf("expected ErrInvalidUUID, got %v", err)
		}
	})

	t.Run("rejects urn prefix", func(t *testing.T) {
		t.Parallel()
		if _, err := Reformat("urn:uuid:"+id, Lowercase); !errors.Is(err, ErrInvalidUUID) {
			t.Errorf("expected ErrInvalidUUID, got %v", err)
		}
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for f, name := range formatNames {
		got, err := ParseFormat(name)
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseFormat("base32"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
