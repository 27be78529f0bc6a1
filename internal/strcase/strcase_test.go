package strcase

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []string
	}{
		{"helloWorld", []string{"hello", "world"}},
		{"HelloWorld", []string{"hello", "world"}},
		{"hello_world-foo.bar/baz\\qux", []string{"hello", "world", "foo", "bar", "baz", "qux"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{"XMLHttpRequest", []string{"xmlhttp", "request"}},
		{"", nil},
		{"   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, SplitWords(tt.input)); diff != "" {
				t.Errorf("SplitWords(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	got := All("hello world example")
	want := []Result{
		{Kind: Camel, Name: "camelCase", Value: "helloWorldExample"},
		{Kind: Pascal, Name: "PascalCase", Value: "HelloWorldExample"},
		{Kind: Snake, Name: "snake_case", Value: "hello_world_example"},
		{Kind: ScreamingSnake, Name: "SCREAMING_SNAKE_CASE", Value: "HELLO_WORLD_EXAMPLE"},
		{Kind: Kebab, Name: "kebab-case", Value: "hello-world-example"},
		{Kind: ScreamingKebab, Name: "SCREAMING-KEBAB-CASE", Value: "HELLO-WORLD-EXAMPLE"},
		{Kind: Title, Name: "Title Case", Value: "Hello World Example"},
		{Kind: Sentence, Name: "Sentence case", Value: "Hello world example"},
		{Kind: Lower, Name: "lowercase", Value: "hello world example"},
		{Kind: Upper, Name: "UPPERCASE", Value: "HELLO WORLD EXAMPLE"},
		{Kind: Dot, Name: "dot.case", Value: "hello.world.example"},
		{Kind: Path, Name: "path/case", Value: "hello/world/example"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All mismatch (-want +got):\n%s", diff)
	}

	if All("  ") != nil {
		t.Error("expected no results for blank input")
	}
}

func TestConvertIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"user account id", "parseHTTPResponse", "some-kebab_snake.mix"}
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			t.Parallel()
			for _, in := range inputs {
				once := Convert(k, in)
				if twice := Convert(k, once); twice != once {
					t.Errorf("%s(%q): %q then %q", k, in, once, twice)
				}
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Kind
	}{
		{"camel", Camel},
		{"camelCase", Camel},
		{"snake_case", Snake},
		{"SCREAMING_SNAKE", ScreamingSnake},
		{"kebab", Kebab},
		{"title", Title},
		{"path", Path},
		{"dot.case", Dot},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseKind(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("ParseKind(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}

	if _, err := ParseKind("zigzag"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}
