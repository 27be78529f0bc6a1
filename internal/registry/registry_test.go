package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/devkit/internal/model"
)

func TestToolsAreWellFormed(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, tool := range Tools() {
		if seen[tool.Path] {
			t.Errorf("duplicate path %q", tool.Path)
		}
		seen[tool.Path] = true

		if !strings.HasPrefix(tool.Path, "/") {
			t.Errorf("path %q does not start with a slash", tool.Path)
		}
		if tool.Label == "" || tool.Description == "" {
			t.Errorf("tool %q is missing a label or description", tool.Path)
		}
		if tool.Category.String() == "unknown" {
			t.Errorf("tool %q has an unknown category", tool.Path)
		}
	}
}

func TestToolsReturnsCopy(t *testing.T) {
	t.Parallel()

	a := Tools()
	a[0].Label = "changed"
	if Tools()[0].Label == "changed" {
		t.Error("mutating the returned slice changed the registry")
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	t.Run("path with leading slash", func(t *testing.T) {
		t.Parallel()
		tool, err := Lookup("/base64")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tool.Label != "Base64 Encoder/Decoder" {
			t.Errorf("unexpected label %q", tool.Label)
		}
	})

	t.Run("name without slash", func(t *testing.T) {
		t.Parallel()
		tool, err := Lookup("hash-generator")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tool.Name() != "hash-generator" {
			t.Errorf("unexpected name %q", tool.Name())
		}
	})

	t.Run("unknown path", func(t *testing.T) {
		t.Parallel()
		_, err := Lookup("/nope")
		if !errors.Is(err, ErrToolNotFound) {
			t.Errorf("expected ErrToolNotFound, got %v", err)
		}
	})
}

func TestLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"/", "Home"},
		{"", "Home"},
		{"/jwt-decoder", "JWT Decoder"},
		{"/unknown-tool", "/unknown-tool"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			if got := Label(tt.path); got != tt.want {
				t.Errorf("Label(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestByCategory(t *testing.T) {
	t.Parallel()

	groups := ByCategory()

	total := 0
	order := make([]model.Category, 0, len(groups))
	for _, g := range groups {
		if len(g.Tools) == 0 {
			t.Errorf("category %v has no tools", g.Category)
		}
		for _, tool := range g.Tools {
			if tool.Category != g.Category {
				t.Errorf("tool %q grouped under %v", tool.Path, g.Category)
			}
		}
		total += len(g.Tools)
		order = append(order, g.Category)
	}

	if total != len(Tools()) {
		t.Errorf("grouped %d tools, registry has %d", total, len(Tools()))
	}

	want := model.AllCategories()
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("category order mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	t.Run("typo finds the tool", func(t *testing.T) {
		t.Parallel()
		got := Suggest("base46", 3)
		if len(got) == 0 || got[0] != "base64" {
			t.Errorf("expected base64 first, got %v", got)
		}
	})

	t.Run("prefix finds every match", func(t *testing.T) {
		t.Parallel()
		got := Suggest("json", 0)
		for _, want := range []string{"json-pretty-print", "json-parser", "json-editor"} {
			found := false
			for _, g := range got {
				if g == want {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %q in %v", want, got)
			}
		}
	})

	t.Run("limit is honored", func(t *testing.T) {
		t.Parallel()
		if got := Suggest("json", 1); len(got) != 1 {
			t.Errorf("expected 1 suggestion, got %v", got)
		}
	})

	t.Run("unrelated input has no suggestions", func(t *testing.T) {
		t.Parallel()
		if got := Suggest("zzzzzzzzzzzz", 3); len(got) != 0 {
			t.Errorf("expected none, got %v", got)
		}
	})
}
