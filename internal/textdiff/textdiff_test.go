package textdiff

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	got := Compare("a\nb\nc\n", "a\nB\nc\nd\n", Options{})
	want := []Line{
		{Kind: Context, Text: "a", OldNo: 1, NewNo: 1},
		{Kind: Removed, Text: "b", OldNo: 2},
		{Kind: Added, Text: "B", NewNo: 2},
		{Kind: Context, Text: "c", OldNo: 3, NewNo: 3},
		{Kind: Added, Text: "d", NewNo: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compare mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(Stats{Added: 2, Removed: 1, Unchanged: 2}, Count(got)); diff != "" {
		t.Errorf("Count mismatch (-want +got):\n%s", diff)
	}
}

func TestCompareIgnoreWhitespace(t *testing.T) {
	t.Parallel()

	oldText := "func  main() {\n\treturn\n}"
	newText := "func main() {\n    return\n}"

	if s := Count(Compare(oldText, newText, Options{})); s.Identical() {
		t.Error("expected differences when whitespace counts")
	}

	lines := Compare(oldText, newText, Options{IgnoreWhitespace: true})
	if s := Count(lines); !s.Identical() {
		t.Fatalf("expected no differences, got %+v", s)
	}
	if lines[1].Text != "\treturn" || lines[1].NewText != "    return" {
		t.Errorf("expected original text to be kept, got %+v", lines[1])
	}
}

func TestCompareEmptyInputs(t *testing.T) {
	t.Parallel()

	if got := Compare("", "", Options{}); len(got) != 0 {
		t.Errorf("expected no lines, got %+v", got)
	}
	got := Compare("", "x", Options{})
	if diff := cmp.Diff([]Line{{Kind: Added, Text: "x", NewNo: 1}}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	rows := Split(Compare("a\nb\nc", "a\nx\ny\nc", Options{}))
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[1].Left.Text != "b" || rows[1].Right.Text != "x" {
		t.Errorf("expected replaced lines to share a row, got %+v / %+v", rows[1].Left, rows[1].Right)
	}
	if rows[2].Left != nil || rows[2].Right.Text != "y" {
		t.Errorf("expected blank placeholder on the left, got %+v", rows[2])
	}
	if rows[3].Left.OldNo != 3 || rows[3].Right.NewNo != 4 {
		t.Errorf("unexpected context row: %+v / %+v", rows[3].Left, rows[3].Right)
	}
}

func TestUnified(t *testing.T) {
	t.Parallel()

	got := Unified(Compare("a\nb", "a\nc", Options{}))
	want := " a\n-b\n+c\n"
	if got != want {
		t.Errorf("Unified() = %q, want %q", got, want)
	}
	if FormatUnified(Compare("a\nb", "a\nc", Options{}), false) != want {
		t.Error("unstyled FormatUnified should equal Unified")
	}
}

func TestFormatSplit(t *testing.T) {
	t.Parallel()

	out := FormatSplit(Split(Compare("same\nold", "same\nnew\nextra", Options{})), 60, false)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "-old") || !strings.Contains(lines[1], "+new") {
		t.Errorf("unexpected row: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], strings.Repeat(" ", 28)+" | ") {
		t.Errorf("expected blank left cell, got %q", lines[2])
	}
}
