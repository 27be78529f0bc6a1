package regextest

import (
	"errors"
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/google/go-cmp/cmp"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	f, err := ParseFlags("mig")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.String(); got != "gim" {
		t.Errorf("String() = %q, want %q", got, "gim")
	}

	if _, err := ParseFlags("gx"); !errors.Is(err, ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
}

func TestTest(t *testing.T) {
	t.Parallel()

	t.Run("global finds every match with groups", func(t *testing.T) {
		t.Parallel()

		res, err := Test(`(\w+)@(\w+)`, "g", "mail alice@home and bob@work")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Match{
			{FullMatch: "alice@home", Groups: []string{"alice", "home"}, Index: 5},
			{FullMatch: "bob@work", Groups: []string{"bob", "work"}, Index: 20},
		}
		if diff := cmp.Diff(want, res.Matches); diff != "" {
			t.Errorf("matches mismatch (-want +got):\n%s", diff)
		}
		wantParts := []Part{
			{Text: "mail "},
			{Text: "alice@home", IsMatch: true},
			{Text: " and "},
			{Text: "bob@work", IsMatch: true},
		}
		if diff := cmp.Diff(wantParts, res.Parts); diff != "" {
			t.Errorf("parts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("without g only the first match is reported", func(t *testing.T) {
		t.Parallel()

		res, err := Test(`o`, "", "foo boo")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Matches) != 1 || res.Matches[0].Index != 1 {
			t.Errorf("unexpected matches: %+v", res.Matches)
		}
	})

	t.Run("ignore case", func(t *testing.T) {
		t.Parallel()

		res, err := Test(`abc`, "gi", "ABC abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Matches) != 2 {
			t.Errorf("expected 2 matches, got %d", len(res.Matches))
		}
	})

	t.Run("named groups", func(t *testing.T) {
		t.Parallel()

		res, err := Test(`(?<year>\d{4})-(?<month>\d{2})`, "g", "on 2024-05")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Matches) != 1 {
			t.Fatalf("expected one match, got %+v", res.Matches)
		}
		want := map[string]string{"year": "2024", "month": "05"}
		if diff := cmp.Diff(want, res.Matches[0].NamedGroups); diff != "" {
			t.Errorf("named groups mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("zero length matches terminate", func(t *testing.T) {
		t.Parallel()

		res, err := Test(`x*`, "g", "ab")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Matches) == 0 || len(res.Matches) > 3 {
			t.Errorf("unexpected number of matches: %d", len(res.Matches))
		}
		if diff := cmp.Diff([]Part{{Text: "a"}, {Text: "b"}}, res.Parts); diff != "" {
			t.Errorf("parts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("index counts runes", func(t *testing.T) {
		t.Parallel()

		res, err := Test(`b`, "g", "ñab")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Matches[0].Index != 2 {
			t.Errorf("expected rune index 2, got %d", res.Matches[0].Index)
		}
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()

		if _, err := Test(`(unclosed`, "g", "x"); !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("expected ErrInvalidPattern, got %v", err)
		}
	})
}

func TestDotAllKeepsECMAScriptClasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		flags   string
		text    string
		want    []string
	}{
		{name: "dot crosses newlines", pattern: `a.b`, flags: "gs", text: "a\nb", want: []string{"a\nb"}},
		{name: "dot stops at newlines without s", pattern: `a.b`, flags: "g", text: "a\nb", want: []string{}},
		{name: "digits stay ascii with s", pattern: `\d+`, flags: "gs", text: "٣٤ 12", want: []string{"12"}},
		{name: "escaped dot stays literal", pattern: `a\.b`, flags: "gs", text: "a.b axb", want: []string{"a.b"}},
		{name: "dot in a class stays literal", pattern: `[.]`, flags: "gs", text: "x.y", want: []string{"."}},
		{name: "backreference with s", pattern: `(\w)\1.`, flags: "gs", text: "aa\n", want: []string{"aa\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := Test(tt.pattern, tt.flags, tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := []string{}
			for _, m := range res.Matches {
				got = append(got, m.FullMatch)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlagsOptions(t *testing.T) {
	t.Parallel()

	f, err := ParseFlags("gims")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var want regexp2.RegexOptions = regexp2.ECMAScript | regexp2.IgnoreCase | regexp2.Multiline
	if got := f.options(); got != want {
		t.Errorf("options() = %v, want %v", got, want)
	}
}
