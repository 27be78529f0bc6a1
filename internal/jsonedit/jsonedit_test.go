package jsonedit

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, s string) any {
	t.Helper()
	doc, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return doc
}

func TestParsePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Path
	}{
		{"", Path{}},
		{".", Path{}},
		{"a", Path{"a"}},
		{"a.b[2].c", Path{"a", "b", 2, "c"}},
		{"a/b/2", Path{"a", "b", "2"}},
		{`a["x.y"]`, Path{"a", "x.y"}},
		{"[0][1]", Path{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePath(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePath mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := ParsePath("a[1"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
}

func TestEdits(t *testing.T) {
	t.Parallel()

	const src = `{"name":"devkit","tags":["a","b","c"],"meta":{"stars":1}}`

	tests := []struct {
		name string
		edit func(doc any) (any, error)
		want string
	}{
		{
			name: "update nested value",
			edit: func(doc any) (any, error) { return Update(doc, Path{"meta", "stars"}, json.Number("5")) },
			want: `{"meta":{"stars":5},"name":"devkit","tags":["a","b","c"]}`,
		},
		{
			name: "update array element by slash path",
			edit: func(doc any) (any, error) { return Update(doc, Path{"tags", "1"}, "B") },
			want: `{"meta":{"stars":1},"name":"devkit","tags":["a","B","c"]}`,
		},
		{
			name: "remove splices the array",
			edit: func(doc any) (any, error) { return Remove(doc, Path{"tags", 0}) },
			want: `{"meta":{"stars":1},"name":"devkit","tags":["b","c"]}`,
		},
		{
			name: "remove object field",
			edit: func(doc any) (any, error) { return Remove(doc, Path{"meta"}) },
			want: `{"name":"devkit","tags":["a","b","c"]}`,
		},
		{
			name: "add field to nested object",
			edit: func(doc any) (any, error) { return AddField(doc, Path{"meta"}, " forks ", nil) },
			want: `{"meta":{"forks":null,"stars":1},"name":"devkit","tags":["a","b","c"]}`,
		},
		{
			name: "append to array",
			edit: func(doc any) (any, error) { return AddArrayItem(doc, Path{"tags"}, map[string]any{}) },
			want: `{"meta":{"stars":1},"name":"devkit","tags":["a","b","c",{}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := mustParse(t, src)
			got, err := tt.edit(doc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			b, err := json.Marshal(got)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, string(b)); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(mustParse(t, src), doc); diff != "" {
				t.Errorf("input document was modified (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEditErrors(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"obj":{},"arr":[1],"n":1}`)

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "remove root", err: second(Remove(doc, Path{})), wantErr: ErrEmptyPath},
		{name: "remove missing key", err: second(Remove(doc, Path{"missing"})), wantErr: ErrPathNotFound},
		{name: "update index out of range", err: second(Update(doc, Path{"arr", 3}, 1)), wantErr: ErrPathNotFound},
		{name: "update below a scalar", err: second(Update(doc, Path{"n", "x"}, 1)), wantErr: ErrPathNotFound},
		{name: "add field to array", err: second(AddField(doc, Path{"arr"}, "k", 1)), wantErr: ErrNotObject},
		{name: "add blank field", err: second(AddField(doc, Path{"obj"}, "  ", 1)), wantErr: ErrEmptyKey},
		{name: "append to object", err: second(AddArrayItem(doc, Path{"obj"}, 1)), wantErr: ErrNotArray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !errors.Is(tt.err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, tt.err)
			}
		})
	}
}

func second(_ any, err error) error {
	return err
}

func TestParseValue(t *testing.T) {
	t.Parallel()

	if got := ParseValue(`{"a":true}`); TypeOf(got) != TypeObject {
		t.Errorf("expected object, got %T", got)
	}
	if got := ParseValue("hello world"); got != "hello world" {
		t.Errorf("expected plain string fallback, got %v", got)
	}
	if got := ParseValue("42"); got != json.Number("42") {
		t.Errorf("expected number 42, got %#v", got)
	}
}

func TestParseTyped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		typ  ValueType
		want any
	}{
		{"abc", TypeString, "abc"},
		{"3.5", TypeNumber, json.Number("3.5")},
		{"oops", TypeNumber, json.Number("0")},
		{"TRUE", TypeBoolean, true},
		{"yes", TypeBoolean, false},
		{"ignored", TypeNull, nil},
		{"", TypeObject, map[string]any{}},
		{"", TypeArray, []any{}},
	}
	for _, tt := range tests {
		got, err := ParseTyped(tt.in, tt.typ)
		if err != nil {
			t.Fatalf("ParseTyped(%q, %s): %v", tt.in, tt.typ, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseTyped(%q, %s) mismatch (-want +got):\n%s", tt.in, tt.typ, diff)
		}
	}

	if _, err := ParseTyped("x", "date"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestParseRejectsTrailingData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "trailing word", input: `{"a":1} junk`, wantErr: ErrTrailingData},
		{name: "second document", input: `{"a":1} {"b":2}`, wantErr: ErrTrailingData},
		{name: "trailing whitespace is fine", input: "{\"a\":1}\n\t ", wantErr: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}

	if got := ParseValue("1 2"); got != "1 2" {
		t.Errorf("expected plain string fallback for two values, got %v", got)
	}
}
