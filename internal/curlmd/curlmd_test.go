package curlmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  *Request
	}{
		{
			name:  "plain GET",
			input: "curl https://api.example.com/users?page=2",
			want:  &Request{Method: "GET", URL: "https://api.example.com/users?page=2", Path: "/users?page=2"},
		},
		{
			name:  "host only defaults path to slash",
			input: "curl 'https://example.com'",
			want:  &Request{Method: "GET", URL: "https://example.com", Path: "/"},
		},
		{
			name: "explicit method with JSON body and continuations",
			input: "curl -X put 'https://api.example.com/items/1' \\\n" +
				"  -H 'Content-Type: application/json' \\\n" +
				"  --data-raw '{\"name\":\"widget\"}'",
			want: &Request{
				Method:      "PUT",
				URL:         "https://api.example.com/items/1",
				Path:        "/items/1",
				Body:        `{"name":"widget"}`,
				ContentType: "application/json",
			},
		},
		{
			name:  "body without method becomes POST",
			input: `curl https://example.com/login -d "user=alice"`,
			want:  &Request{Method: "POST", URL: "https://example.com/login", Path: "/login", Body: "user=alice"},
		},
		{
			name:  "URL after long options uses the fallback pattern",
			input: "curl --location --compressed https://example.com/a/b",
			want:  &Request{Method: "GET", URL: "https://example.com/a/b", Path: "/a/b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	if _, err := Parse("   "); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
	if _, err := Parse("curl --verbose --insecure"); !errors.Is(err, ErrNoURL) {
		t.Errorf("expected ErrNoURL, got %v", err)
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	req := &Request{Method: "POST", Path: "/items", Body: `{"a":1}`}
	got := Markdown(req, `{"ok":true}`)

	for _, want := range []string{
		"### POST /items",
		"**Body**",
		"```json\n{\n  \"a\": 1\n}\n```",
		"**Response**",
		"\"ok\": true",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}

	t.Run("non JSON body is kept as is", func(t *testing.T) {
		t.Parallel()
		got := Markdown(&Request{Method: "POST", Path: "/", Body: "a=b"}, "")
		if !strings.Contains(got, "a=b") || strings.Contains(got, "**Response**") {
			t.Errorf("unexpected output:\n%s", got)
		}
	})
}
