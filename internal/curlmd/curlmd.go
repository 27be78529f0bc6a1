// Package curlmd turns a cURL command line into a short Markdown
// description of the request, suitable for API documentation.
package curlmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/nao1215/markdown"
)

var (
	// ErrEmpty is returned for blank input.
	ErrEmpty = errors.New("Please enter a cURL command") //nolint:staticcheck // shown to the user verbatim
	// ErrNoURL is returned when no URL can be found in the command.
	ErrNoURL = errors.New("Could not extract URL from cURL command") //nolint:staticcheck // shown to the user verbatim
)

// Request is the interesting part of a cURL invocation.
type Request struct {
	Method      string `json:"method"`
	URL         string `json:"url"`
	Path        string `json:"path"`
	Body        string `json:"body,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

var (
	continuation = regexp.MustCompile(`\\\r?\n`)
	whitespace   = regexp.MustCompile(`\s+`)
	urlAfterCurl = regexp.MustCompile(`(?i)curl\s+(?:(?:-[A-Za-z]\s+\S+\s+)*)?['"]?([^'">\s]+)['"]?`)
	anyHTTPURL   = regexp.MustCompile(`['"]?(https?://[^'">\s]+)['"]?`)
	pathFallback = regexp.MustCompile(`https?://[^/]+(/[^?#]*)?(\?[^#]*)?`)
	methodFlag   = regexp.MustCompile(`(?i)(?:-X|--request)\s+['"]?(\w+)['"]?`)
	contentType  = regexp.MustCompile(`(?i)-H\s+['"]Content-Type:\s*([^'"]+)['"]`)

	bodyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`--data-raw\s+'([^']+)'`),
		regexp.MustCompile(`--data-raw\s+"([^"]+)"`),
		regexp.MustCompile(`--data\s+'([^']+)'`),
		regexp.MustCompile(`--data\s+"([^"]+)"`),
		regexp.MustCompile(`-d\s+'([^']+)'`),
		regexp.MustCompile(`-d\s+"([^"]+)"`),
	}
)

// Parse extracts method, URL, path, body and content type from a cURL
// command. Line continuations are allowed. A request with a body and no
// explicit method is reported as POST.
func Parse(cmd string) (*Request, error) {
	if strings.TrimSpace(cmd) == "" {
		return nil, ErrEmpty
	}

	normalized := continuation.ReplaceAllString(cmd, " ")
	normalized = strings.TrimSpace(whitespace.ReplaceAllString(normalized, " "))

	req := &Request{Method: "GET", Path: "/"}

	if m := urlAfterCurl.FindStringSubmatch(normalized); m != nil {
		req.URL = m[1]
	}
	if req.URL == "" || strings.HasPrefix(req.URL, "-") {
		m := anyHTTPURL.FindStringSubmatch(normalized)
		if m == nil {
			return nil, ErrNoURL
		}
		req.URL = m[1]
	}
	req.Path = pathOf(req.URL)

	if m := methodFlag.FindStringSubmatch(normalized); m != nil {
		req.Method = strings.ToUpper(m[1])
	}

	for _, p := range bodyPatterns {
		if m := p.FindStringSubmatch(normalized); m != nil {
			req.Body = m[1]
			break
		}
	}
	if req.Body != "" && req.Method == "GET" {
		req.Method = "POST"
	}

	if m := contentType.FindStringSubmatch(normalized); m != nil {
		req.ContentType = strings.TrimSpace(m[1])
	}
	return req, nil
}

func pathOf(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		p := u.EscapedPath()
		if p == "" {
			p = "/"
		}
		if u.RawQuery != "" {
			p += "?" + u.RawQuery
		}
		return p
	}
	if m := pathFallback.FindStringSubmatch(raw); m != nil && m[1] != "" {
		return m[1] + m[2]
	}
	return "/"
}

// prettyJSON indents s when it is valid JSON and returns it unchanged
// otherwise.
func prettyJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

// Markdown renders the request, and the response when it is not empty,
// as a level three heading followed by JSON code blocks.
func Markdown(req *Request, response string) string {
	md := markdown.NewMarkdown(io.Discard)
	md.H3(req.Method + " " + req.Path)

	if req.Body != "" {
		md.PlainText("")
		md.PlainText(markdown.Bold("Body"))
		md.CodeBlocks(markdown.SyntaxHighlight("json"), prettyJSON(req.Body))
	}
	if strings.TrimSpace(response) != "" {
		md.PlainText("")
		md.PlainText(markdown.Bold("Response"))
		md.CodeBlocks(markdown.SyntaxHighlight("json"), prettyJSON(response))
	}
	return md.String() + "\n"
}
