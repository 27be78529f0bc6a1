// Package iframe renders an iframe that loads a URL, either as a single
// element or as a standalone HTML page.
package iframe

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
)

// DefaultSize is the default width and height in pixels.
const DefaultSize = 500

// ErrInvalidURL is returned for URLs that are not absolute http(s) URLs.
var ErrInvalidURL = errors.New("invalid URL: expected an http or https URL")

// ErrInvalidSize is returned for a non-positive width or height.
var ErrInvalidSize = errors.New("invalid size: width and height must be positive")

// Options configures the iframe.
type Options struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

func (o Options) validate() (Options, error) {
	if o.Width == 0 {
		o.Width = DefaultSize
	}
	if o.Height == 0 {
		o.Height = DefaultSize
	}
	if o.Width < 0 || o.Height < 0 {
		return o, ErrInvalidSize
	}

	o.URL = strings.TrimSpace(o.URL)
	u, err := url.Parse(o.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return o, fmt.Errorf("%w: %q", ErrInvalidURL, o.URL)
	}
	return o, nil
}

// Snippet returns an iframe element for opts.
func Snippet(opts Options) (string, error) {
	o, err := opts.validate()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`<iframe src="%s" width="%d" height="%d" style="border: 1px solid #ccc;"></iframe>`,
		html.EscapeString(o.URL), o.Width, o.Height), nil
}

// Page returns a complete HTML document embedding the iframe.
func Page(opts Options) (string, error) {
	snippet, err := Snippet(opts)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&sb, "<title>IFramer - %s</title>\n", html.EscapeString(strings.TrimSpace(opts.URL)))
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(snippet)
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String(), nil
}
