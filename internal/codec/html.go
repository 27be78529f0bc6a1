package codec

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlReplacer escapes the characters an HTML text node serializes as
// entities.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\u00a0", "&nbsp;",
)

// HTMLEntity converts special characters to and from HTML entities.
type HTMLEntity struct{}

// Name implements Codec.
func (HTMLEntity) Name() string { return "html-entity" }

// Encode implements Codec. Quotes are left untouched.
func (HTMLEntity) Encode(s string) (string, error) {
	return htmlReplacer.Replace(s), nil
}

// Decode implements Codec. Named and numeric character references are
// resolved; markup is left as text.
func (HTMLEntity) Decode(s string) (string, error) {
	return html.UnescapeString(s), nil
}
