package codec

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const upperHex = "0123456789ABCDEF"

// URL encodes a single URL component. Everything except ASCII letters,
// digits and - _ . ! ~ * ' ( ) is percent-encoded as UTF-8.
type URL struct{}

// Name implements Codec.
func (URL) Name() string { return "url" }

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// Encode implements Codec.
func (URL) Encode(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&15])
	}
	return b.String(), nil
}

// Decode implements Codec. A plus sign is kept as is; malformed escapes and
// escapes that do not form valid UTF-8 are rejected.
func (URL) Decode(s string) (string, error) {
	out, err := url.PathUnescape(s)
	if err != nil || !utf8.ValidString(out) {
		return "", ErrInvalidURLEncoding
	}
	return out, nil
}
