package codec

import (
	"encoding/base64"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Base64 encodes UTF-8 text with the standard alphabet and padding.
type Base64 struct{}

// Name implements Codec.
func (Base64) Name() string { return "base64" }

// Encode implements Codec.
func (Base64) Encode(s string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(s)), nil
}

// Decode implements Codec. Whitespace is ignored and missing padding is
// tolerated. The decoded bytes must be valid UTF-8.
func (Base64) Decode(s string) (string, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	enc := base64.StdEncoding
	if !strings.HasSuffix(s, "=") && len(s)%4 != 0 {
		enc = base64.RawStdEncoding
	}
	b, err := enc.DecodeString(s)
	if err != nil || !utf8.Valid(b) {
		return "", ErrInvalidBase64
	}
	return string(b), nil
}
