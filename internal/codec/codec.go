// Package codec implements the reversible text encodings offered by devkit:
// Base64, URL component encoding and HTML entities.
package codec

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidBase64 is returned when Base64 input cannot be decoded.
	ErrInvalidBase64 = errors.New("Invalid Base64 string") //nolint:staticcheck // shown to users verbatim

	// ErrInvalidURLEncoding is returned when percent-encoded input is malformed.
	ErrInvalidURLEncoding = errors.New("Invalid URL-encoded string") //nolint:staticcheck // shown to users verbatim
)

// Codec is a reversible text transformation.
type Codec interface {
	// Name identifies the codec, e.g. "base64".
	Name() string
	Encode(s string) (string, error)
	Decode(s string) (string, error)
}

// Mode selects the direction of a Pane.
type Mode int

const (
	// ModeEncode transforms plain text into the encoded form.
	ModeEncode Mode = iota
	// ModeDecode transforms the encoded form back into plain text.
	ModeDecode
)

// String returns "encode" or "decode".
func (m Mode) String() string {
	if m == ModeDecode {
		return "decode"
	}
	return "encode"
}

// Apply runs c in the given mode. Input that is empty after trimming
// produces empty output and no error.
func Apply(c Codec, mode Mode, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	if mode == ModeDecode {
		return c.Decode(input)
	}
	return c.Encode(input)
}

// Pane is an interactive encode/decode session: one input, one output and
// the direction between them.
type Pane struct {
	codec  Codec
	mode   Mode
	input  string
	output string
	err    error
}

// NewPane creates a Pane in encode mode.
func NewPane(c Codec) *Pane {
	return &Pane{codec: c, mode: ModeEncode}
}

// SetInput replaces the input and recomputes the output. On failure the
// output is cleared and Err reports the problem.
func (p *Pane) SetInput(s string) {
	p.input = s
	p.recompute()
}

// Toggle switches direction and feeds the previous output back in as input,
// so an encoded value can be decoded again with one action.
func (p *Pane) Toggle() {
	if p.mode == ModeEncode {
		p.mode = ModeDecode
	} else {
		p.mode = ModeEncode
	}
	p.input = p.output
	p.recompute()
}

func (p *Pane) recompute() {
	out, err := Apply(p.codec, p.mode, p.input)
	if err != nil {
		p.output = ""
		p.err = err
		return
	}
	p.output = out
	p.err = nil
}

// Mode returns the current direction.
func (p *Pane) Mode() Mode { return p.mode }

// Input returns the current input.
func (p *Pane) Input() string { return p.input }

// Output returns the current output.
func (p *Pane) Output() string { return p.output }

// Err returns the error of the last transformation, if any.
func (p *Pane) Err() error { return p.err }
