// Package qrcode generates QR code images with custom colors and reads QR
// codes back from photos and screenshots.
package qrcode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	stdcolor "image/color"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/nao1215/devkit/internal/color"
)

// Errors returned by the generator.
var (
	ErrEmptyText    = errors.New("text must not be empty")
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidLevel = errors.New("invalid error correction level")
	ErrInvalidSize  = errors.New("invalid size")
)

// Options controls the generated image.
type Options struct {
	// Size is the width and height of the image in pixels. It grows to fit
	// the symbol when too small.
	Size int
	// Foreground and Background are CSS colors of the dark and light modules.
	Foreground string
	Background string
	// Level is the error correction level: L, M, Q or H.
	Level string
	// Margin is the quiet zone around the symbol, in modules.
	Margin int
}

// DefaultOptions returns a 256px black on white code with level M.
func DefaultOptions() Options {
	return Options{
		Size:       256,
		Foreground: "#000000",
		Background: "#ffffff",
		Level:      "M",
		Margin:     2,
	}
}

// ParseLevel maps L, M, Q and H to an error correction level.
func ParseLevel(s string) (qr.ErrorCorrectionLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return qr.L, nil
	case "M", "":
		return qr.M, nil
	case "Q":
		return qr.Q, nil
	case "H":
		return qr.H, nil
	}
	return qr.M, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

func parseColor(s string) (stdcolor.NRGBA, error) {
	c, err := color.Parse(s)
	if err != nil {
		return stdcolor.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return stdcolor.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(c.A*255 + 0.5)}, nil
}

// encode builds the symbol. Each pixel of the result is one module.
func encode(text, level string) (barcode.Barcode, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	code, err := qr.Encode(text, lvl, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode QR code: %w", err)
	}
	return code, nil
}

func isDark(c stdcolor.Color) bool {
	r, g, b, _ := c.RGBA()
	return r+g+b < 3*0x8000
}

// Image renders text as a QR code image.
func Image(text string, opts Options) (image.Image, error) {
	if opts.Size < 0 || opts.Margin < 0 {
		return nil, ErrInvalidSize
	}
	fg, err := parseColor(opts.Foreground)
	if err != nil {
		return nil, err
	}
	bg, err := parseColor(opts.Background)
	if err != nil {
		return nil, err
	}
	code, err := encode(text, opts.Level)
	if err != nil {
		return nil, err
	}

	modules := code.Bounds().Dx()
	total := modules + 2*opts.Margin
	size := max(opts.Size, total)

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for py := range size {
		my := py*total/size - opts.Margin
		for px := range size {
			mx := px*total/size - opts.Margin
			c := bg
			if mx >= 0 && my >= 0 && mx < modules && my < modules && isDark(code.At(mx, my)) {
				c = fg
			}
			img.SetNRGBA(px, py, c)
		}
	}
	return img, nil
}

// Generate renders text as a PNG encoded QR code.
func Generate(text string, opts Options) ([]byte, error) {
	img, err := Image(text, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Terminal renders text as a QR code made of block characters, two
// modules per character cell, for printing to a terminal.
func Terminal(text, level string, margin int) (string, error) {
	code, err := encode(text, level)
	if err != nil {
		return "", err
	}
	modules := code.Bounds().Dx()
	total := modules + 2*margin
	dark := func(x, y int) bool {
		x, y = x-margin, y-margin
		return x >= 0 && y >= 0 && x < modules && y < modules && isDark(code.At(x, y))
	}

	var sb strings.Builder
	for y := 0; y < total; y += 2 {
		for x := range total {
			top, bottom := dark(x, y), y+1 < total && dark(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
