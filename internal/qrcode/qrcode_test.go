package qrcode

import (
	"bytes"
	"errors"
	"image"
	stdcolor "image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateAndRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		opts Options
		url  bool
	}{
		{name: "url with defaults", text: "https://example.com/path?q=1", opts: DefaultOptions(), url: true},
		{name: "plain text at level H", text: "hello devkit", opts: Options{Size: 300, Foreground: "#112233", Background: "#ffffff", Level: "H", Margin: 4}},
		{name: "tiny size grows to fit", text: "x", opts: Options{Size: 10, Foreground: "#000", Background: "#fff", Level: "L", Margin: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			if opts.Foreground == "#000" {
				opts.Foreground, opts.Background = "#000000", "#ffffff"
			}
			data, err := Generate(tt.text, opts)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("output is not a PNG: %v", err)
			}
			if b := img.Bounds(); b.Dx() != b.Dy() || b.Dx() < opts.Size {
				t.Errorf("unexpected bounds %v", b)
			}

			got, err := Read(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if diff := cmp.Diff(&Decoded{Text: tt.text, IsURL: tt.url}, got); diff != "" {
				t.Errorf("decoded mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateUsesColors(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Foreground = "#ff0000"
	opts.Background = "#00ff00"
	img, err := Image("colors", opts)
	if err != nil {
		t.Fatal(err)
	}

	// The corner is quiet zone; the finder pattern starts after the margin.
	if got := stdcolor.NRGBAModel.Convert(img.At(0, 0)); got != (stdcolor.NRGBA{G: 255, A: 255}) {
		t.Errorf("expected background at the corner, got %v", got)
	}
	b := img.Bounds()
	found := false
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if stdcolor.NRGBAModel.Convert(img.At(x, y)) == (stdcolor.NRGBA{R: 255, A: 255}) {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected foreground pixels")
	}
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		modify  func(*Options)
		wantErr error
	}{
		{name: "empty text", text: "", modify: func(*Options) {}, wantErr: ErrEmptyText},
		{name: "bad color", text: "x", modify: func(o *Options) { o.Foreground = "blue-ish" }, wantErr: ErrInvalidColor},
		{name: "bad level", text: "x", modify: func(o *Options) { o.Level = "Z" }, wantErr: ErrInvalidLevel},
		{name: "negative margin", text: "x", modify: func(o *Options) { o.Margin = -1 }, wantErr: ErrInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := DefaultOptions()
			tt.modify(&opts)
			if _, err := Generate(tt.text, opts); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	t.Parallel()

	t.Run("blank image has no code", func(t *testing.T) {
		t.Parallel()
		img := image.NewGray(image.Rect(0, 0, 64, 64))
		for i := range img.Pix {
			img.Pix[i] = 0xff
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			t.Fatal(err)
		}
		if _, err := Read(&buf); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("not an image", func(t *testing.T) {
		t.Parallel()
		if _, err := Read(strings.NewReader("plain text")); !errors.Is(err, ErrInvalidImage) {
			t.Errorf("expected ErrInvalidImage, got %v", err)
		}
	})
}

func TestOrient(t *testing.T) {
	t.Parallel()

	// 2x1 image: red on the left, blue on the right.
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	red := stdcolor.RGBA{R: 255, A: 255}
	blue := stdcolor.RGBA{B: 255, A: 255}
	src.Set(0, 0, red)
	src.Set(1, 0, blue)

	t.Run("mirror swaps left and right", func(t *testing.T) {
		t.Parallel()
		got := Orient(src, 2)
		if got.At(0, 0) != blue || got.At(1, 0) != red {
			t.Error("expected mirrored pixels")
		}
	})

	t.Run("rotate 90 makes the image tall", func(t *testing.T) {
		t.Parallel()
		got := Orient(src, 6)
		if b := got.Bounds(); b.Dx() != 1 || b.Dy() != 2 {
			t.Fatalf("unexpected bounds %v", b)
		}
		if got.At(0, 0) != red || got.At(0, 1) != blue {
			t.Error("expected red on top after clockwise rotation")
		}
	})

	t.Run("normal orientation is unchanged", func(t *testing.T) {
		t.Parallel()
		if Orient(src, 1) != image.Image(src) {
			t.Error("expected the same image")
		}
	})

	if Orientation([]byte("no exif here")) != 1 {
		t.Error("expected default orientation for data without EXIF")
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{
		"https://example.com": true,
		"mailto:me@x.org":     true,
		"example.com":         false,
		"hello world":         false,
	} {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	out, err := Terminal("hi", "L", 1)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	// Version 1 is 21 modules; with a margin of 1 that is 23 columns.
	if n := len([]rune(lines[0])); n != 23 {
		t.Errorf("expected 23 columns, got %d", n)
	}
	if len(lines) != 12 {
		t.Errorf("expected 12 rows, got %d", len(lines))
	}
}
