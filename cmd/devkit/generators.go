package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nao1215/devkit/internal/batch"
	"github.com/nao1215/devkit/internal/config"
	"github.com/nao1215/devkit/internal/hashgen"
	"github.com/nao1215/devkit/internal/lorem"
	"github.com/nao1215/devkit/internal/model"
	"github.com/nao1215/devkit/internal/qrcode"
	"github.com/nao1215/devkit/internal/token"
	"github.com/nao1215/devkit/internal/uuidgen"
)

// NewTokenGeneratorCmd creates the token-generator command.
func NewTokenGeneratorCmd() *cobra.Command {
	cmd := newToolCmd("token-generator", "", `
Tokens are drawn from crypto/rand.

Charsets: alphanumeric, alphabetic, numeric, hex, base64, urlsafe

Examples:
  devkit token-generator
  devkit token-generator -l 64 -c hex
  devkit token-generator -n 5 -c urlsafe`)
	cmd.Args = cobra.NoArgs
	cmd.RunE = runTokenGeneratorCmd

	cmd.Flags().IntP("length", "l", config.DefaultTokenLength,
		fmt.Sprintf("Token length (%d-%d)", token.MinLength, token.MaxLength))
	cmd.Flags().IntP("count", "n", 1,
		fmt.Sprintf("Number of tokens (1-%d)", token.MaxCount))
	cmd.Flags().StringP("charset", "c", config.DefaultTokenCharset,
		"Character set of the token")

	return cmd
}

// runTokenGeneratorCmd executes the token-generator command.
func runTokenGeneratorCmd(cmd *cobra.Command, _ []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	length, err := intFlag(cmd, "length", env.cfg.Token.Length)
	if err != nil {
		return err
	}
	count, err := intFlag(cmd, "count", env.cfg.Token.Count)
	if err != nil {
		return err
	}
	name, err := stringFlag(cmd, "charset", env.cfg.Token.Charset)
	if err != nil {
		return err
	}

	charset, err := token.ParseCharset(name)
	if err != nil {
		return err
	}

	tokens, err := token.NewGenerator(nil).GenerateN(charset, length, count)
	if err != nil {
		return err
	}
	env.logger.Debug("generated tokens", "charset", charset.String(), "length", length, "count", count)

	return env.emit(model.NewResult("token-generator").WithBody(strings.Join(tokens, "\n"), ""))
}

// NewUUIDGeneratorCmd creates the uuid-generator command.
func NewUUIDGeneratorCmd() *cobra.Command {
	cmd := newToolCmd("uuid-generator", "", `
Formats: lowercase, uppercase, no-hyphens, braces

Examples:
  devkit uuid-generator
  devkit uuid-generator -n 5 -f braces
  devkit uuid-generator --reformat 550E8400E29B41D4A716446655440000`)
	cmd.Args = cobra.NoArgs
	cmd.RunE = runUUIDGeneratorCmd

	cmd.Flags().IntP("count", "n", 1,
		fmt.Sprintf("Number of UUIDs (1-%d)", uuidgen.MaxCount))
	cmd.Flags().StringP("format", "f", config.DefaultUUIDFormat,
		"Rendering of the UUIDs")
	cmd.Flags().String("reformat", "",
		"Render an existing UUID in the chosen format instead of generating one")

	return cmd
}

// runUUIDGeneratorCmd executes the uuid-generator command.
func runUUIDGeneratorCmd(cmd *cobra.Command, _ []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	count, err := intFlag(cmd, "count", env.cfg.UUID.Count)
	if err != nil {
		return err
	}
	name, err := stringFlag(cmd, "format", env.cfg.UUID.Format)
	if err != nil {
		return err
	}
	existing, err := cmd.Flags().GetString("reformat")
	if err != nil {
		return err
	}

	format, err := uuidgen.ParseFormat(name)
	if err != nil {
		return err
	}

	var ids []string
	if existing != "" {
		id, err := uuidgen.Reformat(existing, format)
		if err != nil {
			return err
		}
		ids = []string{id}
	} else {
		if ids, err = uuidgen.NewN(format, count); err != nil {
			return err
		}
	}

	return env.emit(model.NewResult("uuid-generator").WithBody(strings.Join(ids, "\n"), ""))
}

// NewHashGeneratorCmd creates the hash-generator command.
func NewHashGeneratorCmd() *cobra.Command {
	cmd := newToolCmd("hash-generator", "[text|-]", `
Text is hashed with every selected algorithm concurrently. With --file the
files are hashed in parallel instead.

Algorithms: SHA-1, SHA-256, SHA-384, SHA-512, SHA3-256, SHA3-512,
BLAKE2b-256, BLAKE2b-512

Examples:
  devkit hash-generator "hello world"
  devkit hash-generator -a sha256 -a sha3-256 "hello world"
  devkit hash-generator --all -f go.mod -f go.sum`)
	cmd.RunE = runHashGeneratorCmd

	cmd.Flags().StringSliceP("algorithm", "a", nil,
		"Algorithms to compute (default: SHA-1, SHA-256, SHA-384, SHA-512)")
	cmd.Flags().Bool("all", false, "Compute every supported algorithm")
	cmd.Flags().StringArrayP("file", "f", nil, "Hash the contents of a file (repeatable)")

	return cmd
}

// runHashGeneratorCmd executes the hash-generator command.
func runHashGeneratorCmd(cmd *cobra.Command, args []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	algs, err := selectedAlgorithms(cmd, env.cfg)
	if err != nil {
		return err
	}
	files, err := cmd.Flags().GetStringArray("file")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	if len(files) > 0 {
		p := batch.New(batch.WithConcurrency(env.cfg.Concurrency), batch.WithLogger(env.logger))
		results, err := hashgen.Files(ctx, p, files, algs)
		if err != nil {
			return err
		}
		return env.emit(model.NewResult("hash-generator").WithBody(formatFileHashes(results), ""))
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	results, err := hashgen.All(ctx, text, algs)
	if err != nil {
		return err
	}

	result := model.NewResult("hash-generator")
	for _, r := range results {
		result.Add(r.Name, r.Hex)
	}
	return env.emit(result)
}

// selectedAlgorithms resolves --all, --algorithm and the configured list.
func selectedAlgorithms(cmd *cobra.Command, cfg *config.Config) ([]hashgen.Algorithm, error) {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return nil, err
	}
	if all {
		return hashgen.AllAlgorithms, nil
	}

	names, err := cmd.Flags().GetStringSlice("algorithm")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = cfg.Hash.Algorithms
	}
	return hashgen.ParseAlgorithms(names)
}

// formatFileHashes renders one block per file headed by its path and size.
func formatFileHashes(results []hashgen.FileResult) string {
	var sb strings.Builder
	for i, fr := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fr.Path)
		if info, err := os.Stat(fr.Path); err == nil {
			fmt.Fprintf(&sb, " (%s)", humanize.Bytes(uint64(info.Size()))) //nolint:gosec // file sizes are never negative
		}
		sb.WriteString("\n")
		for _, line := range strings.Split(hashgen.Format(fr.Results), "\n") {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}

// NewQRCodeGeneratorCmd creates the qr-code-generator command.
func NewQRCodeGeneratorCmd() *cobra.Command {
	cmd := newToolCmd("qr-code-generator", "[text|-]", `
Without --file the code is printed to the terminal with block characters.
With --file a PNG image is written.

Examples:
  devkit qr-code-generator https://example.com
  devkit qr-code-generator --file qrcode.png --size 512 https://example.com
  devkit qr-code-generator --file qr.png --foreground "#1e3a8a" --level H "hello"`)
	cmd.RunE = runQRCodeGeneratorCmd

	cmd.Flags().String("file", "", "Write a PNG image to this path")
	cmd.Flags().Int("size", config.DefaultQRSize, "Image size in pixels")
	cmd.Flags().String("foreground", "#000000", "Module color")
	cmd.Flags().String("background", "#ffffff", "Background color")
	cmd.Flags().String("level", config.DefaultQRLevel, "Error correction level: L, M, Q or H")
	cmd.Flags().Int("margin", config.DefaultQRMargin, "Quiet zone in modules")

	return cmd
}

// runQRCodeGeneratorCmd executes the qr-code-generator command.
func runQRCodeGeneratorCmd(cmd *cobra.Command, args []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	opts, err := qrOptions(cmd, env.cfg)
	if err != nil {
		return err
	}
	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	result := model.NewResult("qr-code-generator")
	if path == "" {
		art, err := qrcode.Terminal(text, opts.Level, opts.Margin)
		if err != nil {
			return err
		}
		return env.emit(result.WithBody(art, ""))
	}

	data, err := qrcode.Generate(text, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // images are meant to be shared
		return fmt.Errorf("failed to write QR code: %w", err)
	}
	env.logger.Debug("wrote QR code", "path", path, "bytes", len(data))

	result.Add("File", path).
		Add("Size", humanize.Bytes(uint64(len(data)))).
		Add("Level", opts.Level)
	return env.emit(result)
}

// qrOptions overlays the flags on the configured QR options.
func qrOptions(cmd *cobra.Command, cfg *config.Config) (qrcode.Options, error) {
	opts := qrcode.Options{
		Size:       cfg.QR.Size,
		Foreground: cfg.QR.Foreground,
		Background: cfg.QR.Background,
		Level:      cfg.QR.Level,
		Margin:     cfg.QR.Margin,
	}

	var err error
	if opts.Size, err = intFlag(cmd, "size", opts.Size); err != nil {
		return opts, err
	}
	if opts.Foreground, err = stringFlag(cmd, "foreground", opts.Foreground); err != nil {
		return opts, err
	}
	if opts.Background, err = stringFlag(cmd, "background", opts.Background); err != nil {
		return opts, err
	}
	if opts.Level, err = stringFlag(cmd, "level", opts.Level); err != nil {
		return opts, err
	}
	if opts.Margin, err = intFlag(cmd, "margin", opts.Margin); err != nil {
		return opts, err
	}
	return opts, nil
}

// NewLoremIpsumGeneratorCmd creates the lorem-ipsum-generator command.
func NewLoremIpsumGeneratorCmd() *cobra.Command {
	cmd := newToolCmd("lorem-ipsum-generator", "", `
Counts are limited to 50 paragraphs, 200 sentences or 1000 words.

Examples:
  devkit lorem-ipsum-generator
  devkit lorem-ipsum-generator -t words -n 20
  devkit lorem-ipsum-generator -t sentences -n 3 --seed 42`)
	cmd.Args = cobra.NoArgs
	cmd.RunE = runLoremIpsumGeneratorCmd

	cmd.Flags().StringP("type", "t", string(lorem.Paragraphs), "Unit to generate: paragraphs, sentences or words")
	cmd.Flags().IntP("count", "n", 0, "Number of units (default from configuration)")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible output (0 picks a random seed)")

	return cmd
}

// runLoremIpsumGeneratorCmd executes the lorem-ipsum-generator command.
func runLoremIpsumGeneratorCmd(cmd *cobra.Command, _ []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	name, err := cmd.Flags().GetString("type")
	if err != nil {
		return err
	}
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return err
	}
	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return err
	}

	unit, err := lorem.ParseUnit(name)
	if err != nil {
		return err
	}
	if count == 0 {
		count = configuredLoremCount(env.cfg, unit)
	}

	gen := lorem.New()
	if seed != 0 {
		gen = lorem.NewSeeded(seed)
	}
	return env.emit(model.NewResult("lorem-ipsum-generator").WithBody(gen.Generate(unit, count), ""))
}

func configuredLoremCount(cfg *config.Config, u lorem.Unit) int {
	switch u {
	case lorem.Paragraphs:
		return cfg.Lorem.Paragraphs
	case lorem.Sentences:
		return cfg.Lorem.Sentences
	default:
		return cfg.Lorem.Words
	}
}
