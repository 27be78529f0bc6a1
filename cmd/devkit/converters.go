package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nao1215/devkit/internal/batch"
	"github.com/nao1215/devkit/internal/convert"
	"github.com/nao1215/devkit/internal/mdpreview"
	"github.com/nao1215/devkit/internal/model"
	"github.com/nao1215/devkit/internal/qrcode"
	"github.com/nao1215/devkit/internal/strcase"
	"github.com/nao1215/devkit/internal/svgjsx"
	"github.com/nao1215/devkit/internal/timestamp"
)

// NewQRReaderCmd creates the qr-reader command.
func NewQRReaderCmd() *cobra.Command {
	cmd := newToolCmd("qr-reader", "<image|->", `
PNG, JPEG and GIF images are supported. The EXIF orientation of photos is
honored.

Examples:
  devkit qr-reader qrcode.png
  devkit qr-reader - < photo.jpg`)
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = runQRReaderCmd
	return cmd
}

// runQRReaderCmd executes the qr-reader command.
func runQRReaderCmd(cmd *cobra.Command, args []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", qrcode.ErrInvalidImage, err)
		}
		defer f.Close()
		r = f
	}

	decoded, err := qrcode.Read(r)
	if err != nil {
		return err
	}

	result := model.NewResult("qr-reader")
	result.Add("Text", decoded.Text)
	result.Add("URL", fmt.Sprintf("%t", decoded.IsURL))
	return env.emit(result)
}

// NewTimestampConverterCmd creates the timestamp-converter command.
func NewTimestampConverterCmd() *cobra.Command {
	cmd := newToolCmd("timestamp-converter", "[value]", `
The value may be Unix seconds, Unix milliseconds or a date such as
2024-01-15T10:30:00Z. Without a value the current time is converted.

Examples:
  devkit timestamp-converter
  devkit timestamp-converter 1705314600
  devkit timestamp-converter --timezone Asia/Tokyo "2024-01-15 10:30:00"`)
	cmd.RunE = runTimestampConverterCmd
	cmd.Flags().String("timezone", "", "IANA time zone for local output and zoneless dates (default: system zone)")
	return cmd
}

// runTimestampConverterCmd executes the timestamp-converter command.
func runTimestampConverterCmd(cmd *cobra.Command, args []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	zone, err := cmd.Flags().GetString("timezone")
	if err != nil {
		return err
	}
	loc := time.Local
	if zone != "" {
		if loc, err = time.LoadLocation(zone); err != nil {
			return fmt.Errorf("unknown time zone %q: %w", zone, err)
		}
	}

	now := time.Now()
	t := now
	if len(args) > 0 {
		if t, err = timestamp.Parse(strings.Join(args, " "), loc); err != nil {
			return err
		}
	}

	f := timestamp.Convert(t, now, loc)
	result := model.NewResult("timestamp-converter")
	result.Add("Unix (seconds)", f.Unix).
		Add("Unix (milliseconds)", f.UnixMs).
		Add("ISO 8601", f.ISO8601).
		Add("UTC", f.UTC).
		Add("Local", f.Local).
		Add("Relative", f.Relative)
	return env.emit(result)
}

// NewStringCaseConverterCmd creates the string-case-converter command.
func NewStringCaseConverterCmd() *cobra.Command {
	cmd := newToolCmd("string-case-converter", "[text|-]", `
Without --case every style is shown.

Styles: camelCase, PascalCase, snake_case, SCREAMING_SNAKE_CASE, kebab-case,
SCREAMING-KEBAB-CASE, Title Case, Sentence case, lowercase, UPPERCASE,
dot.case, path/case

Examples:
  devkit string-case-converter "hello world example"
  devkit string-case-converter --case snake "helloWorldExample"`)
	cmd.RunE = runStringCaseConverterCmd
	cmd.Flags().StringP("case", "c", "", "Only convert to this style")
	return cmd
}

// runStringCaseConverterCmd executes the string-case-converter command.
func runStringCaseConverterCmd(cmd *cobra.Command, args []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	name, err := cmd.Flags().GetString("case")
	if err != nil {
		return err
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	result := model.NewResult("string-case-converter")
	if name != "" {
		kind, err := strcase.ParseKind(name)
		if err != nil {
			return err
		}
		return env.emit(result.WithBody(strcase.Convert(kind, text), ""))
	}

	for _, r := range strcase.All(text) {
		result.Add(r.Name, r.Value)
	}
	return env.emit(result)
}

// NewSVGConverterCmd creates the svg-converter command.
func NewSVGConverterCmd() *cobra.Command {
	cmd := newToolCmd("svg-converter", "[file|-]", `
Attributes are renamed to their React spelling and inline styles become
style objects.

Examples:
  devkit svg-converter icon.svg
  cat icon.svg | devkit svg-converter`)
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.RunE = runSVGConverterCmd
	return cmd
}

// runSVGConverterCmd executes the svg-converter command.
func runSVGConverterCmd(cmd *cobra.Command, args []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	svg, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	return env.emit(model.NewResult("svg-converter").WithBody(svgjsx.ToJSX(svg), "jsx"))
}

// converterFunc builds the conversion from the command's flags.
type converterFunc func(cmd *cobra.Command) (convert.Func, error)

// newConverterCmd creates a document-to-JSON command. Input comes from the
// arguments or standard input; --file converts files in parallel and
// writes the JSON next to each of them.
func newConverterCmd(name, long string, build converterFunc) *cobra.Command {
	cmd := newToolCmd(name, "[text|-]", long)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runConverterCmd(cmd, args, name, build)
	}
	cmd.Flags().StringArrayP("file", "f", nil, "Convert a file and write <name>.json next to it (repeatable)")
	return cmd
}

// runConverterCmd executes a document-to-JSON command.
func runConverterCmd(cmd *cobra.Command, args []string, name string, build converterFunc) error {
	fn, err := build(cmd)
	if err != nil {
		return err
	}
	files, err := cmd.Flags().GetStringArray("file")
	if err != nil {
		return err
	}

	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	if len(files) > 0 {
		ctx, cancel := signalContext(cmd)
		defer cancel()
		return convertFiles(ctx, env, name, files, fn)
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	out, err := fn(input)
	if err != nil {
		return err
	}
	return env.emit(model.NewResult(name).WithBody(out, "json"))
}

func convertFiles(ctx context.Context, env *toolEnv, name string, files []string, fn convert.Func) error {
	p := batch.New(batch.WithConcurrency(env.cfg.Concurrency), batch.WithLogger(env.logger))
	results, err := convert.Files(ctx, p, files, fn)
	if err != nil {
		var fe *convert.FileError
		if errors.As(err, &fe) {
			env.logger.Debug("conversion failed", "path", fe.Path)
		}
		return err
	}

	result := model.NewResult(name)
	for _, r := range results {
		result.Add(r.Source, fmt.Sprintf("%s (%s)", r.Output, humanize.Bytes(uint64(r.Bytes)))) //nolint:gosec // byte counts are never negative
	}
	return env.emit(result)
}

// NewCSVToJSONCmd creates the csv-to-json command.
func NewCSVToJSONCmd() *cobra.Command {
	cmd := newConverterCmd("csv-to-json", `
The first row is used as the header unless --no-header is set. Numbers,
booleans and empty cells become JSON values unless --no-typing is set.

Examples:
  devkit csv-to-json < users.csv
  devkit csv-to-json --delimiter ';' --no-header -f export.csv`, csvConverter)
	cmd.Flags().Bool("no-header", false, "Treat the first row as data")
	cmd.Flags().String("delimiter", ",", "Field delimiter (a single character)")
	cmd.Flags().Bool("no-typing", false, "Keep every cell as a string")
	return cmd
}

func csvConverter(cmd *cobra.Command) (convert.Func, error) {
	opts := convert.DefaultCSVOptions()

	noHeader, err := cmd.Flags().GetBool("no-header")
	if err != nil {
		return nil, err
	}
	noTyping, err := cmd.Flags().GetBool("no-typing")
	if err != nil {
		return nil, err
	}
	delim, err := cmd.Flags().GetString("delimiter")
	if err != nil {
		return nil, err
	}
	if delim == `\t` {
		delim = "\t"
	}
	if utf8.RuneCountInString(delim) != 1 {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", delim)
	}

	opts.Header = !noHeader
	opts.DynamicTyping = !noTyping
	opts.Delimiter, _ = utf8.DecodeRuneInString(delim)

	return func(input string) (string, error) {
		return convert.CSVToJSON(input, opts)
	}, nil
}

// NewYAMLToJSONCmd creates the yaml-to-json command.
func NewYAMLToJSONCmd() *cobra.Command {
	return newConverterCmd("yaml-to-json", `
Examples:
  devkit yaml-to-json < config.yaml
  devkit yaml-to-json -f a.yaml -f b.yml`, func(*cobra.Command) (convert.Func, error) {
		return convert.YAMLToJSON, nil
	})
}

// NewXMLToJSONCmd creates the xml-to-json command.
func NewXMLToJSONCmd() *cobra.Command {
	cmd := newConverterCmd("xml-to-json", `
Attributes are stored under "$" and mixed text under "_".

Examples:
  devkit xml-to-json < feed.xml
  devkit xml-to-json --merge-attrs --explicit-array '<a id="1"><b>x</b></a>'`, xmlConverter)
	cmd.Flags().Bool("merge-attrs", false, "Store attributes next to child elements")
	cmd.Flags().Bool("explicit-array", false, "Wrap every child element in an array")
	return cmd
}

func xmlConverter(cmd *cobra.Command) (convert.Func, error) {
	merge, err := cmd.Flags().GetBool("merge-attrs")
	if err != nil {
		return nil, err
	}
	explicit, err := cmd.Flags().GetBool("explicit-array")
	if err != nil {
		return nil, err
	}
	opts := convert.XMLOptions{MergeAttrs: merge, ExplicitArray: explicit}
	return func(input string) (string, error) {
		return convert.XMLToJSON(input, opts)
	}, nil
}

// NewTOMLToJSONCmd creates the toml-to-json command.
func NewTOMLToJSONCmd() *cobra.Command {
	return newConverterCmd("toml-to-json", `
Examples:
  devkit toml-to-json < Cargo.toml
  devkit toml-to-json -f pyproject.toml`, func(*cobra.Command) (convert.Func, error) {
		return convert.TOMLToJSON, nil
	})
}

// NewMarkdownPreviewCmd creates the markdown-preview command.
func NewMarkdownPreviewCmd() *cobra.Command {
	cmd := newToolCmd("markdown-preview", "<file|->", `
GitHub-flavored Markdown is rendered to sanitized HTML or, with
--render terminal, to styled terminal output. --watch re-renders whenever
the file changes.

Views: split (source and output), preview (output only), edit (source only)

Examples:
  devkit markdown-preview README.md
  devkit markdown-preview --render terminal --view preview README.md
  devkit markdown-preview --watch --render terminal notes.md`)
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = runMarkdownPreviewCmd

	cmd.Flags().String("render", "html", "Renderer: html or terminal")
	cmd.Flags().String("view", string(mdpreview.ViewSplit), "View: split, preview or edit")
	cmd.Flags().Int("width", mdpreview.DefaultWidth, "Wrap width of terminal rendering")
	cmd.Flags().BoolP("watch", "w", false, "Re-render when the file changes")

	return cmd
}

// runMarkdownPreviewCmd executes the markdown-preview command.
func runMarkdownPreviewCmd(cmd *cobra.Command, args []string) error {
	renderer, err := cmd.Flags().GetString("render")
	if err != nil {
		return err
	}
	viewName, err := cmd.Flags().GetString("view")
	if err != nil {
		return err
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return err
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}

	view, err := mdpreview.ParseViewMode(viewName)
	if err != nil {
		return err
	}
	if renderer != "html" && renderer != "terminal" {
		return fmt.Errorf("unknown renderer %q: must be html or terminal", renderer)
	}
	if watch && args[0] == "-" {
		return errors.New("--watch needs a file, not standard input")
	}

	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	render := func() error {
		src, err := readSource(cmd, args)
		if err != nil {
			return err
		}
		var out, lang string
		if renderer == "terminal" {
			out, err = mdpreview.RenderTerminal(src, width)
		} else {
			out, err = mdpreview.Render(src)
			lang = "html"
		}
		if err != nil {
			return err
		}
		if view != mdpreview.ViewPreview {
			lang = ""
		}
		return env.emit(model.NewResult("markdown-preview").WithBody(mdpreview.Compose(view, src, out), lang))
	}

	if err := render(); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()
	return mdpreview.Watch(ctx, args[0], mdpreview.DefaultDebounce, func() {
		if err := render(); err != nil {
			env.logger.Warn("failed to render", "path", args[0], "error", err)
		}
	}, env.logger)
}
