// Package registry holds the static list of devkit tools together with
// their route paths, labels and categories.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/nao1215/devkit/internal/model"
)

// RootPath is the path of the tool index.
const RootPath = "/"

// ErrToolNotFound is returned when no tool is registered under a path.
var ErrToolNotFound = errors.New("tool not found")

// Tool describes one registered tool.
type Tool struct {
	// Path is the route path, e.g. "/base64".
	Path string `json:"path"`

	// Label is the display name.
	Label string `json:"label"`

	// Description is a one-line summary.
	Description string `json:"description"`

	// Category groups the tool in listings.
	Category model.Category `json:"category"`
}

// Name returns the path without its leading slash. It is used as the
// subcommand name.
func (t Tool) Name() string {
	return strings.TrimPrefix(t.Path, "/")
}

var tools = []Tool{
	{"/base64", "Base64 Encoder/Decoder", "Encode text to Base64 or decode Base64 to text", model.CategoryEncoding},
	{"/url-encoder", "URL Encoder/Decoder", "Encode or decode URL components", model.CategoryEncoding},
	{"/jwt-decoder", "JWT Decoder", "Decode and inspect JSON Web Tokens", model.CategoryEncoding},

	{"/token-generator", "Token Generator", "Generate secure random tokens in various formats", model.CategoryGenerators},
	{"/uuid-generator", "UUID Generator", "Generate RFC 4122 version 4 UUIDs", model.CategoryGenerators},
	{"/hash-generator", "Hash Generator", "Generate SHA-1, SHA-256, SHA-384, SHA-512 hashes", model.CategoryGenerators},
	{"/qr-code-generator", "QR Code Generator", "Generate QR codes with custom colors and sizes", model.CategoryGenerators},
	{"/qr-reader", "QR Code Reader", "Decode QR codes from images", model.CategoryConverters},

	{"/timestamp-converter", "Timestamp Converter", "Convert between Unix timestamps and dates", model.CategoryConverters},
	{"/string-case-converter", "String Case Converter", "Convert text between camelCase, snake_case, etc.", model.CategoryConverters},
	{"/svg-converter", "SVG Converter", "Convert SVG markup to React JSX", model.CategoryConverters},
	{"/csv-to-json", "CSV to JSON Converter", "Convert CSV data to JSON with header detection", model.CategoryConverters},
	{"/yaml-to-json", "YAML to JSON Converter", "Convert YAML configuration files to JSON", model.CategoryConverters},
	{"/xml-to-json", "XML to JSON Converter", "Convert XML documents to JSON with attribute options", model.CategoryConverters},
	{"/toml-to-json", "TOML to JSON Converter", "Convert TOML configuration files to JSON", model.CategoryConverters},

	{"/json-pretty-print", "JSON Pretty Print", "Format and beautify JSON", model.CategoryJSON},
	{"/cookies-to-json", "Cookies to JSON", "Parse cookie strings into JSON", model.CategoryJSON},
	{"/json-parser", "JSON Parser", "Parse and validate JSON data", model.CategoryJSON},
	{"/json-editor", "JSON Editor", "Edit JSON by adding or removing fields and array items", model.CategoryJSON},

	{"/url-composer", "URL Composer", "Build URLs with query parameters", model.CategoryWeb},
	{"/iframer", "Iframer", "Preview URLs in an iframe", model.CategoryWeb},
	{"/signalr-notifier", "SignalR Notifier", "Connect and send messages via SignalR", model.CategoryWeb},
	{"/regex-tester", "Regex Tester", "Test regular expressions with live match highlighting", model.CategoryWeb},
	{"/color-converter", "Color Converter", "Convert between HEX, RGB, RGBA, HSL, and HSLA", model.CategoryWeb},
	{"/curl-to-markdown", "cURL to Markdown", "Convert cURL commands to Markdown API documentation", model.CategoryWeb},
	{"/markdown-preview", "Markdown Preview", "Live preview of GitHub-flavored markdown", model.CategoryConverters},
	{"/html-entity-encoder", "HTML Entity Encoder/Decoder", "Convert special characters to/from HTML entities", model.CategoryEncoding},
	{"/lorem-ipsum-generator", "Lorem Ipsum Generator", "Generate placeholder text for mockups", model.CategoryGenerators},
	{"/text-diff-viewer", "Text Diff Viewer", "Compare two texts with line-by-line highlighting", model.CategoryOther},

	{"/hedbanz-game", "Hedbanz - Adivina Quién", "Juego de adivinanzas donde los demás dan pistas sobre un personaje", model.CategoryGames},
}

// Tools returns every registered tool in display order.
// The returned slice is a copy.
func Tools() []Tool {
	out := make([]Tool, len(tools))
	copy(out, tools)
	return out
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Lookup returns the tool registered under path. The leading slash is optional.
func Lookup(path string) (Tool, error) {
	p := normalize(path)
	for _, t := range tools {
		if t.Path == p {
			return t, nil
		}
	}
	return Tool{}, fmt.Errorf("%w: %s", ErrToolNotFound, path)
}

// Label returns the display label for a path. The root path is "Home";
// an unknown path is returned unchanged.
func Label(path string) string {
	if path == "" || path == RootPath {
		return "Home"
	}
	t, err := Lookup(path)
	if err != nil {
		return path
	}
	return t.Label
}

// Group is the set of tools in one category.
type Group struct {
	Category model.Category `json:"category"`
	Tools    []Tool         `json:"tools"`
}

// ByCategory groups the tools by category in category display order.
// Categories without tools are omitted.
func ByCategory() []Group {
	grouped := make(map[model.Category][]Tool)
	for _, t := range tools {
		grouped[t.Category] = append(grouped[t.Category], t)
	}

	groups := make([]Group, 0, len(grouped))
	for _, c := range model.AllCategories() {
		if len(grouped[c]) == 0 {
			continue
		}
		groups = append(groups, Group{Category: c, Tools: grouped[c]})
	}
	return groups
}

// maxSuggestDistance bounds how different a suggestion may be.
const maxSuggestDistance = 3

// Suggest returns up to limit tool names close to name, nearest first.
func Suggest(name string, limit int) []string {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "/")

	type candidate struct {
		name string
		dist int
	}
	candidates := make([]candidate, 0)
	for _, t := range tools {
		n := t.Name()
		d := levenshtein.ComputeDistance(name, n)
		if d <= maxSuggestDistance || (name != "" && strings.HasPrefix(n, name)) {
			candidates = append(candidates, candidate{name: n, dist: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}
