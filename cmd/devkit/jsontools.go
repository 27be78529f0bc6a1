package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/devkit/internal/convert"
	"github.com/nao1215/devkit/internal/jsonedit"
	"github.com/nao1215/devkit/internal/model"
)

// newJSONToolCmd creates a command that turns its input into JSON with fn.
// Input comes from the arguments, standard input or --file.
func newJSONToolCmd(name, long string, fn convert.Func) *cobra.Command {
	cmd := newToolCmd(name, "[text|-]", long)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runJSONToolCmd(cmd, args, name, fn)
	}
	cmd.Flags().StringP("file", "f", "", "Read the input from a file")
	return cmd
}

// runJSONToolCmd executes a JSON tool command.
func runJSONToolCmd(cmd *cobra.Command, args []string, name string, fn convert.Func) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	input, err := toolInput(cmd, args)
	if err != nil {
		return err
	}

	out, err := fn(input)
	if err != nil {
		return err
	}
	return env.emit(model.NewResult(name).WithBody(out, "json"))
}

// toolInput reads --file when it is set and the arguments or standard
// input otherwise.
func toolInput(cmd *cobra.Command, args []string) (string, error) {
	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return "", err
	}
	if path == "" {
		return readInput(cmd, args)
	}
	data, err := os.ReadFile(path) //nolint:gosec // user-selected file
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// NewJSONPrettyPrintCmd creates the json-pretty-print command.
func NewJSONPrettyPrintCmd() *cobra.Command {
	return newJSONToolCmd("json-pretty-print", `
Key order and number literals are kept as written.

Examples:
  devkit json-pretty-print '{"b":1,"a":[1,2]}'
  curl -s https://api.example.com/items | devkit json-pretty-print`, convert.PrettyJSON)
}

// NewCookiesToJSONCmd creates the cookies-to-json command.
func NewCookiesToJSONCmd() *cobra.Command {
	return newJSONToolCmd("cookies-to-json", `
A cookie header such as "a=1; b=2" becomes an array of name/value objects.

Examples:
  devkit cookies-to-json "session=abc123; theme=dark"`, convert.CookiesToJSON)
}

// NewJSONParserCmd creates the json-parser command.
func NewJSONParserCmd() *cobra.Command {
	return newJSONToolCmd("json-parser", `
Several documents separated by ",<newline>" are parsed into one array.

Examples:
  devkit json-parser '{"a":1}'
  devkit json-parser -f objects.txt`, convert.ParseJSONList)
}

// NewJSONEditorCmd creates the json-editor command.
func NewJSONEditorCmd() *cobra.Command {
	cmd := newToolCmd("json-editor", "[file|-]", `
Paths use dots and brackets ("a.b[2].c") or slashes ("a/b/2/c"). Values are
read as JSON and fall back to plain strings. Edits run in this order: every
--set, every --delete, every --add-field, every --append.

Examples:
  devkit json-editor --set name='"devkit"' --set version=2 package.json
  devkit json-editor --delete scripts.test package.json
  devkit json-editor --add-field 'dependencies:cobra=^1.10' package.json
  echo '{"tags":[]}' | devkit json-editor --append tags=go`)
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.RunE = runJSONEditorCmd

	cmd.Flags().StringArray("set", nil, "Set path=value (repeatable)")
	cmd.Flags().StringArray("delete", nil, "Remove the node at path (repeatable)")
	cmd.Flags().StringArray("add-field", nil, "Add path:key=value to an object; omit \"path:\" for the root (repeatable)")
	cmd.Flags().StringArray("append", nil, "Append path=value to an array (repeatable)")

	return cmd
}

var (
	errNoEdits   = errors.New("no edits: use --set, --delete, --add-field or --append")
	errPathValue = errors.New("expected path=value")
)

// jsonEdit is one edit requested on the command line.
type jsonEdit struct {
	flag  string
	apply func(doc any) (any, error)
}

// runJSONEditorCmd executes the json-editor command.
func runJSONEditorCmd(cmd *cobra.Command, args []string) error {
	edits, err := collectJSONEdits(cmd)
	if err != nil {
		return err
	}

	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	src, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	doc, err := jsonedit.Parse(src)
	if err != nil {
		return fmt.Errorf("%w: %v", convert.ErrParseJSON, err)
	}

	for _, e := range edits {
		if doc, err = e.apply(doc); err != nil {
			return fmt.Errorf("%s: %w", e.flag, err)
		}
		env.logger.Debug("applied edit", "edit", e.flag)
	}

	out, err := jsonedit.Format(doc)
	if err != nil {
		return err
	}
	return env.emit(model.NewResult("json-editor").WithBody(out, "json"))
}

// collectJSONEdits parses the edit flags in application order.
func collectJSONEdits(cmd *cobra.Command) ([]jsonEdit, error) {
	var edits []jsonEdit

	sets, err := cmd.Flags().GetStringArray("set")
	if err != nil {
		return nil, err
	}
	for _, s := range sets {
		path, value, err := splitPathValue(s)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %w", s, err)
		}
		edits = append(edits, jsonEdit{flag: "--set " + s, apply: func(doc any) (any, error) {
			return jsonedit.Update(doc, path, value)
		}})
	}

	deletes, err := cmd.Flags().GetStringArray("delete")
	if err != nil {
		return nil, err
	}
	for _, s := range deletes {
		path, err := jsonedit.ParsePath(s)
		if err != nil {
			return nil, fmt.Errorf("--delete %s: %w", s, err)
		}
		edits = append(edits, jsonEdit{flag: "--delete " + s, apply: func(doc any) (any, error) {
			return jsonedit.Remove(doc, path)
		}})
	}

	fields, err := cmd.Flags().GetStringArray("add-field")
	if err != nil {
		return nil, err
	}
	for _, s := range fields {
		target, rest := "", s
		if i := strings.IndexByte(s, ':'); i >= 0 && i < strings.IndexByte(s, '=') {
			target, rest = s[:i], s[i+1:]
		}
		path, err := jsonedit.ParsePath(target)
		if err != nil {
			return nil, fmt.Errorf("--add-field %s: %w", s, err)
		}
		key, raw, ok := strings.Cut(rest, "=")
		if !ok {
			return nil, fmt.Errorf("--add-field %s: expected key=value", s)
		}
		value := jsonedit.ParseValue(raw)
		edits = append(edits, jsonEdit{flag: "--add-field " + s, apply: func(doc any) (any, error) {
			return jsonedit.AddField(doc, path, key, value)
		}})
	}

	appends, err := cmd.Flags().GetStringArray("append")
	if err != nil {
		return nil, err
	}
	for _, s := range appends {
		path, value, err := splitPathValue(s)
		if err != nil {
			return nil, fmt.Errorf("--append %s: %w", s, err)
		}
		edits = append(edits, jsonEdit{flag: "--append " + s, apply: func(doc any) (any, error) {
			return jsonedit.AddArrayItem(doc, path, value)
		}})
	}

	if len(edits) == 0 {
		return nil, errNoEdits
	}
	return edits, nil
}

// splitPathValue parses "path=value" on the first '='.
func splitPathValue(s string) (jsonedit.Path, any, error) {
	target, raw, ok := strings.Cut(s, "=")
	if !ok {
		return nil, nil, errPathValue
	}
	path, err := jsonedit.ParsePath(target)
	if err != nil {
		return nil, nil, err
	}
	return path, jsonedit.ParseValue(raw), nil
}
