// Package jsonedit applies structural edits to a decoded JSON document:
// updating or removing a node, adding an object field and appending an
// array item. Every edit works on a copy and leaves its input untouched.
package jsonedit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Errors returned by the edit operations.
var (
	ErrPathNotFound = errors.New("path not found")
	ErrNotObject    = errors.New("target is not an object")
	ErrNotArray     = errors.New("target is not an array")
	ErrEmptyPath    = errors.New("path must not be empty")
	ErrEmptyKey     = errors.New("field name must not be empty")
	ErrInvalidPath  = errors.New("invalid path")
	ErrUnknownType  = errors.New("unknown value type")
	ErrTrailingData = errors.New("unexpected data after the JSON document")
)

// Parse decodes a single JSON document. Anything but whitespace after it
// is an error.
func Parse(input string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return doc, nil
}

// Format renders a document as JSON indented by two spaces.
func Format(doc any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Update replaces the node at path with value. An empty path replaces the
// whole document. The last segment may name a new object key.
func Update(doc any, path Path, value any) (any, error) {
	if len(path) == 0 {
		return clone(value), nil
	}
	out := clone(doc)
	parent, err := lookup(out, path[:len(path)-1])
	if err != nil {
		return nil, err
	}

	switch c := parent.(type) {
	case map[string]any:
		c[keyOf(path[len(path)-1])] = clone(value)
	case []any:
		i, err := indexOf(c, path[len(path)-1])
		if err != nil {
			return nil, err
		}
		c[i] = clone(value)
	default:
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return out, nil
}

// Remove deletes the node at path. Array elements after it shift down.
func Remove(doc any, path Path) (any, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	out := clone(doc)
	parentPath := path[:len(path)-1]
	parent, err := lookup(out, parentPath)
	if err != nil {
		return nil, err
	}

	switch c := parent.(type) {
	case map[string]any:
		k := keyOf(path[len(path)-1])
		if _, ok := c[k]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		delete(c, k)
		return out, nil
	case []any:
		i, err := indexOf(c, path[len(path)-1])
		if err != nil {
			return nil, err
		}
		spliced := append(c[:i:i], c[i+1:]...)
		return replaceAt(out, parentPath, spliced)
	default:
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
}

// AddField sets key on the object at path.
func AddField(doc any, path Path, key string, value any) (any, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrEmptyKey
	}
	out := clone(doc)
	target, err := lookup(out, path)
	if err != nil {
		return nil, err
	}
	obj, ok := target.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotObject, path)
	}
	obj[key] = clone(value)
	return out, nil
}

// AddArrayItem appends value to the array at path.
func AddArrayItem(doc any, path Path, value any) (any, error) {
	out := clone(doc)
	target, err := lookup(out, path)
	if err != nil {
		return nil, err
	}
	arr, ok := target.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotArray, path)
	}
	return replaceAt(out, path, append(arr, clone(value)))
}

// replaceAt stores v at path in doc, which must already be a private copy.
func replaceAt(doc any, path Path, v any) (any, error) {
	if len(path) == 0 {
		return v, nil
	}
	parent, err := lookup(doc, path[:len(path)-1])
	if err != nil {
		return nil, err
	}
	switch c := parent.(type) {
	case map[string]any:
		c[keyOf(path[len(path)-1])] = v
	case []any:
		i, err := indexOf(c, path[len(path)-1])
		if err != nil {
			return nil, err
		}
		c[i] = v
	}
	return doc, nil
}

func lookup(doc any, path Path) (any, error) {
	cur := doc
	for n, seg := range path {
		switch c := cur.(type) {
		case map[string]any:
			v, ok := c[keyOf(seg)]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path[:n+1])
			}
			cur = v
		case []any:
			i, err := indexOf(c, seg)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path[:n+1])
			}
			cur = c[i]
		default:
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path[:n+1])
		}
	}
	return cur, nil
}

func keyOf(seg any) string {
	if i, ok := seg.(int); ok {
		return strconv.Itoa(i)
	}
	return fmt.Sprint(seg)
}

func indexOf(arr []any, seg any) (int, error) {
	var i int
	switch s := seg.(type) {
	case int:
		i = s
	case string:
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an index", ErrPathNotFound, s)
		}
		i = n
	default:
		return 0, ErrPathNotFound
	}
	if i < 0 || i >= len(arr) {
		return 0, fmt.Errorf("%w: index %d out of range", ErrPathNotFound, i)
	}
	return i, nil
}

func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = clone(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = clone(e)
		}
		return out
	default:
		return v
	}
}

// ParseValue reads s as a JSON value and falls back to the plain string.
func ParseValue(s string) any {
	v, err := Parse(s)
	if err != nil {
		return s
	}
	return v
}

// ValueType is the kind of value created by ParseTyped.
type ValueType string

// Value types offered when adding a field or an array item.
const (
	TypeString  ValueType = "string"
	TypeNumber  ValueType = "number"
	TypeBoolean ValueType = "boolean"
	TypeNull    ValueType = "null"
	TypeObject  ValueType = "object"
	TypeArray   ValueType = "array"
)

// ParseTyped converts s to a value of type t. An unparsable number is 0, a
// boolean is true only for "true" in any case, and object and array
// produce empty containers.
func ParseTyped(s string, t ValueType) (any, error) {
	switch t {
	case TypeString, "":
		return s, nil
	case TypeNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return json.Number("0"), nil
		}
		return json.Number(strconv.FormatFloat(f, 'f', -1, 64)), nil
	case TypeBoolean:
		return strings.EqualFold(strings.TrimSpace(s), "true"), nil
	case TypeNull:
		return nil, nil
	case TypeObject:
		return map[string]any{}, nil
	case TypeArray:
		return []any{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
}

// TypeOf reports the JSON type of a decoded value.
func TypeOf(v any) ValueType {
	switch v.(type) {
	case nil:
		return TypeNull
	case map[string]any:
		return TypeObject
	case []any:
		return TypeArray
	case bool:
		return TypeBoolean
	case json.Number, float64, int, int64:
		return TypeNumber
	default:
		return TypeString
	}
}
