package convert

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// TOMLToJSON converts a TOML document to JSON. Tables become objects with
// their keys in document order.
func TOMLToJSON(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyTOML
	}

	var data map[string]any
	md, err := toml.Decode(input, &data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseTOML, err)
	}

	root := NewObject()
	for _, key := range md.Keys() {
		placeTOMLKey(root, data, key)
	}
	return marshal(root)
}

// placeTOMLKey copies the value at key from data into root, creating
// intermediate objects in the order their keys are first seen.
func placeTOMLKey(root *Object, data map[string]any, key toml.Key) {
	obj := root
	src := data
	for i, part := range key {
		v, ok := src[part]
		if !ok {
			return
		}
		last := i == len(key)-1
		switch t := v.(type) {
		case map[string]any:
			child, ok := obj.Get(part)
			childObj, isObj := child.(*Object)
			if !ok || !isObj {
				childObj = NewObject()
				obj.Set(part, childObj)
			}
			obj, src = childObj, t
		case []map[string]any:
			if _, ok := obj.Get(part); !ok {
				obj.Set(part, tomlTables(t))
			}
			return
		default:
			if last {
				obj.Set(part, t)
			}
			return
		}
	}
}

// tomlTables converts an array of tables. Keys inside each table come out
// sorted.
func tomlTables(tables []map[string]any) []any {
	out := make([]any, len(tables))
	for i, t := range tables {
		out[i] = t
	}
	return out
}
