package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PrettyJSON reindents a JSON document with two spaces. Key order and
// number literals are kept exactly as written.
func PrettyJSON(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyJSON
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(input)), "", "  "); err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseJSON, err)
	}
	return buf.String(), nil
}

// ParseJSONList parses a list of JSON values separated by ",\n". This is
// the shape produced by copying several log lines, each holding a JSON
// value or an escaped JSON string. One value is returned as itself, more as
// an array.
func ParseJSONList(input string) (string, error) {
	var values []json.RawMessage
	for i, piece := range strings.Split(input, ",\n") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		if !json.Valid([]byte(piece)) {
			var probe any
			err := json.Unmarshal([]byte(piece), &probe)
			return "", fmt.Errorf("%w: item %d: %v", ErrParseJSON, i+1, err)
		}
		values = append(values, json.RawMessage(piece))
	}

	switch len(values) {
	case 0:
		return "", ErrEmptyJSON
	case 1:
		return PrettyJSON(string(values[0]))
	default:
		return marshal(values)
	}
}

func marshalCompact(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
