// Package urlcompose builds URLs from a protocol, domain, port, path and a
// list of query parameters.
package urlcompose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultProtocol is used when a form does not name one.
const DefaultProtocol = "http"

// ErrInvalidParam is returned when a parameter flag is not name=value.
var ErrInvalidParam = errors.New("invalid parameter: expected name=value")

// Param is one query parameter. ID identifies the row across edits.
type Param struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Form is the state of the URL composer. It is persisted as the last-used
// value between runs.
type Form struct {
	Protocol string  `json:"protocol"`
	Domain   string  `json:"domain"`
	Port     string  `json:"port"`
	Path     string  `json:"path"`
	Params   []Param `json:"searchParams"`
}

// Compose renders the form as a URL. Parameters missing a name or a value
// are left out, and the query is omitted when nothing remains. Names and
// values are written as given.
func Compose(f Form) string {
	protocol := f.Protocol
	if protocol == "" {
		protocol = DefaultProtocol
	}

	var sb strings.Builder
	sb.WriteString(protocol)
	sb.WriteString("://")
	sb.WriteString(f.Domain)
	if f.Port != "" {
		sb.WriteString(":")
		sb.WriteString(f.Port)
	}
	if f.Path != "" {
		if !strings.HasPrefix(f.Path, "/") {
			sb.WriteString("/")
		}
		sb.WriteString(f.Path)
	}

	pairs := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		if p.Name == "" || p.Value == "" {
			continue
		}
		pairs = append(pairs, p.Name+"="+p.Value)
	}
	if len(pairs) > 0 {
		sb.WriteString("?")
		sb.WriteString(strings.Join(pairs, "&"))
	}
	return sb.String()
}

// Merge overlays the non-zero fields of patch onto old. A non-nil Params
// slice in patch replaces the old parameters.
func Merge(old, patch Form) Form {
	out := old
	if patch.Protocol != "" {
		out.Protocol = patch.Protocol
	}
	if patch.Domain != "" {
		out.Domain = patch.Domain
	}
	if patch.Port != "" {
		out.Port = patch.Port
	}
	if patch.Path != "" {
		out.Path = patch.Path
	}
	if patch.Params != nil {
		out.Params = append([]Param(nil), patch.Params...)
	}
	if out.Protocol == "" {
		out.Protocol = DefaultProtocol
	}
	return EnsureIDs(out)
}

// EnsureIDs assigns a random ID to every parameter that lacks one.
func EnsureIDs(f Form) Form {
	if len(f.Params) == 0 {
		return f
	}
	params := make([]Param, len(f.Params))
	for i, p := range f.Params {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		params[i] = p
	}
	f.Params = params
	return f
}

// ParseParam splits a name=value flag on the first '='.
func ParseParam(s string) (Param, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return Param{}, fmt.Errorf("%w: %q", ErrInvalidParam, s)
	}
	return Param{ID: uuid.NewString(), Name: strings.TrimSpace(name), Value: value}, nil
}

// ParseParams parses every flag with ParseParam.
func ParseParams(flags []string) ([]Param, error) {
	params := make([]Param, 0, len(flags))
	for _, s := range flags {
		p, err := ParseParam(s)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}
