package convert

import "errors"

// Errors returned by the converters. Messages are shown to users as is.
//
//nolint:staticcheck // user-facing messages are capitalized
var (
	ErrEmptyCSV   = errors.New("Please enter CSV data to convert")
	ErrEmptyYAML  = errors.New("Please enter YAML data to convert")
	ErrEmptyXML   = errors.New("Please enter XML data to convert")
	ErrEmptyTOML  = errors.New("Please enter TOML data to convert")
	ErrEmptyJSON  = errors.New("Please enter JSON data")
	ErrParseCSV   = errors.New("CSV Parse Error")
	ErrParseYAML  = errors.New("YAML Parse Error")
	ErrParseXML   = errors.New("XML Parse Error")
	ErrParseTOML  = errors.New("TOML Parse Error")
	ErrParseJSON  = errors.New("JSON Parse Error")
	ErrNoXMLRoot  = errors.New("no root element")
	ErrMultiRoots = errors.New("multiple root elements")
)
