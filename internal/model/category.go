package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category groups tools in listings.
type Category int

const (
	// CategoryEncoding holds encoders and decoders.
	CategoryEncoding Category = iota
	// CategoryJSON holds tools that operate on JSON documents.
	CategoryJSON
	// CategoryGenerators holds random and derived value generators.
	CategoryGenerators
	// CategoryConverters holds format and notation converters.
	CategoryConverters
	// CategoryWeb holds web development helpers.
	CategoryWeb
	// CategoryGames holds games.
	CategoryGames
	// CategoryOther holds everything else.
	CategoryOther
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryEncoding,
		CategoryJSON,
		CategoryGenerators,
		CategoryConverters,
		CategoryWeb,
		CategoryGames,
		CategoryOther,
	}
}

// String returns the short identifier of the category.
func (c Category) String() string {
	switch c {
	case CategoryEncoding:
		return "encoding"
	case CategoryJSON:
		return "json"
	case CategoryGenerators:
		return "generators"
	case CategoryConverters:
		return "converters"
	case CategoryWeb:
		return "web"
	case CategoryGames:
		return "games"
	case CategoryOther:
		return "other"
	default:
		return "unknown"
	}
}

// Label returns the human readable heading of the category.
func (c Category) Label() string {
	switch c {
	case CategoryEncoding:
		return "Encoding & Decoding"
	case CategoryJSON:
		return "JSON Tools"
	case CategoryGenerators:
		return "Generators"
	case CategoryConverters:
		return "Converters"
	case CategoryWeb:
		return "Web Development"
	case CategoryGames:
		return "Games"
	case CategoryOther:
		return "Other Tools"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the category as its identifier.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// ParseCategory converts an identifier such as "web" back to a Category.
func ParseCategory(s string) (Category, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, c := range AllCategories() {
		if c.String() == want {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}
