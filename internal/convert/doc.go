// Package convert turns CSV, YAML, XML, TOML and cookie strings into
// indented JSON, and reformats or splits existing JSON.
//
// Converters that read ordered formats (CSV headers, YAML mappings, XML
// elements) keep the source key order in the JSON output.
package convert
