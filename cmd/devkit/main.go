// Package main provides the entry point for the devkit CLI.
//
// devkit is a collection of small developer utilities: encoders, generators,
// format converters, JSON helpers, web helpers and a party game. Every tool
// is a subcommand named after its route in the tool registry.
//
// Usage:
//
//	devkit list
//	devkit base64 "hello world"
//	echo '{"a":1}' | devkit json-pretty-print
//
// See --help for all available options.
package main

// main is the entry point for devkit.
func main() {
	Execute()
}
