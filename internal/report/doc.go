// Package report renders tool results and the tool catalog.
//
// This package contains writers for different output formats:
//   - TextWriter: plain output for terminals and pipes
//   - JSONWriter: structured JSON output for scripting
//   - MarkdownWriter: Markdown for documentation and sharing
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed with MultiWriter.
package report
