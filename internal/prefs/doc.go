// Package prefs stores the last-used values of tools in a local SQLite
// database.
//
// Values are JSON encoded and keyed by name. Writing a key replaces its
// previous value, so the last write wins. The database lives in the XDG
// data directory by default:
//
//	~/.local/share/devkit/devkit.db
package prefs
