// Package config provides the runtime configuration for devkit.
// It defines tool defaults (token length, QR size, hub reconnect policy, ...),
// the optional YAML configuration file, and the XDG directories used for
// local state such as the preferences database.
package config
