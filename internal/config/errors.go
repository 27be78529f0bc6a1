package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers match them with errors.Is.
var (
	// ErrInvalidOutputFormat is returned when the output format is not text, json or markdown.
	ErrInvalidOutputFormat = errors.New("invalid output format: must be text, json or markdown")

	// ErrInvalidConcurrency is returned when the batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidRevertDelay is returned when the revert delay is not positive.
	ErrInvalidRevertDelay = errors.New("invalid revert delay: must be positive")

	// ErrInvalidTokenLength is returned when the default token length is out of range.
	ErrInvalidTokenLength = errors.New("invalid token length: must be between 1 and 512")

	// ErrInvalidQRSize is returned when the QR code size is not positive.
	ErrInvalidQRSize = errors.New("invalid QR code size: must be positive")

	// ErrInvalidHubURL is returned when the hub URL is set but is not an http(s) or ws(s) URL.
	ErrInvalidHubURL = errors.New("invalid hub url: must start with http://, https://, ws:// or wss://")
)
