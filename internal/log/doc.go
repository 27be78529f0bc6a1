// Package log provides secure logging built on log/slog.
//
// SecureHandler wraps any slog.Handler and masks credentials before they
// are written: cookies, JWTs, bearer tokens, and hub connection tokens
// embedded in URLs. Many devkit tools handle exactly this kind of input
// (the JWT decoder, cURL-to-markdown, the hub notifier), so even verbose
// logs must not echo it back.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("decoding", "token", raw) // token=***REDACTED***
package log
