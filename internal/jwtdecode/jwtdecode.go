// Package jwtdecode inspects JSON Web Tokens without verifying them.
package jwtdecode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrInvalidFormat is returned when the token does not have three segments.
	ErrInvalidFormat = errors.New("Invalid JWT format. Expected: header.payload.signature") //nolint:staticcheck // shown to users verbatim

	// ErrInvalidSegment is returned when the header or payload is not base64url JSON.
	ErrInvalidSegment = errors.New("invalid JWT segment")
)

// Token is a decoded, unverified JWT.
type Token struct {
	Header    map[string]any `json:"header"`
	Payload   map[string]any `json:"payload"`
	Signature string         `json:"signature"`
}

// Decode splits a compact JWT and decodes its header and payload.
// The signature is kept as-is.
func Decode(raw string) (*Token, error) {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) != 3 {
		return nil, ErrInvalidFormat
	}

	header, err := decodeSegment("header", parts[0])
	if err != nil {
		return nil, err
	}
	payload, err := decodeSegment("payload", parts[1])
	if err != nil {
		return nil, err
	}
	return &Token{Header: header, Payload: payload, Signature: parts[2]}, nil
}

func decodeSegment(name, seg string) (map[string]any, error) {
	data, err := jwt.DecodeSegment(strings.TrimRight(seg, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSegment, name, err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSegment, name, err)
	}
	return m, nil
}

// ClaimTime is a registered time claim converted to a time.
type ClaimTime struct {
	Name string    `json:"name"`
	Time time.Time `json:"time"`
}

// timeClaims are the registered claims holding NumericDate values.
var timeClaims = []string{"exp", "iat", "nbf"}

// TimeClaims returns the exp, iat and nbf claims that are present and numeric.
func (t *Token) TimeClaims() []ClaimTime {
	out := make([]ClaimTime, 0, len(timeClaims))
	for _, name := range timeClaims {
		v, ok := t.Payload[name].(float64)
		if !ok {
			continue
		}
		sec, frac := math.Modf(v)
		out = append(out, ClaimTime{
			Name: name,
			Time: time.Unix(int64(sec), int64(frac*1e9)).UTC(),
		})
	}
	return out
}

// HasExpiry reports whether the payload carries a numeric exp claim.
func (t *Token) HasExpiry() bool {
	_, ok := t.Payload["exp"].(float64)
	return ok
}

// Expired reports whether a numeric exp is present and not after now.
func (t *Token) Expired(now time.Time) bool {
	if !t.HasExpiry() {
		return false
	}
	return !jwt.MapClaims(t.Payload).VerifyExpiresAt(now.Unix(), true)
}

// PrettyHeader returns the header as indented JSON.
func (t *Token) PrettyHeader() string {
	return pretty(t.Header)
}

// PrettyPayload returns the payload as indented JSON.
func (t *Token) PrettyPayload() string {
	return pretty(t.Payload)
}

func pretty(m map[string]any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
