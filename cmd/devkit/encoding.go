package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nao1215/devkit/internal/codec"
	"github.com/nao1215/devkit/internal/jwtdecode"
	"github.com/nao1215/devkit/internal/model"
)

// NewBase64Cmd creates the base64 command.
func NewBase64Cmd() *cobra.Command {
	return newCodecCmd("base64", codec.Base64{}, `
Examples:
  devkit base64 "hello world"
  devkit base64 --decode aGVsbG8gd29ybGQ=
  cat data.txt | devkit base64`)
}

// NewURLEncoderCmd creates the url-encoder command.
func NewURLEncoderCmd() *cobra.Command {
	return newCodecCmd("url-encoder", codec.URL{}, `
Encoding follows encodeURIComponent: only A-Z a-z 0-9 - _ . ! ~ * ' ( )
are kept as is.

Examples:
  devkit url-encoder "a b&c=d"
  devkit url-encoder -d "a%20b%26c%3Dd"`)
}

// NewHTMLEntityEncoderCmd creates the html-entity-encoder command.
func NewHTMLEntityEncoderCmd() *cobra.Command {
	return newCodecCmd("html-entity-encoder", codec.HTMLEntity{}, `
Encoding escapes &, <, > and non-breaking spaces. Decoding understands every
named and numeric entity.

Examples:
  devkit html-entity-encoder "<p>Tom & Jerry</p>"
  devkit html-entity-encoder -d "&lt;p&gt;&copy; 2024&lt;/p&gt;"`)
}

// newCodecCmd creates an encode/decode command for c.
func newCodecCmd(name string, c codec.Codec, long string) *cobra.Command {
	cmd := newToolCmd(name, "[text|-]", long)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCodecCmd(cmd, args, name, c)
	}
	cmd.Flags().BoolP("decode", "d", false, "Decode instead of encode")
	return cmd
}

// runCodecCmd executes an encode/decode command.
func runCodecCmd(cmd *cobra.Command, args []string, name string, c codec.Codec) error {
	decode, err := cmd.Flags().GetBool("decode")
	if err != nil {
		return err
	}

	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	mode := codec.ModeEncode
	if decode {
		mode = codec.ModeDecode
	}
	env.logger.Debug("transforming input", "codec", c.Name(), "mode", mode.String(), "bytes", len(input))

	out, err := codec.Apply(c, mode, input)
	if err != nil {
		return err
	}
	return env.emit(model.NewResult(name).WithBody(out, ""))
}

// NewJWTDecoderCmd creates the jwt-decoder command.
func NewJWTDecoderCmd() *cobra.Command {
	cmd := newToolCmd("jwt-decoder", "<token|->", `
The header and payload are decoded without verifying the signature.
Registered time claims (exp, iat, nbf) are shown as dates.

Examples:
  devkit jwt-decoder eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiIxIn0.sig
  pbpaste | devkit jwt-decoder`)
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.RunE = runJWTDecoderCmd
	return cmd
}

// runJWTDecoderCmd executes the jwt-decoder command.
func runJWTDecoderCmd(cmd *cobra.Command, args []string) error {
	env, err := newToolEnv(cmd)
	if err != nil {
		return err
	}

	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	token, err := jwtdecode.Decode(raw)
	if err != nil {
		env.logger.Debug("decode failed", "jwt", raw, "error", err)
		return err
	}

	now := time.Now()
	result := model.NewResult("jwt-decoder")
	if alg, ok := token.Header["alg"].(string); ok {
		result.Add("Algorithm", alg)
	}
	for _, c := range token.TimeClaims() {
		result.Add(c.Name, fmt.Sprintf("%s (%s)", c.Time.UTC().Format(time.RFC3339), humanize.RelTime(c.Time, now, "ago", "from now")))
	}
	if token.HasExpiry() {
		status := "Valid"
		if token.Expired(now) {
			status = "EXPIRED"
		}
		result.Add("Status", status)
	}
	result.Add("Signature", token.Signature)

	body, err := json.MarshalIndent(struct {
		Header  map[string]any `json:"header"`
		Payload map[string]any `json:"payload"`
	}{token.Header, token.Payload}, "", "  ")
	if err != nil {
		return err
	}
	return env.emit(result.WithBody(string(body), "json"))
}
