// Package hashgen computes message digests of text and files.
package hashgen

import (
	"context"
	"crypto/sha1" //nolint:gosec // SHA-1 is offered as a checksum, not for security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/devkit/internal/batch"
)

// ErrUnknownAlgorithm is returned for an algorithm name that is not supported.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// Algorithm identifies a digest function.
type Algorithm int

// Supported algorithms. The SHA-3 and BLAKE2b variants come from x/crypto.
const (
	SHA1 Algorithm = iota
	SHA256
	SHA384
	SHA512
	SHA3_256
	SHA3_512
	BLAKE2b256
	BLAKE2b512
)

// DefaultAlgorithms are computed when no algorithm is requested.
var DefaultAlgorithms = []Algorithm{SHA1, SHA256, SHA384, SHA512}

// AllAlgorithms lists every supported algorithm.
var AllAlgorithms = []Algorithm{SHA1, SHA256, SHA384, SHA512, SHA3_256, SHA3_512, BLAKE2b256, BLAKE2b512}

// String returns the display name, e.g. "SHA-256".
func (a Algorithm) String() string {
	switch a {
	case SHA1:
		return "SHA-1"
	case SHA256:
		return "SHA-256"
	case SHA384:
		return "SHA-384"
	case SHA512:
		return "SHA-512"
	case SHA3_256:
		return "SHA3-256"
	case SHA3_512:
		return "SHA3-512"
	case BLAKE2b256:
		return "BLAKE2b-256"
	case BLAKE2b512:
		return "BLAKE2b-512"
	default:
		return "unknown"
	}
}

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case SHA1:
		return sha1.New(), nil //nolint:gosec
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	case SHA3_256:
		return sha3.New256(), nil
	case SHA3_512:
		return sha3.New512(), nil
	case BLAKE2b256:
		return blake2b.New256(nil)
	case BLAKE2b512:
		return blake2b.New512(nil)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}
}

func canonical(s string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
}

// ParseAlgorithm resolves a name such as "sha256", "SHA-256" or "blake2b_512".
func ParseAlgorithm(name string) (Algorithm, error) {
	want := canonical(name)
	for _, a := range AllAlgorithms {
		if canonical(a.String()) == want {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
}

// ParseAlgorithms resolves a list of names.
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	out := make([]Algorithm, 0, len(names))
	for _, n := range names {
		a, err := ParseAlgorithm(n)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Result is the digest produced by one algorithm.
type Result struct {
	Algorithm Algorithm `json:"-"`
	Name      string    `json:"algorithm"`
	Hex       string    `json:"hash"`
}

// Sum returns the lowercase hex digest of data.
func Sum(a Algorithm, data []byte) (string, error) {
	h, err := a.newHash()
	if err != nil {
		return "", err
	}
	h.Write(data) //nolint:errcheck // hash.Hash never returns an error
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SumReader digests everything read from r.
func SumReader(a Algorithm, r io.Reader) (string, error) {
	h, err := a.newHash()
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// All digests text with every algorithm concurrently. Results follow the
// order of algs. Text that is empty after trimming yields no results.
func All(ctx context.Context, text string, algs []Algorithm) ([]Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if len(algs) == 0 {
		algs = DefaultAlgorithms
	}

	data := []byte(text)
	results := make([]Result, len(algs))

	g, ctx := errgroup.WithContext(ctx)
	for i, a := range algs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := Sum(a, data)
			if err != nil {
				return err
			}
			results[i] = Result{Algorithm: a, Name: a.String(), Hex: sum}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Format renders results as "ALG: hash" lines.
func Format(results []Result) string {
	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = r.Name + ": " + r.Hex
	}
	return strings.Join(lines, "\n")
}

// FileResult holds the digests of one file.
type FileResult struct {
	Path    string   `json:"path"`
	Results []Result `json:"hashes"`
}

// Files digests every file with every algorithm. Files are processed
// concurrently by p; the first failure stops the batch.
func Files(ctx context.Context, p *batch.Processor, paths []string, algs []Algorithm) ([]FileResult, error) {
	if len(algs) == 0 {
		algs = DefaultAlgorithms
	}

	outcomes, err := batch.Run(ctx, p, paths, func(ctx context.Context, path string) ([]Result, error) {
		return hashFile(ctx, path, algs)
	})
	if err != nil {
		return nil, err
	}

	out := make([]FileResult, len(outcomes))
	for i, o := range outcomes {
		out[i] = FileResult{Path: o.Item, Results: o.Value}
	}
	return out, nil
}

func hashFile(ctx context.Context, path string, algs []Algorithm) ([]Result, error) {
	f, err := os.Open(path) //nolint:gosec // user-selected file
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hashes := make([]hash.Hash, len(algs))
	writers := make([]io.Writer, len(algs))
	for i, a := range algs {
		h, err := a.newHash()
		if err != nil {
			return nil, err
		}
		hashes[i] = h
		writers[i] = h
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := io.Copy(io.MultiWriter(writers...), f); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	results := make([]Result, len(algs))
	for i, a := range algs {
		results[i] = Result{Algorithm: a, Name: a.String(), Hex: hex.EncodeToString(hashes[i].Sum(nil))}
	}
	return results, nil
}
