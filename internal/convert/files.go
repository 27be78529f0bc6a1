package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/devkit/internal/batch"
)

// Func converts the text of one document into JSON.
type Func func(input string) (string, error)

// FileResult reports where a converted file was written.
type FileResult struct {
	Source string `json:"source"`
	Output string `json:"output"`
	Bytes  int    `json:"bytes"`
}

// OutputPath returns the path of the JSON file written for src: the same
// directory and base name with a .json extension.
func OutputPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".json"
}

// Files converts every file with fn and writes the result next to it.
// Files are processed concurrently by p; the first failure stops the batch.
func Files(ctx context.Context, p *batch.Processor, paths []string, fn Func) ([]FileResult, error) {
	outcomes, err := batch.Run(ctx, p, paths, func(ctx context.Context, path string) (FileResult, error) {
		return convertFile(ctx, path, fn)
	})
	if err != nil {
		return nil, err
	}

	out := make([]FileResult, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Value
	}
	return out, nil
}

func convertFile(ctx context.Context, path string, fn Func) (FileResult, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-selected file
	if err != nil {
		return FileResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}

	converted, err := fn(string(data))
	if err != nil {
		return FileResult{}, &FileError{Path: path, Err: err}
	}

	dst := OutputPath(path)
	if dst == path {
		dst = path + ".json"
	}
	if err := os.WriteFile(dst, []byte(converted+"\n"), 0o600); err != nil {
		return FileResult{}, err
	}
	return FileResult{Source: path, Output: dst, Bytes: len(converted) + 1}, nil
}

// FileError ties a conversion failure to its input file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}
