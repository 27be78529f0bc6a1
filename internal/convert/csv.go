package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// CSVOptions controls CSVToJSON.
type CSVOptions struct {
	// Header treats the first row as field names.
	Header bool
	// Delimiter separates fields. Zero means a comma.
	Delimiter rune
	// DynamicTyping turns numeric, boolean and empty cells into JSON
	// numbers, booleans and null.
	DynamicTyping bool
}

// DefaultCSVOptions returns the options used by the csv-to-json tool.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Header: true, Delimiter: ',', DynamicTyping: true}
}

// extraFieldsKey holds cells beyond the header width.
const extraFieldsKey = "__parsed_extra"

var floatPattern = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// maxSafeInteger is the largest integer a JSON consumer can hold exactly.
const maxSafeInteger = 1<<53 - 1

// CSVToJSON converts CSV text to a JSON array. With a header each row is
// an object keyed by the trimmed header names; otherwise each row is an
// array. Empty lines are skipped.
func CSVToJSON(input string, opts CSVOptions) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyCSV
	}

	r := csv.NewReader(strings.NewReader(input))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if opts.Delimiter != 0 {
		r.Comma = opts.Delimiter
	}

	var (
		header []string
		rows   []any
	)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return "", fmt.Errorf("%w: Row %d: %v", ErrParseCSV, pe.Line, pe.Err)
			}
			return "", fmt.Errorf("%w: %v", ErrParseCSV, err)
		}

		if opts.Header && header == nil {
			header = make([]string, len(record))
			for i, h := range record {
				header[i] = strings.TrimSpace(h)
			}
			continue
		}

		if !opts.Header {
			row := make([]any, len(record))
			for i, cell := range record {
				row[i] = cellValue(cell, opts.DynamicTyping)
			}
			rows = append(rows, row)
			continue
		}

		obj := NewObject()
		for i, cell := range record {
			if i >= len(header) {
				extra := make([]any, 0, len(record)-i)
				for _, c := range record[i:] {
					extra = append(extra, cellValue(c, opts.DynamicTyping))
				}
				obj.Set(extraFieldsKey, extra)
				break
			}
			obj.Set(header[i], cellValue(cell, opts.DynamicTyping))
		}
		rows = append(rows, obj)
	}

	if rows == nil {
		rows = []any{}
	}
	return marshal(rows)
}

func cellValue(cell string, dynamic bool) any {
	if !dynamic {
		return cell
	}
	switch cell {
	case "":
		return nil
	case "true", "TRUE", "True":
		return true
	case "false", "FALSE", "False":
		return false
	case "null", "NULL":
		return nil
	}
	if floatPattern.MatchString(cell) {
		f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err == nil && math.Abs(f) <= maxSafeInteger {
			return f
		}
	}
	return cell
}
