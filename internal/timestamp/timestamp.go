// Package timestamp converts between Unix timestamps and calendar dates.
package timestamp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// secondsCeiling is 2100-01-01T00:00:00Z in Unix seconds. Numbers below it
// are read as seconds, numbers above it as milliseconds.
const secondsCeiling = 4102444800

// maxMillis is the largest instant a JavaScript Date can hold, in
// milliseconds from the epoch. Larger numbers are not timestamps.
const maxMillis = 8.64e15

// ErrUnparseable is returned when the input is neither a number nor a known date layout.
var ErrUnparseable = errors.New("Could not parse timestamp. Try Unix seconds, milliseconds, or ISO 8601 format.") //nolint:staticcheck // shown to users verbatim

// ErrEmpty is returned for blank input.
var ErrEmpty = errors.New("empty timestamp")

// layouts are tried in order for non-numeric input.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
}

// Parse interprets input as Unix seconds, Unix milliseconds or a date string.
// Date strings without a zone are read in loc.
func Parse(input string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	if loc == nil {
		loc = time.Local
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		switch {
		case math.IsInf(n, 0), math.IsNaN(n), n > maxMillis:
			return time.Time{}, ErrUnparseable
		case n > 0 && n < secondsCeiling:
			sec, frac := math.Modf(n)
			return time.Unix(int64(sec), int64(math.Round(frac*1e3))*int64(time.Millisecond)), nil
		case n > secondsCeiling:
			return time.UnixMilli(int64(n)), nil
		}
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparseable
}

// Formats holds the renderings of one instant.
type Formats struct {
	Unix     string `json:"unix"`
	UnixMs   string `json:"unixMs"`
	ISO8601  string `json:"iso8601"`
	UTC      string `json:"utc"`
	Local    string `json:"local"`
	Relative string `json:"relative"`
}

// Convert renders t in every supported format. Relative time is measured
// against now and Local uses loc.
func Convert(t, now time.Time, loc *time.Location) Formats {
	if loc == nil {
		loc = time.Local
	}
	ms := t.UnixMilli()
	return Formats{
		Unix:     strconv.FormatInt(int64(math.Floor(float64(ms)/1000)), 10),
		UnixMs:   strconv.FormatInt(ms, 10),
		ISO8601:  t.UTC().Format("2006-01-02T15:04:05.000Z"),
		UTC:      t.UTC().Format(http1123),
		Local:    t.In(loc).Format("2006-01-02 15:04:05 MST"),
		Relative: Relative(t, now),
	}
}

// http1123 is RFC 1123 with the zone spelled GMT.
const http1123 = "Mon, 02 Jan 2006 15:04:05 GMT"

// Relative describes t relative to now, e.g. "3 hours ago" or
// "2 months from now". Months are 30 days and years 365 days.
func Relative(t, now time.Time) string {
	diff := t.Sub(now)
	suffix := " from now"
	if diff < 0 {
		suffix = " ago"
		diff = -diff
	}

	secs := int64(diff / time.Second)
	mins := secs / 60
	hours := mins / 60
	days := hours / 24

	switch {
	case secs < 60:
		return plural(secs, "second") + suffix
	case mins < 60:
		return plural(mins, "minute") + suffix
	case hours < 24:
		return plural(hours, "hour") + suffix
	case days < 30:
		return plural(days, "day") + suffix
	case days < 365:
		return plural(days/30, "month") + suffix
	default:
		return plural(days/365, "year") + suffix
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
