// Package normalize turns the human readable magnitudes and dates found on
// listing pages into canonical values.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical date form used in every record.
const DateLayout = "2006-01-02"

var suffixMultipliers = map[string]float64{
	"k": 1_000,
	"m": 1_000_000,
}

// Number parses counts like "1.2k", "3M" or "12,345". It returns nil for
// anything it cannot read, it never fails.
func Number(text string) *int64 {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	for suffix, multiplier := range suffixMultipliers {
		if !strings.HasSuffix(text, suffix) {
			continue
		}
		prefix := strings.TrimSuffix(text, suffix)
		value, err := strconv.ParseFloat(strings.TrimSpace(prefix), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil
		}
		return nonNegative(math.Trunc(value * multiplier))
	}

	value, err := strconv.ParseInt(strings.ReplaceAll(text, ",", ""), 10, 64)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}

func nonNegative(value float64) *int64 {
	if value < 0 || value >= math.MaxInt64 {
		return nil
	}
	out := int64(value)
	return &out
}

// iso 8601 forms accepted by TimestampDate, the zoned ones cover "Z" and offsets
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	DateLayout,
}

// TimestampDate reduces an ISO 8601 timestamp (a trailing "Z" meaning UTC) to its
// date in the timestamp's own offset.
func TimestampDate(timestamp string) (string, error) {
	timestamp = strings.TrimSpace(timestamp)

	var firstErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, timestamp)
		if err == nil {
			return parsed.Format(DateLayout), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", firstErr
}

const publishedPrefix = "Published on "

// PublishedLabel matches the span carrying a paper's publication date.
var PublishedLabel = regexp.MustCompile(`Published|[A-Za-z]{3,9}\s+\d{1,2},\s+\d{4}`)

// PublishedDate converts labels like "Published on Jan 2, 2024" into a date. An
// unreadable label is returned verbatim except for the prefix and the label's own
// surrounding whitespace, an unnormalized date is kept over a missing one.
func PublishedDate(label string) string {
	text := strings.ReplaceAll(strings.TrimSpace(label), publishedPrefix, "")
	parsed, err := time.Parse("Jan 2, 2006", text)
	if err != nil {
		return text
	}
	return parsed.Format(DateLayout)
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}
