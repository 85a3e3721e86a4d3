package models

import (
	"fmt"
	"strings"
	"time"
)

// Stored dates come from HTML date inputs (ISO) but years of hand edits
// left RFC3339 stamps and slash dates in the same columns.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"1/2/2006",
}

// ParseDate parses a stored calendar date. ok is false for anything
// unparsable; callers sorting records treat those as the minimum date so
// the comparator stays total.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateParts derives the month and year columns written next to a date.
func DateParts(date string) (month string, year string) {
	t, ok := ParseDate(date)
	if !ok {
		return "", ""
	}
	return fmt.Sprintf("%02d", int(t.Month())), fmt.Sprintf("%d", t.Year())
}

// decodeTo maps a positional row onto named fields via a schema. The row
// is padded to the schema width first, so every field index is valid.
func decodeTo(entity EntityType, row []string, schema Schema) map[string]string {
	row = padRow(entity, row, schema.Width())
	fields := make(map[string]string, schema.Width())
	for i, name := range schema.Fields {
		fields[name] = row[i]
	}
	return fields
}

// NewRecordID mints an id the way every revision of this system has: the
// creation timestamp in milliseconds. Uniqueness is probabilistic, not
// enforced.
func NewRecordID(now time.Time) string {
	return fmt.Sprintf("%d", now.UnixMilli())
}
