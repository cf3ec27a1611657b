package services

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the wire format for calendar dates (e.g. donation dates,
// required-by dates).
const dateLayout = "2006-01-02"

// dateTimeLayout is the compact scheduling format (date plus wall-clock
// minutes, no zone; interpreted as UTC).
const dateTimeLayout = "2006-01-02 15:04"

// parseDate parses a YYYY-MM-DD date. The result is anchored to UTC.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return t.UTC(), nil
}

// parseDateTime parses an RFC 3339 timestamp, falling back to the compact
// "YYYY-MM-DD HH:MM" form and then to a plain date for callers that only
// supply a day.
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateTimeLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: timestamp must be RFC 3339, YYYY-MM-DD HH:MM, or YYYY-MM-DD", ErrValidation)
}

// field pairs a field name with its submitted value for validation.
type field struct {
	name  string
	value string
}

// requireNonBlank returns a wrapped ErrValidation naming the first blank
// field, or nil when all values are set.
func requireNonBlank(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}
	return nil
}
