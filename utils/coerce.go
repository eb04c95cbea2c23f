package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDayNumberRequired is returned when the day_number field is absent or blank.
var ErrDayNumberRequired = errors.New("day_number is required")

// ParseFloatOrDefault converts a raw form value to a float64, substituting
// def when the value is empty, missing, or not a parseable number. It never
// returns an error: a single malformed field must not abort a whole
// submission.
func ParseFloatOrDefault(raw string, def float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return f
}

// ParseDayNumber parses the day_number field strictly. Unlike the float
// fields there is no fallback here: a missing or non-integer day number
// rejects the submission.
func ParseDayNumber(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrDayNumberRequired
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("day_number %q is not an integer", raw)
	}
	return n, nil
}

// NullableString maps an empty form value to nil and keeps any non-empty
// value verbatim. Stored as a true NULL, distinct from the empty string.
func NullableString(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}
