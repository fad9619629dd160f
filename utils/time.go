// Package utils provides utility functions for the application.
package utils

import (
	"time"
)

// DateLayout is the wire format for all quota and record dates.
const DateLayout = "2006-01-02"

// MonthLayout is the wire format for report months.
const MonthLayout = "2006-01"

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// UTCNowPtr returns a pointer to the current time in UTC
func UTCNowPtr() *time.Time {
	now := UTCNow()
	return &now
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate formats a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseMonth parses a YYYY-MM string into the first day of that month (UTC).
func ParseMonth(s string) (time.Time, error) {
	return time.ParseInLocation(MonthLayout, s, time.UTC)
}

// MonthWindow returns the first day of the month and the first day of the
// following month for a YYYY-MM string.
func MonthWindow(s string) (time.Time, time.Time, error) {
	start, err := ParseMonth(s)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, 0), nil
}

// DateOnly truncates a time to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateBetween reports whether d lies within [from, to], inclusive on both
// ends. All three are compared as UTC calendar dates.
func DateBetween(d, from, to time.Time) bool {
	d = DateOnly(d)
	return !d.Before(DateOnly(from)) && !d.After(DateOnly(to))
}
