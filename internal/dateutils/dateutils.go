// Package dateutils provides common date and time operations used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date format constants for the layouts the CSV exports are known to use.
const (
	DateLayoutISO         = "2006-01-02"
	DateLayoutISOTime     = "2006-01-02 15:04:05"
	DateLayoutISOMinute   = "2006-01-02 15:04"
	DateLayoutRFC3339     = time.RFC3339
	DateLayoutRFC3339Bare = "2006-01-02T15:04:05"
	DateLayoutHTTP        = time.RFC1123
)

// CommonFormats is the list of layouts tried, in order, when parsing a
// date from an export. Exports from different dashboard versions disagree
// on the format, so the list is deliberately permissive.
var CommonFormats = []string{
	DateLayoutRFC3339,
	DateLayoutRFC3339Bare,
	DateLayoutISOTime,
	DateLayoutISOMinute,
	DateLayoutISO,
	DateLayoutHTTP,
	time.RFC1123Z,
	"2006-01-02 15:04:05 -0700",
	"2006/01/02",
}

// ParseDate attempts to parse a date string using the known export formats.
// Returns the parsed time and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.UTC(), format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseDateString parses a date string using the known export formats.
// An empty string parses to the zero time without error, which callers use
// for optional columns like the transfer date.
func ParseDateString(dateStr string) (time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return time.Time{}, nil
	}

	t, _, err := ParseDate(dateStr)
	return t, err
}

// CleanDateString removes unwanted characters and normalizes a date string.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)

	re := regexp.MustCompile(`\s+`)
	dateStr = re.ReplaceAllString(dateStr, " ")

	return dateStr
}

// FormatDate formats a time.Time value according to the specified layout.
// If no layout is provided, DateLayoutISO is used.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}

// StartOfMonth returns midnight UTC on the first day of the given month.
func StartOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns midnight UTC on the first day of the following month.
func NextMonth(year int, month time.Month) time.Time {
	return StartOfMonth(year, month).AddDate(0, 1, 0)
}

// InMonth reports whether t falls inside the given calendar month (UTC).
func InMonth(t time.Time, year int, month time.Month) bool {
	start := StartOfMonth(year, month)
	return !t.Before(start) && t.Before(NextMonth(year, month))
}

// ParsePeriod parses a "YYYY-MM" period string.
func ParsePeriod(period string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return 0, 0, fmt.Errorf("unable to parse period %q, expected YYYY-MM", period)
	}
	return t.Year(), t.Month(), nil
}

// CompareDates compares the date portions of two times and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	date1 = time.Date(date1.Year(), date1.Month(), date1.Day(), 0, 0, 0, 0, time.UTC)
	date2 = time.Date(date2.Year(), date2.Month(), date2.Day(), 0, 0, 0, 0, time.UTC)

	if date1.Before(date2) {
		return -1
	} else if date1.After(date2) {
		return 1
	}
	return 0
}
