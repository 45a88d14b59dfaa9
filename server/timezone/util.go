// Package timezone provides timezone and day-boundary utilities.
//
// Review scheduling works at day precision: a review scheduled anywhere
// on 2024-01-02 is due the moment the reference date reaches that day,
// regardless of clock time. All day math therefore goes through the
// helpers here so that every caller truncates consistently.
package timezone

import (
	"fmt"
	"math"
	"time"
)

// UTC is the coordinated universal time timezone.
var UTC = time.UTC

// ParseTimezone parses an IANA timezone identifier (e.g., "Asia/Shanghai").
// If the timezone is invalid, returns UTC and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	return loc, nil
}

// StartOfDay returns the start of the day (00:00:00) in the given timezone.
func StartOfDay(t time.Time, tz *time.Location) time.Time {
	if tz == nil {
		tz = UTC
	}
	t = t.In(tz)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, tz)
}

// DaysBetween returns the number of calendar days from a to b in the
// given timezone. Negative when b is before a. DST transitions make some
// days 23 or 25 hours long, so the elapsed time between day starts is
// rounded to the nearest day rather than truncated.
func DaysBetween(a, b time.Time, tz *time.Location) int {
	start := StartOfDay(a, tz)
	end := StartOfDay(b, tz)
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// SameOrBefore reports whether the calendar day of t is on or before the
// calendar day of reference.
func SameOrBefore(t, reference time.Time, tz *time.Location) bool {
	return !StartOfDay(t, tz).After(StartOfDay(reference, tz))
}
