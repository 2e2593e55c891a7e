package utils

import (
	"strconv"
	"strings"
	"time"
)

// ParseInt64 converts string to int64 with default value
func ParseInt64(value string, defaultValue int64) int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue
	}

	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}

// ParseDate parses YYYY-MM-DD in the given location.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(value), loc)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UpcomingDays returns n consecutive days starting today.
func UpcomingDays(now time.Time, n int) []time.Time {
	days := make([]time.Time, n)
	start := StartOfDay(now)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
