package calendar

import (
	"time"
)

// Date returns midnight UTC of the given civil date. All calendar
// arithmetic in this module works on values built by Date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time-of-day and location of t, keeping its civil date.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// DayKey returns a comparable yyyymmdd key for a date, suitable for map
// lookups where time.Time equality would be too fragile.
func DayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// SameDay reports whether a and b fall on the same civil date.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// IsSunday reports whether t is a Sunday.
func IsSunday(t time.Time) bool {
	return t.Weekday() == time.Sunday
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}

// SundayAfter returns the first Sunday strictly after t.
func SundayAfter(t time.Time) time.Time {
	return t.AddDate(0, 0, 7-int(t.Weekday()))
}

// SundayOnOrBefore returns t if it is a Sunday, else the preceding Sunday.
func SundayOnOrBefore(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// FindSundayBetween finds the Sunday within a date range.
// Returns nil if no Sunday exists in the range.
func FindSundayBetween(year int, startMonth, startDay, endMonth, endDay int) *time.Time {
	start := Date(year, time.Month(startMonth), startDay)
	end := Date(year, time.Month(endMonth), endDay)

	current := start
	for !current.After(end) {
		if current.Weekday() == time.Sunday {
			return &current
		}
		current = current.AddDate(0, 0, 1)
	}

	return nil
}

// ParseDateString parses a date string in YYYY-MM-DD format
func ParseDateString(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format("2006-01-02")
}
