package schedule

import (
	"math"
	"time"
)

// DateLayout is the wire form of a calendar day.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to its calendar day, expressed as UTC midnight.
// The wall-clock date in t's own location is kept.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// InWeek reports whether t falls within the Monday-based week starting at weekStart.
func InWeek(t, weekStart time.Time) bool {
	d := Day(t)
	start := Day(weekStart)
	return !d.Before(start) && d.Before(start.AddDate(0, 0, 7))
}

// SameDay reports whether a and b are the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// DaysBetween returns the whole number of days from a to b (negative if b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(math.Round(Day(b).Sub(Day(a)).Hours() / 24))
}

func areConsecutive(a, b time.Time) bool {
	d := DaysBetween(a, b)
	return d == 1 || d == -1
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// roundHalf rounds to the nearest 0.5 km.
func roundHalf(km float64) float64 {
	return math.Round(km*2) / 2
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
