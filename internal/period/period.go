// Package period resolves symbolic period tokens into concrete time windows.
package period

import (
	"strings"
	"time"
)

// Period is a normalised period token.
type Period string

const (
	Week      Period = "Week"
	Month     Period = "Month"
	Year      Period = "Year"
	Today     Period = "Today"
	Yesterday Period = "Yesterday"
	All       Period = "All"
)

// Window is a resolved interval ending at (or just before) End.
type Window struct {
	Period       Period
	Start        time.Time
	End          time.Time
	EndExclusive bool
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if w.EndExclusive {
		return t.Before(w.End)
	}
	return !t.After(w.End)
}

// Parse normalises a token case-insensitively. Unknown tokens yield fallback.
func Parse(token string, fallback Period) Period {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "week":
		return Week
	case "month":
		return Month
	case "year":
		return Year
	case "today":
		return Today
	case "yesterday":
		return Yesterday
	case "all":
		return All
	default:
		return fallback
	}
}

// Resolve maps token to a window ending at now, never failing.
func Resolve(token string, now time.Time, fallback Period) Window {
	p := Parse(token, fallback)
	window := Window{Period: p, End: now}

	switch p {
	case Week:
		window.Start = now.AddDate(0, 0, -7)
	case Month:
		window.Start = now.AddDate(0, -1, 0)
	case Year:
		window.Start = now.AddDate(-1, 0, 0)
	case Today:
		window.Start = StartOfDay(now)
	case Yesterday:
		window.Start = StartOfDay(now.AddDate(0, 0, -1))
		window.End = StartOfDay(now)
		window.EndExclusive = true
	case All:
		window.Start = time.Time{}
	default:
		// fallback itself was not a known period
		window.Period = Week
		window.Start = now.AddDate(0, 0, -7)
	}

	return window
}

// StartOfDay returns midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday that starts t's week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// SameDay reports whether a and b fall on the same calendar date in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
