package utils

import "time"

// All calendar math in the engine is UTC. A "day" is the UTC calendar
// date of the event; weeks run Monday 00:00:00 UTC through Sunday
// 23:59:59 UTC. The streak tracker and the weekly aggregator both go
// through these helpers so they can never disagree about which day or
// week an event belongs to.

// DayOf truncates an instant to its UTC calendar date.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday 00:00 UTC that opens the week containing t.
func WeekStart(t time.Time) time.Time {
	d := DayOf(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns the last second of the week opened by weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 7).Add(-time.Second)
}

// SameDay reports whether a and b fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

// DaysBetween returns the whole calendar days from a to b (UTC dates).
func DaysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)) / (24 * time.Hour))
}
