package utils

import (
	"testing"
	"time"
)

func TestWeekStartIsAlwaysMondayUTC(t *testing.T) {
	// A full week of instants, all inside the week of Mon 2025-03-03.
	wantStart := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		instant := wantStart.AddDate(0, 0, i).Add(13 * time.Hour)
		got := WeekStart(instant)
		if !got.Equal(wantStart) {
			t.Errorf("WeekStart(%s) = %s, want %s", instant, got, wantStart)
		}
		if got.Weekday() != time.Monday {
			t.Errorf("WeekStart(%s) fell on %s, want Monday", instant, got.Weekday())
		}
	}
}

func TestWeekEndIsLastSecondOfSunday(t *testing.T) {
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	end := WeekEnd(start)

	want := time.Date(2025, time.March, 9, 23, 59, 59, 0, time.UTC)
	if !end.Equal(want) {
		t.Errorf("WeekEnd(%s) = %s, want %s", start, end, want)
	}
}

func TestWeeksDoNotOverlap(t *testing.T) {
	start := WeekStart(time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC))
	end := WeekEnd(start)
	nextStart := WeekStart(end.Add(time.Second))

	if !nextStart.Equal(start.AddDate(0, 0, 7)) {
		t.Errorf("next week should start exactly 7 days later, got %s", nextStart)
	}
	if !end.Before(nextStart) {
		t.Error("week end must precede the next week's start")
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2025, time.March, 3, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, time.March, 4, 0, 1, 0, 0, time.UTC)

	if got := DaysBetween(a, b); got != 1 {
		t.Errorf("DaysBetween across midnight = %d, want 1", got)
	}
	if !SameDay(a, a.Add(-time.Hour)) {
		t.Error("instants on the same UTC date must compare as the same day")
	}
}
