package utils

import (
	"testing"
	"time"

	"kindledAPI/internal/types/flame"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceStreakFirstActivity(t *testing.T) {
	current, longest, changed := AdvanceStreak(0, 0, nil, day(2025, time.March, 3))
	if !changed {
		t.Fatal("expected first activity to change state")
	}
	if current != 1 {
		t.Errorf("expected current streak 1, got %d", current)
	}
	if longest != 1 {
		t.Errorf("expected longest streak 1, got %d", longest)
	}
}

func TestAdvanceStreakSameDayIsIdempotent(t *testing.T) {
	last := day(2025, time.March, 3)
	// Later the same day, different wall-clock time.
	sameDay := time.Date(2025, time.March, 3, 22, 15, 0, 0, time.UTC)

	current, longest, changed := AdvanceStreak(4, 9, &last, sameDay)
	if changed {
		t.Fatal("same-day activity must not change streak state")
	}
	if current != 4 || longest != 9 {
		t.Errorf("expected streak unchanged (4, 9), got (%d, %d)", current, longest)
	}
}

func TestAdvanceStreakConsecutiveDay(t *testing.T) {
	last := day(2025, time.March, 3)
	current, longest, changed := AdvanceStreak(4, 9, &last, day(2025, time.March, 4))
	if !changed {
		t.Fatal("expected next-day activity to change state")
	}
	if current != 5 {
		t.Errorf("expected current streak 5, got %d", current)
	}
	if longest != 9 {
		t.Errorf("expected longest streak still 9, got %d", longest)
	}
}

func TestAdvanceStreakTwoDayGapResetsToOne(t *testing.T) {
	last := day(2025, time.March, 3)
	current, _, _ := AdvanceStreak(6, 6, &last, day(2025, time.March, 5))
	if current != 1 {
		t.Errorf("2-day gap must reset streak to 1, never 0; got %d", current)
	}
}

func TestAdvanceStreakLongestNeverBelowCurrent(t *testing.T) {
	var last *time.Time
	current, longest := 0, 0
	dates := []time.Time{
		day(2025, time.June, 1),
		day(2025, time.June, 2),
		day(2025, time.June, 2), // same-day repeat
		day(2025, time.June, 3),
		day(2025, time.June, 7), // gap, reset
		day(2025, time.June, 8),
	}

	for _, d := range dates {
		var changed bool
		current, longest, changed = AdvanceStreak(current, longest, last, d)
		if changed {
			dd := d
			last = &dd
		}
		if longest < current {
			t.Fatalf("longest (%d) fell below current (%d) after %s", longest, current, d)
		}
	}

	if current != 2 {
		t.Errorf("expected final current streak 2, got %d", current)
	}
	if longest != 3 {
		t.Errorf("expected final longest streak 3, got %d", longest)
	}
}

func TestAdvanceStreakAcrossDayBoundaryInstants(t *testing.T) {
	// 23:59 on day 1, then 00:01 on day 2 is still "exactly one day later".
	last := day(2025, time.March, 3)
	lateNight := time.Date(2025, time.March, 4, 0, 1, 0, 0, time.UTC)

	current, _, _ := AdvanceStreak(1, 1, &last, lateNight)
	if current != 2 {
		t.Errorf("expected streak 2 just after midnight, got %d", current)
	}
}

func TestIntensityTiers(t *testing.T) {
	cases := []struct {
		streak int
		want   flame.Intensity
	}{
		{0, flame.IntensityOut},
		{1, flame.IntensityEmber},
		{2, flame.IntensityEmber},
		{3, flame.IntensityGlow},
		{6, flame.IntensityGlow},
		{7, flame.IntensityBurning},
		{13, flame.IntensityBurning},
		{14, flame.IntensityOnFire},
		{100, flame.IntensityOnFire},
	}

	for _, tc := range cases {
		if got := IntensityFor(tc.streak); got != tc.want {
			t.Errorf("IntensityFor(%d) = %s, want %s", tc.streak, got, tc.want)
		}
	}
}

func TestStreakScenarioDayByDay(t *testing.T) {
	// Day 1: first prayer -> streak 1, ember.
	current, longest, _ := AdvanceStreak(0, 0, nil, day(2025, time.May, 1))
	if current != 1 || IntensityFor(current) != flame.IntensityEmber {
		t.Fatalf("day 1: expected streak 1 / ember, got %d / %s", current, IntensityFor(current))
	}

	// Day 2 -> streak 2, still ember.
	last := day(2025, time.May, 1)
	current, longest, _ = AdvanceStreak(current, longest, &last, day(2025, time.May, 2))
	if current != 2 || IntensityFor(current) != flame.IntensityEmber {
		t.Fatalf("day 2: expected streak 2 / ember, got %d / %s", current, IntensityFor(current))
	}

	// Skips day 3, acts on day 4 -> reset to 1.
	last = day(2025, time.May, 2)
	current, _, _ = AdvanceStreak(current, longest, &last, day(2025, time.May, 4))
	if current != 1 {
		t.Fatalf("day 4 after gap: expected streak 1, got %d", current)
	}
}
