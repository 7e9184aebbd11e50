package utils

import (
	"strings"
	"testing"
)

func TestEmberMeterStaysInRange(t *testing.T) {
	cases := []struct {
		totalPoints int
		memberCount int
		want        int
	}{
		{0, 0, 0},
		{450, 0, 0}, // no contributors, no division
		{0, 10, 0},
		{50, 10, 50},
		{82, 10, 82},
		{450, 10, 100}, // 450 raw, clamped
		{10000, 3, 100},
		{3, 10, 3},
	}

	for _, tc := range cases {
		got := EmberMeter(tc.totalPoints, tc.memberCount)
		if got != tc.want {
			t.Errorf("EmberMeter(%d, %d) = %d, want %d", tc.totalPoints, tc.memberCount, got, tc.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("EmberMeter(%d, %d) = %d is outside [0, 100]", tc.totalPoints, tc.memberCount, got)
		}
	}
}

func TestEmberMeterRounds(t *testing.T) {
	// 25 points / 10 members * 10 = 25; 17/7*10 = 24.28... -> 24.
	if got := EmberMeter(25, 10); got != 25 {
		t.Errorf("expected 25, got %d", got)
	}
	if got := EmberMeter(17, 7); got != 24 {
		t.Errorf("expected 24, got %d", got)
	}
}

func TestOnFireBoundary(t *testing.T) {
	if EmberMeter(79, 10) >= OnFireLevel {
		t.Error("level 79 must not be on fire")
	}
	if EmberMeter(80, 10) < OnFireLevel {
		t.Error("level 80 must be on fire")
	}
}

func TestWeeklyMessageTiers(t *testing.T) {
	tiers := []struct {
		level    int
		fragment string
	}{
		{100, "on fire"},
		{80, "on fire"},
		{79, "great week"},
		{60, "great week"},
		{59, "Steady progress"},
		{40, "Steady progress"},
		{39, "quiet week"},
		{0, "quiet week"},
	}

	for _, tc := range tiers {
		msg := WeeklyMessage(tc.level)
		if !strings.Contains(msg, tc.fragment) {
			t.Errorf("WeeklyMessage(%d) = %q, want it to mention %q", tc.level, msg, tc.fragment)
		}
	}
}

func TestPointWeightsCoverAllActivityTypes(t *testing.T) {
	for activityType, weight := range PointWeights {
		if weight <= 0 {
			t.Errorf("weight for %s must be positive, got %d", activityType, weight)
		}
	}
	if len(PointWeights) != 4 {
		t.Errorf("expected 4 weighted activity types, got %d", len(PointWeights))
	}
}
