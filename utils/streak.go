package utils

import (
	"time"

	"kindledAPI/internal/types/flame"
)

// AdvanceStreak applies one activity to a streak. Multiple activities on
// the same UTC date leave the streak untouched; an activity exactly one
// day after the last one extends it; anything else (first activity ever,
// or a gap of 2+ days) restarts the streak at 1, never 0.
// Returns the new current streak, new longest streak, and whether the
// state changed at all.
func AdvanceStreak(current, longest int, lastActiveOn *time.Time, occurredAt time.Time) (int, int, bool) {
	if lastActiveOn != nil {
		switch DaysBetween(*lastActiveOn, occurredAt) {
		case 0:
			return current, longest, false
		case 1:
			current++
		default:
			current = 1
		}
	} else {
		current = 1
	}

	if current > longest {
		longest = current
	}
	return current, longest, true
}

// IntensityFor classifies a streak length into its flame tier.
func IntensityFor(currentStreak int) flame.Intensity {
	switch {
	case currentStreak >= 14:
		return flame.IntensityOnFire
	case currentStreak >= 7:
		return flame.IntensityBurning
	case currentStreak >= 3:
		return flame.IntensityGlow
	case currentStreak >= 1:
		return flame.IntensityEmber
	default:
		return flame.IntensityOut
	}
}
