package utils

import (
	"math"

	"kindledAPI/internal/types/activity"
)

// PointWeights is the fixed weight table for unity points. Testimonies
// weigh more because writing one takes more than a tap; comments weigh
// least so reply chains can't carry a whole week.
var PointWeights = map[activity.ActivityType]int{
	activity.ActivityPrayer:    10,
	activity.ActivityTestimony: 15,
	activity.ActivityPost:      10,
	activity.ActivityComment:   5,
}

// OnFireLevel is the ember meter threshold for a group's on-fire week.
const OnFireLevel = 80

// EmberMeter normalizes a group's weekly points to 0-100 relative to
// the contributing member count. A week with no contributors is level 0.
func EmberMeter(totalPoints, memberCount int) int {
	if memberCount == 0 {
		return 0
	}
	level := int(math.Round(float64(totalPoints) / float64(memberCount) * 10))
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// WeeklyMessage picks the celebration tier for an ember meter level.
// The 80/60/40 boundaries are the contract, the wording is not.
func WeeklyMessage(level int) string {
	switch {
	case level >= 80:
		return "Your fellowship stayed on fire this week! Keep the flame burning."
	case level >= 60:
		return "A great week together. Your fellowship is glowing."
	case level >= 40:
		return "Steady progress this week. Every prayer counts."
	default:
		return "A quiet week. Reach out to someone and rekindle the flame."
	}
}
