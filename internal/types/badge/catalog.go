package badge

// Catalog is the static badge list. Order matters only for display.
// Award rows reference badges by Code.
var Catalog = []Badge{
	{
		Code:        "first_spark",
		Name:        "First Spark",
		Description: "Record your first activity",
		Icon:        "spark",
		Category:    "journey",
		Rarity:      RarityCommon,
		Rule:        RuleFirstActivity,
	},
	{
		Code:        "kindled",
		Name:        "Kindled",
		Description: "Reach a 3-day streak",
		Icon:        "kindling",
		Category:    "streak",
		Rarity:      RarityCommon,
		Rule:        RuleStreak,
		RuleValue:   3,
	},
	{
		Code:        "week_of_fire",
		Name:        "Week of Fire",
		Description: "Reach a 7-day streak",
		Icon:        "flame",
		Category:    "streak",
		Rarity:      RarityUncommon,
		Rule:        RuleStreak,
		RuleValue:   7,
	},
	{
		Code:        "burning_bright",
		Name:        "Burning Bright",
		Description: "Reach a 14-day streak",
		Icon:        "bonfire",
		Category:    "streak",
		Rarity:      RarityRare,
		Rule:        RuleStreak,
		RuleValue:   14,
	},
	{
		Code:        "unquenchable",
		Name:        "Unquenchable",
		Description: "Reach a 30-day streak",
		Icon:        "eternal-flame",
		Category:    "streak",
		Rarity:      RarityEpic,
		Rule:        RuleStreak,
		RuleValue:   30,
	},
	{
		Code:         "prayer_warrior",
		Name:         "Prayer Warrior",
		Description:  "Record 25 prayers",
		Icon:         "praying-hands",
		Category:     "activity",
		Rarity:       RarityUncommon,
		Rule:         RuleActivityCount,
		RuleValue:    25,
		RuleActivity: "prayer",
	},
	{
		Code:         "encourager",
		Name:         "Encourager",
		Description:  "Leave 10 encouraging comments",
		Icon:         "heart-hands",
		Category:     "activity",
		Rarity:       RarityCommon,
		Rule:         RuleActivityCount,
		RuleValue:    10,
		RuleActivity: "comment",
	},
	{
		Code:         "witness",
		Name:         "Witness",
		Description:  "Share 5 testimonies",
		Icon:         "open-book",
		Category:     "activity",
		Rarity:       RarityRare,
		Rule:         RuleActivityCount,
		RuleValue:    5,
		RuleActivity: "testimony",
	},
	{
		Code:        "challenger",
		Name:        "Challenger",
		Description: "Complete your first weekly challenge",
		Icon:        "trophy",
		Category:    "challenge",
		Rarity:      RarityUncommon,
		Rule:        RuleChallengesCompleted,
		RuleValue:   1,
	},
	{
		Code:        "overcomer",
		Name:        "Overcomer",
		Description: "Complete 5 weekly challenges",
		Icon:        "crown",
		Category:    "challenge",
		Rarity:      RarityLegendary,
		Rule:        RuleChallengesCompleted,
		RuleValue:   5,
	},
	// Challenge-reward badges, unlocked only via a challenge's badge_reward.
	{
		Code:        "circle_of_prayer",
		Name:        "Circle of Prayer",
		Description: "Complete the group prayer challenge",
		Icon:        "circle",
		Category:    "challenge",
		Rarity:      RarityRare,
		Rule:        RuleChallengeReward,
	},
	{
		Code:        "voice_of_hope",
		Name:        "Voice of Hope",
		Description: "Complete the testimony challenge",
		Icon:        "megaphone",
		Category:    "challenge",
		Rarity:      RarityRare,
		Rule:        RuleChallengeReward,
	},
}

// ByCode looks a catalog badge up by its code.
func ByCode(code string) (Badge, bool) {
	for _, b := range Catalog {
		if b.Code == code {
			return b, true
		}
	}
	return Badge{}, false
}

// SatisfiedBy reports whether a user's aggregated stats meet this
// badge's unlock rule. Challenge-reward badges only unlock through the
// reward signal carried in stats.RewardCodes.
func (b Badge) SatisfiedBy(stats *UserStats) bool {
	switch b.Rule {
	case RuleFirstActivity:
		return stats.TotalActivities >= 1
	case RuleStreak:
		return stats.LongestStreak >= b.RuleValue
	case RuleActivityCount:
		return stats.CountsByType[b.RuleActivity] >= b.RuleValue
	case RuleChallengesCompleted:
		return stats.ChallengesCompleted >= b.RuleValue
	case RuleChallengeReward:
		for _, code := range stats.RewardCodes {
			if code == b.Code {
				return true
			}
		}
		return false
	}
	return false
}
