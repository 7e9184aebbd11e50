package badge

import (
	"time"

	"github.com/google/uuid"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type RuleType string

const (
	RuleFirstActivity       RuleType = "first_activity"
	RuleStreak              RuleType = "streak"
	RuleActivityCount       RuleType = "activity_count"
	RuleChallengesCompleted RuleType = "challenges_completed"
	RuleChallengeReward     RuleType = "challenge_reward"
)

// Badge is a static catalog entry. The catalog lives in code, not the
// database; only awards (UserBadge rows) are persisted.
type Badge struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    string   `json:"category"`
	Rarity      Rarity   `json:"rarity"`
	Rule        RuleType `json:"rule"`
	// RuleValue is the threshold for streak/count rules.
	RuleValue int `json:"rule_value,omitempty"`
	// RuleActivity narrows activity_count rules to one activity type.
	RuleActivity string `json:"rule_activity,omitempty"`
}

type UserBadge struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	BadgeCode  string    `json:"badge_code" db:"badge_code"`
	GroupID    uuid.UUID `json:"group_id" db:"group_id"`
	EarnedAt   time.Time `json:"earned_at" db:"earned_at"`
	IsFeatured bool      `json:"is_featured" db:"is_featured"`
}

type BadgeWithStatus struct {
	Badge
	Unlocked bool       `json:"unlocked"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// UserStats is the aggregated view the evaluator reads. It never looks
// at raw ledger rows.
type UserStats struct {
	CurrentStreak       int            `json:"current_streak"`
	LongestStreak       int            `json:"longest_streak"`
	TotalActivities     int            `json:"total_activities"`
	CountsByType        map[string]int `json:"counts_by_type"`
	ChallengesCompleted int            `json:"challenges_completed"`
	RewardCodes         []string       `json:"reward_codes"`
}
