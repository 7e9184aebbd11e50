package challenge

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

// Template is a static catalog entry a steward instantiates a weekly
// challenge from. BadgeReward, when set, is a badge code handed to the
// badge evaluator on completion.
type Template struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Threshold   int    `json:"completion_threshold"`
	BadgeReward string `json:"badge_reward,omitempty"`
	// CountsActivity is the activity type that auto-advances progress
	// for this template. Empty means progress advances once per new
	// active day instead.
	CountsActivity string `json:"counts_activity,omitempty"`
}

type Challenge struct {
	ID          uuid.UUID `json:"id" db:"id"`
	GroupID     uuid.UUID `json:"group_id" db:"group_id"`
	TemplateID  string    `json:"template_id" db:"template_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Icon        string    `json:"icon" db:"icon"`
	WeekStart   time.Time `json:"week_start" db:"week_start"`
	WeekEnd     time.Time `json:"week_end" db:"week_end"`
	Status      Status    `json:"status" db:"status"`
	Threshold   int       `json:"completion_threshold" db:"completion_threshold"`
	BadgeReward string    `json:"badge_reward,omitempty" db:"badge_reward"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type UserProgress struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ChallengeID uuid.UUID  `json:"challenge_id" db:"challenge_id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Progress    int        `json:"progress" db:"progress"`
	Completed   bool       `json:"is_completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ProgressWithChallenge joins a user's progress row to the challenge it
// belongs to, for the group progress screen.
type ProgressWithChallenge struct {
	Challenge Challenge    `json:"challenge"`
	Progress  UserProgress `json:"progress"`
}

type CreateChallengeRequest struct {
	GroupID    string    `json:"group_id"`
	TemplateID string    `json:"template_id"`
	WeekStart  time.Time `json:"week_start"`
	WeekEnd    time.Time `json:"week_end"`
}

type UpdateProgressRequest struct {
	ChallengeID string `json:"challenge_id"`
	Increment   *int   `json:"increment,omitempty"`
}
