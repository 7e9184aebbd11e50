package flame

import (
	"time"

	"github.com/google/uuid"
)

type Intensity string

const (
	IntensityOut     Intensity = "out"
	IntensityEmber   Intensity = "ember"
	IntensityGlow    Intensity = "glow"
	IntensityBurning Intensity = "burning"
	IntensityOnFire  Intensity = "on_fire"
)

// FaithFlame is the per user+group consecutive-day activity streak.
// Intensity is derived from CurrentStreak, never stored on its own.
type FaithFlame struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	GroupID       uuid.UUID  `json:"group_id" db:"group_id"`
	CurrentStreak int        `json:"current_streak" db:"current_streak"`
	LongestStreak int        `json:"longest_streak" db:"longest_streak"`
	LastActiveOn  *time.Time `json:"last_active_on" db:"last_active_on"`
	Intensity     Intensity  `json:"intensity"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type FellowshipFlame struct {
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	ImageURL      string    `json:"image_url"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	Intensity     Intensity `json:"intensity"`
}
