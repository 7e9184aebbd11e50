package activity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityPrayer    ActivityType = "prayer"
	ActivityTestimony ActivityType = "testimony"
	ActivityPost      ActivityType = "post"
	ActivityComment   ActivityType = "comment"
)

// IsValid reports whether the activity type is one of the known kinds.
// Events are validated once at the boundary so nothing downstream has to.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityPrayer, ActivityTestimony, ActivityPost, ActivityComment:
		return true
	}
	return false
}

type ActivityEvent struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	UserID     uuid.UUID    `json:"user_id" db:"user_id"`
	GroupID    uuid.UUID    `json:"group_id" db:"group_id"`
	Type       ActivityType `json:"activity_type" db:"activity_type"`
	OccurredAt time.Time    `json:"occurred_at" db:"occurred_at"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}

type RecordActivityRequest struct {
	GroupID    string       `json:"group_id"`
	Type       ActivityType `json:"activity_type"`
	OccurredAt *time.Time   `json:"occurred_at,omitempty"`
}
