package profile

import "github.com/google/uuid"

type Role string

const (
	RoleDisciple Role = "disciple"
	RoleSteward  Role = "steward"
)

func (r Role) IsValid() bool {
	return r == RoleDisciple || r == RoleSteward
}

// UserProfile is the read-only signal set the rankers consume. The
// engine never writes any of it except the dismissal lists.
type UserProfile struct {
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	Interests        []string   `json:"interests" db:"interests"`
	City             string     `json:"city" db:"city"`
	Role             Role       `json:"role" db:"role"`
	Availability     []string   `json:"availability" db:"availability"`
	NotifCadence     string     `json:"notif_cadence" db:"notif_cadence"`
	DismissedIDs     []string   `json:"dismissed_suggestion_ids" db:"dismissed_suggestion_ids"`
	DismissedTypes   []string   `json:"dismissed_suggestion_types" db:"dismissed_suggestion_types"`
	PreferredGroupID *uuid.UUID `json:"preferred_group_id" db:"preferred_group_id"`
}
