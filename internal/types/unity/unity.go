package unity

import (
	"time"

	"github.com/google/uuid"
)

// UnityPointsWeek is a group's aggregated engagement for one canonical
// week window (Monday 00:00 UTC through Sunday 23:59:59 UTC). It is
// computed at read time from the activity ledger, never persisted.
type UnityPointsWeek struct {
	GroupID        uuid.UUID `json:"group_id"`
	WeekStart      time.Time `json:"week_start"`
	WeekEnd        time.Time `json:"week_end"`
	TotalPoints    int       `json:"total_points"`
	MemberCount    int       `json:"member_count"`
	EmberMeter     int       `json:"ember_meter_level"`
	IsOnFire       bool      `json:"is_on_fire"`
	WeeklyMessage  string    `json:"weekly_message"`
}
