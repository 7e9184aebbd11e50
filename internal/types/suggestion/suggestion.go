package suggestion

type Type string

const (
	TypeJoinFellowship    Type = "join_fellowship"
	TypeEventNearby       Type = "event_nearby"
	TypeStartPrayerCircle Type = "start_prayer_circle"
	TypeMeetMembers       Type = "meet_members"
	TypeWeeklyChallenge   Type = "weekly_challenge"
)

// Suggestion is computed per request and never persisted.
type Suggestion struct {
	ID          string `json:"id"`
	Type        Type   `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionURL   string `json:"action_url"`
	Score       int    `json:"score"`
}

type DismissRequest struct {
	SuggestionID string `json:"suggestion_id,omitempty"`
	Type         string `json:"type,omitempty"`
}
