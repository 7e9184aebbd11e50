package challenge

// Templates is the static catalog stewards create weekly challenges
// from. BadgeReward codes must exist in the badge catalog.
var Templates = []Template{
	{
		ID:             "prayer_week",
		Title:          "Week of Prayer",
		Description:    "Pray together 5 times this week",
		Category:       "prayer",
		Icon:           "praying-hands",
		Threshold:      5,
		BadgeReward:    "circle_of_prayer",
		CountsActivity: "prayer",
	},
	{
		ID:             "testimony_share",
		Title:          "Share Your Story",
		Description:    "Share 2 testimonies with your fellowship",
		Category:       "testimony",
		Icon:           "open-book",
		Threshold:      2,
		BadgeReward:    "voice_of_hope",
		CountsActivity: "testimony",
	},
	{
		ID:          "daily_presence",
		Title:       "Show Up Daily",
		Description: "Be active every day this week",
		Category:    "presence",
		Icon:        "calendar-check",
		Threshold:   7,
	},
	{
		ID:             "encourage_three",
		Title:          "Encourage Three",
		Description:    "Leave 3 encouraging comments",
		Category:       "community",
		Icon:           "heart-hands",
		Threshold:      3,
		CountsActivity: "comment",
	},
}

// TemplateByID looks a template up by id.
func TemplateByID(id string) (Template, bool) {
	for _, t := range Templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
