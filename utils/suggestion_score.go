package utils

import (
	"sort"

	"kindledAPI/internal/types/profile"
	"kindledAPI/internal/types/suggestion"
)

// suggestionCatalog is the fixed candidate set, in definition order.
// Definition order is the tiebreak for equal scores, so the order here
// is part of the contract.
var suggestionCatalog = []suggestion.Suggestion{
	{
		ID:          "sug-join-fellowship",
		Type:        suggestion.TypeJoinFellowship,
		Title:       "Join a fellowship",
		Description: "Find a fellowship that matches your interests",
		ActionURL:   "/fellowships/discover",
	},
	{
		ID:          "sug-event-nearby",
		Type:        suggestion.TypeEventNearby,
		Title:       "Events near you",
		Description: "See gatherings happening in your city",
		ActionURL:   "/events/nearby",
	},
	{
		ID:          "sug-start-prayer-circle",
		Type:        suggestion.TypeStartPrayerCircle,
		Title:       "Start a prayer circle",
		Description: "Gather your fellowship for a weekly prayer circle",
		ActionURL:   "/prayer-circles/new",
	},
	{
		ID:          "sug-meet-members",
		Type:        suggestion.TypeMeetMembers,
		Title:       "Meet members like you",
		Description: "Connect with members who share your interests",
		ActionURL:   "/members/discover",
	},
	{
		ID:          "sug-weekly-challenge",
		Type:        suggestion.TypeWeeklyChallenge,
		Title:       "This week's challenge",
		Description: "Take on your fellowship's weekly challenge",
		ActionURL:   "/challenges",
	},
}

// BuildSuggestions scores the fixed catalog against a profile and
// returns the eligible candidates, highest score first. A nil profile
// yields only the unconditional candidates. Suggestions dismissed by
// exact ID are dropped; a dismissed type only demotes.
func BuildSuggestions(p *profile.UserProfile) []suggestion.Suggestion {
	dismissedIDs := map[string]bool{}
	dismissedTypes := map[string]bool{}
	if p != nil {
		for _, id := range p.DismissedIDs {
			dismissedIDs[id] = true
		}
		for _, t := range p.DismissedTypes {
			dismissedTypes[t] = true
		}
	}

	out := make([]suggestion.Suggestion, 0, len(suggestionCatalog))
	for _, cand := range suggestionCatalog {
		if dismissedIDs[cand.ID] {
			continue
		}
		if !suggestionEligible(cand.Type, p) {
			continue
		}

		cand.Score = 1 + suggestionBonus(cand.Type, p)
		if dismissedTypes[string(cand.Type)] {
			cand.Score -= 5
		}
		out = append(out, cand)
	}

	// Stable keeps catalog definition order on ties.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func suggestionEligible(t suggestion.Type, p *profile.UserProfile) bool {
	switch t {
	case suggestion.TypeEventNearby:
		return p != nil && (p.City != "" || len(p.Availability) > 0)
	case suggestion.TypeStartPrayerCircle:
		return p != nil && p.Role == profile.RoleSteward
	case suggestion.TypeMeetMembers:
		return p != nil && len(p.Interests) >= 2
	default:
		// join_fellowship and weekly_challenge are unconditional.
		return true
	}
}

func suggestionBonus(t suggestion.Type, p *profile.UserProfile) int {
	if p == nil {
		return 0
	}
	bonus := 0
	switch t {
	case suggestion.TypeJoinFellowship:
		if len(p.Interests) > 0 {
			bonus += 2
		}
	case suggestion.TypeEventNearby:
		if p.City != "" {
			bonus += 2
		}
		if len(p.Availability) > 0 {
			bonus++
		}
	case suggestion.TypeStartPrayerCircle:
		if p.Role == profile.RoleSteward {
			bonus += 2
		}
	case suggestion.TypeMeetMembers:
		if n := len(p.Interests); n < 3 {
			bonus += n
		} else {
			bonus += 3
		}
	case suggestion.TypeWeeklyChallenge:
		if p.Role == profile.RoleSteward {
			bonus++
		}
		if p.NotifCadence == "daily" {
			bonus++
		}
	}
	return bonus
}
