package utils

import (
	"testing"

	"kindledAPI/internal/types/profile"
	"kindledAPI/internal/types/suggestion"
)

func TestBuildSuggestionsNilProfile(t *testing.T) {
	got := BuildSuggestions(nil)

	// Only the unconditional candidates survive without a profile.
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions for nil profile, got %d", len(got))
	}
	if got[0].Type != suggestion.TypeJoinFellowship || got[1].Type != suggestion.TypeWeeklyChallenge {
		t.Errorf("unexpected candidates: %s, %s", got[0].Type, got[1].Type)
	}
	// Equal scores keep catalog order.
	if got[0].Score != got[1].Score {
		t.Errorf("expected equal base scores, got %d and %d", got[0].Score, got[1].Score)
	}
}

func TestBuildSuggestionsEligibility(t *testing.T) {
	steward := &profile.UserProfile{
		Role:      profile.RoleSteward,
		City:      "Austin",
		Interests: []string{"worship", "hiking"},
	}
	got := BuildSuggestions(steward)
	if len(got) != 5 {
		t.Fatalf("steward with city and interests should see all 5, got %d", len(got))
	}

	disciple := &profile.UserProfile{Role: profile.RoleDisciple}
	got = BuildSuggestions(disciple)
	for _, s := range got {
		if s.Type == suggestion.TypeStartPrayerCircle {
			t.Error("start_prayer_circle must require the steward role")
		}
		if s.Type == suggestion.TypeEventNearby {
			t.Error("event_nearby must require a city or availability")
		}
		if s.Type == suggestion.TypeMeetMembers {
			t.Error("meet_members must require at least 2 interests")
		}
	}
}

func TestBuildSuggestionsDismissedIDDropped(t *testing.T) {
	p := &profile.UserProfile{
		DismissedIDs: []string{
			"sug-join-fellowship",
			"sug-event-nearby",
			"sug-start-prayer-circle",
			"sug-meet-members",
			"sug-weekly-challenge",
		},
	}
	if got := BuildSuggestions(p); len(got) != 0 {
		t.Fatalf("all candidates dismissed by ID, expected empty, got %d", len(got))
	}
}

func TestBuildSuggestionsDismissedTypeDemotes(t *testing.T) {
	p := &profile.UserProfile{
		Interests:      []string{"worship"},
		DismissedTypes: []string{string(suggestion.TypeJoinFellowship)},
	}
	got := BuildSuggestions(p)

	var join *suggestion.Suggestion
	for i := range got {
		if got[i].Type == suggestion.TypeJoinFellowship {
			join = &got[i]
		}
	}
	if join == nil {
		t.Fatal("a dismissed type must demote, not drop")
	}
	// base 1 + interest bonus 2 - 5 demotion.
	if join.Score != -2 {
		t.Errorf("expected score -2, got %d", join.Score)
	}
	if got[len(got)-1].Type != suggestion.TypeJoinFellowship {
		t.Error("demoted suggestion should rank last")
	}
}

func TestBuildSuggestionsRanking(t *testing.T) {
	p := &profile.UserProfile{
		Role:         profile.RoleSteward,
		City:         "Nairobi",
		Availability: []string{"saturday"},
		Interests:    []string{"worship", "scripture", "service", "music"},
		NotifCadence: "daily",
	}
	got := BuildSuggestions(p)
	if len(got) != 5 {
		t.Fatalf("expected 5 suggestions, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("results out of order at %d: %d after %d", i, got[i].Score, got[i-1].Score)
		}
	}
	// event_nearby: 1 + 2 (city) + 1 (availability) = 4, tied with
	// meet_members at 1 + 3; event_nearby wins the tie by catalog order.
	if got[0].Type != suggestion.TypeEventNearby {
		t.Errorf("expected event_nearby first, got %s", got[0].Type)
	}
	if got[1].Type != suggestion.TypeMeetMembers {
		t.Errorf("expected meet_members second, got %s", got[1].Type)
	}
}
