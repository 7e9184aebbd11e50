package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"kindledAPI/internal/types/feed"
	"kindledAPI/internal/types/profile"
)

func TestRankFeedInterestMatchIsCaseInsensitive(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	p := &profile.UserProfile{Interests: []string{"Worship"}}

	items := []feed.Item{
		{ID: "a", Type: "worship"},
		{ID: "b", Type: "testimony"},
	}
	ranked := RankFeed(items, p, now)
	if ranked[0].ID != "a" {
		t.Fatalf("interest match should rank first, got %s", ranked[0].ID)
	}
	if ranked[0].Score != 2 {
		t.Errorf("expected interest bonus 2, got %v", ranked[0].Score)
	}
}

func TestRankFeedPreferredGroupAndMute(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	groupID := uuid.New()
	otherID := uuid.New()
	p := &profile.UserProfile{
		PreferredGroupID: &groupID,
		DismissedTypes:   []string{"announcement"},
	}

	items := []feed.Item{
		{ID: "muted", Type: "announcement", GroupID: &otherID},
		{ID: "preferred", Type: "post", GroupID: &groupID},
		{ID: "plain", Type: "post", GroupID: &otherID},
	}
	ranked := RankFeed(items, p, now)

	if ranked[0].ID != "preferred" || ranked[0].Score != 1 {
		t.Errorf("preferred group item should lead with score 1, got %s/%v", ranked[0].ID, ranked[0].Score)
	}
	if ranked[2].ID != "muted" || ranked[2].Score != -1 {
		t.Errorf("muted type should sink with score -1, got %s/%v", ranked[2].ID, ranked[2].Score)
	}
}

func TestRankFeedRecency(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-1 * time.Hour)
	stale := now.Add(-24 * time.Hour)
	future := now.Add(1 * time.Hour)

	items := []feed.Item{
		{ID: "stale", Type: "post", CreatedAt: &stale},
		{ID: "fresh", Type: "post", CreatedAt: &fresh},
		{ID: "untimed", Type: "post"},
		{ID: "future", Type: "post", CreatedAt: &future},
	}
	ranked := RankFeed(items, nil, now)

	byID := map[string]float64{}
	for _, r := range ranked {
		byID[r.ID] = r.Score
	}
	if byID["stale"] != 0 {
		t.Errorf("items older than the window get no boost, got %v", byID["stale"])
	}
	if byID["untimed"] != 0 {
		t.Errorf("items without a timestamp get no boost, got %v", byID["untimed"])
	}
	if byID["future"] != 1 {
		t.Errorf("future timestamps clamp to full boost, got %v", byID["future"])
	}
	want := (12.0 - 1.0) / 12.0
	if byID["fresh"] != want {
		t.Errorf("expected boost %v for 1h-old item, got %v", want, byID["fresh"])
	}
}

func TestRankFeedStableOnTies(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	items := []feed.Item{
		{ID: "first", Type: "post"},
		{ID: "second", Type: "post"},
		{ID: "third", Type: "post"},
	}
	ranked := RankFeed(items, nil, now)
	for i, id := range []string{"first", "second", "third"} {
		if ranked[i].ID != id {
			t.Fatalf("tied items must keep input order, got %s at %d", ranked[i].ID, i)
		}
	}
}

func TestRankFeedDoesNotMutateInput(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-time.Hour)
	items := []feed.Item{
		{ID: "a", Type: "post"},
		{ID: "b", Type: "post", CreatedAt: &fresh},
	}
	RankFeed(items, nil, now)
	if items[0].ID != "a" || items[1].ID != "b" {
		t.Error("input slice order changed")
	}
}
