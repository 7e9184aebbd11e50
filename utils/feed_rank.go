package utils

import (
	"sort"
	"strings"
	"time"

	"kindledAPI/internal/types/feed"
	"kindledAPI/internal/types/profile"
)

const recencyWindowHours = 12.0

// RankFeed scores candidate items against a profile and returns them
// highest score first. The sort is stable: equal-score items keep
// their input order. Items are copied, never mutated.
func RankFeed(items []feed.Item, p *profile.UserProfile, now time.Time) []feed.RankedItem {
	interests := map[string]bool{}
	muted := map[string]bool{}
	if p != nil {
		for _, in := range p.Interests {
			interests[strings.ToLower(in)] = true
		}
		for _, t := range p.DismissedTypes {
			muted[strings.ToLower(t)] = true
		}
	}

	ranked := make([]feed.RankedItem, 0, len(items))
	for _, item := range items {
		score := 0.0
		itemType := strings.ToLower(item.Type)

		if interests[itemType] {
			score += 2
		}
		if p != nil && p.PreferredGroupID != nil && item.GroupID != nil && *item.GroupID == *p.PreferredGroupID {
			score++
		}
		if muted[itemType] {
			score--
		}
		score += recencyBoost(item.CreatedAt, now)

		ranked = append(ranked, feed.RankedItem{Item: item, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// recencyBoost decays linearly from 1 at zero age to 0 at 12 hours.
// Items without a timestamp get no boost.
func recencyBoost(createdAt *time.Time, now time.Time) float64 {
	if createdAt == nil {
		return 0
	}
	hoursOld := now.Sub(*createdAt).Hours()
	if hoursOld < 0 {
		hoursOld = 0
	}
	boost := (recencyWindowHours - hoursOld) / recencyWindowHours
	if boost < 0 {
		return 0
	}
	return boost
}
