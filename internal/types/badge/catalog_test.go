package badge

import (
	"testing"

	"kindledAPI/internal/types/challenge"
)

func TestCatalogCodesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range Catalog {
		if b.Code == "" {
			t.Error("catalog badge with empty code")
		}
		if seen[b.Code] {
			t.Errorf("duplicate badge code %s", b.Code)
		}
		seen[b.Code] = true
	}
}

func TestByCode(t *testing.T) {
	b, ok := ByCode("first_spark")
	if !ok || b.Rule != RuleFirstActivity {
		t.Fatalf("expected first_spark with first_activity rule, got %+v ok=%v", b, ok)
	}
	if _, ok := ByCode("no_such_badge"); ok {
		t.Error("unknown code must not resolve")
	}
}

func TestSatisfiedByFirstActivity(t *testing.T) {
	b, _ := ByCode("first_spark")
	if b.SatisfiedBy(&UserStats{}) {
		t.Error("no activity yet, must not unlock")
	}
	if !b.SatisfiedBy(&UserStats{TotalActivities: 1}) {
		t.Error("one activity must unlock first_spark")
	}
}

func TestSatisfiedByStreakUsesLongest(t *testing.T) {
	b, _ := ByCode("week_of_fire")
	// A broken streak still counts through the longest record.
	stats := &UserStats{CurrentStreak: 1, LongestStreak: 7}
	if !b.SatisfiedBy(stats) {
		t.Error("longest streak of 7 must unlock week_of_fire")
	}
	if b.SatisfiedBy(&UserStats{CurrentStreak: 6, LongestStreak: 6}) {
		t.Error("streak of 6 must not unlock week_of_fire")
	}
}

func TestSatisfiedByActivityCount(t *testing.T) {
	b, _ := ByCode("prayer_warrior")
	stats := &UserStats{
		TotalActivities: 40,
		CountsByType:    map[string]int{"prayer": 24, "comment": 16},
	}
	if b.SatisfiedBy(stats) {
		t.Error("24 prayers must not unlock prayer_warrior")
	}
	stats.CountsByType["prayer"] = 25
	if !b.SatisfiedBy(stats) {
		t.Error("25 prayers must unlock prayer_warrior")
	}
}

func TestSatisfiedByChallengesCompleted(t *testing.T) {
	challenger, _ := ByCode("challenger")
	overcomer, _ := ByCode("overcomer")

	stats := &UserStats{ChallengesCompleted: 1}
	if !challenger.SatisfiedBy(stats) {
		t.Error("one completion must unlock challenger")
	}
	if overcomer.SatisfiedBy(stats) {
		t.Error("one completion must not unlock overcomer")
	}
	stats.ChallengesCompleted = 5
	if !overcomer.SatisfiedBy(stats) {
		t.Error("five completions must unlock overcomer")
	}
}

func TestSatisfiedByChallengeReward(t *testing.T) {
	b, _ := ByCode("circle_of_prayer")
	if b.SatisfiedBy(&UserStats{ChallengesCompleted: 10, LongestStreak: 99}) {
		t.Error("reward badges never unlock from generic stats")
	}
	if !b.SatisfiedBy(&UserStats{RewardCodes: []string{"circle_of_prayer"}}) {
		t.Error("reward signal must unlock circle_of_prayer")
	}
	if b.SatisfiedBy(&UserStats{RewardCodes: []string{"voice_of_hope"}}) {
		t.Error("another badge's reward code must not unlock circle_of_prayer")
	}
}

// Every template badge reward must point at a real catalog badge with
// the challenge_reward rule, or completions would award nothing.
func TestTemplateRewardsExistInCatalog(t *testing.T) {
	for _, tpl := range challenge.Templates {
		if tpl.BadgeReward == "" {
			continue
		}
		b, ok := ByCode(tpl.BadgeReward)
		if !ok {
			t.Errorf("template %s rewards unknown badge %s", tpl.ID, tpl.BadgeReward)
			continue
		}
		if b.Rule != RuleChallengeReward {
			t.Errorf("badge %s rewarded by template %s must use the challenge_reward rule, has %s", b.Code, tpl.ID, b.Rule)
		}
	}
}
