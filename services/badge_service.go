package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kindledAPI/internal/types/badge"
	notiftypes "kindledAPI/internal/types/notification"
	"kindledAPI/middleware"
)

type BadgeService struct {
	db            *pgxpool.Pool
	notifications *NotificationService
}

func NewBadgeService(db *pgxpool.Pool, notifications *NotificationService) *BadgeService {
	return &BadgeService{db: db, notifications: notifications}
}

// EvaluateBadgesByClerkID is the HTTP-facing wrapper around
// EvaluateBadges.
func (s *BadgeService) EvaluateBadgesByClerkID(ctx context.Context, clerkID string, groupID uuid.UUID) ([]badge.BadgeWithStatus, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	return s.EvaluateBadges(ctx, userID, groupID)
}

// GetUserBadgesByClerkID returns the catalog annotated with the
// caller's unlock state.
func (s *BadgeService) GetUserBadgesByClerkID(ctx context.Context, clerkID string, groupID *uuid.UUID) ([]badge.BadgeWithStatus, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	return s.GetUserBadges(ctx, userID, groupID)
}

// EvaluateBadges checks every catalog rule against the user's
// aggregated stats and awards what newly qualifies. Awarding is an
// atomic insert-if-absent on the (user_id, badge_code) unique
// constraint, so concurrent or repeated evaluation can never
// double-award. Returns only the badges awarded by this call.
func (s *BadgeService) EvaluateBadges(ctx context.Context, userID, groupID uuid.UUID) ([]badge.BadgeWithStatus, error) {
	stats, err := s.collectStats(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	var awarded []badge.BadgeWithStatus
	for _, b := range badge.Catalog {
		if !b.SatisfiedBy(stats) {
			continue
		}

		earnedAt, inserted, err := s.award(ctx, userID, groupID, b.Code)
		if err != nil {
			return nil, err
		}
		if !inserted {
			continue
		}

		middleware.BadgesAwarded.Inc()
		awarded = append(awarded, badge.BadgeWithStatus{Badge: b, Unlocked: true, EarnedAt: &earnedAt})

		s.notifications.Notify(ctx, userID, notiftypes.NotificationBadgeUnlocked,
			"Badge unlocked",
			fmt.Sprintf("You earned the %s badge: %s", b.Name, b.Description))
	}

	return awarded, nil
}

// award inserts the user badge if absent. ON CONFLICT DO NOTHING makes
// the insert the race guard; no read-then-write.
func (s *BadgeService) award(ctx context.Context, userID, groupID uuid.UUID, code string) (time.Time, bool, error) {
	query := `
		INSERT INTO user_badges (id, user_id, badge_code, group_id, earned_at, is_featured)
		VALUES ($1, $2, $3, $4, NOW(), false)
		ON CONFLICT (user_id, badge_code) DO NOTHING
		RETURNING earned_at
	`
	var earnedAt time.Time
	err := s.db.QueryRow(ctx, query, uuid.New(), userID, code, groupID).Scan(&earnedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Already earned; nothing inserted.
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to award badge %s: %w", code, err)
	}
	return earnedAt, true, nil
}

// collectStats builds the aggregated view the rules read: streak state,
// lifetime activity counts, and completed-challenge history. The
// evaluator never touches raw ledger rows.
func (s *BadgeService) collectStats(ctx context.Context, userID, groupID uuid.UUID) (*badge.UserStats, error) {
	stats := &badge.UserStats{CountsByType: make(map[string]int)}

	streakQuery := `
		SELECT COALESCE(MAX(current_streak), 0), COALESCE(MAX(longest_streak), 0)
		FROM faith_flames
		WHERE user_id = $1 AND group_id = $2
	`
	if err := s.db.QueryRow(ctx, streakQuery, userID, groupID).Scan(&stats.CurrentStreak, &stats.LongestStreak); err != nil {
		return nil, fmt.Errorf("failed to read streak stats: %w", err)
	}

	countQuery := `
		SELECT activity_type, COUNT(*)
		FROM activity_events
		WHERE user_id = $1
		GROUP BY activity_type
	`
	rows, err := s.db.Query(ctx, countQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read activity counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var activityType string
		var count int
		if err := rows.Scan(&activityType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan activity count: %w", err)
		}
		stats.CountsByType[activityType] = count
		stats.TotalActivities += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	challengeQuery := `
		SELECT COUNT(*)
		FROM user_challenge_progress
		WHERE user_id = $1 AND completed = true
	`
	if err := s.db.QueryRow(ctx, challengeQuery, userID).Scan(&stats.ChallengesCompleted); err != nil {
		return nil, fmt.Errorf("failed to count completed challenges: %w", err)
	}

	rewardQuery := `
		SELECT DISTINCT c.badge_reward
		FROM user_challenge_progress p
		JOIN challenges c ON c.id = p.challenge_id
		WHERE p.user_id = $1 AND p.completed = true AND c.badge_reward <> ''
	`
	rewardRows, err := s.db.Query(ctx, rewardQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read challenge rewards: %w", err)
	}
	defer rewardRows.Close()
	for rewardRows.Next() {
		var code string
		if err := rewardRows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan reward code: %w", err)
		}
		stats.RewardCodes = append(stats.RewardCodes, code)
	}
	return stats, rewardRows.Err()
}

// ListBadges returns the static catalog.
func (s *BadgeService) ListBadges() []badge.Badge {
	return badge.Catalog
}

// GetUserBadges returns the catalog annotated with the user's unlock
// state. A nil groupID returns awards from every group.
func (s *BadgeService) GetUserBadges(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) ([]badge.BadgeWithStatus, error) {
	query := `
		SELECT badge_code, earned_at
		FROM user_badges
		WHERE user_id = $1 AND ($2::uuid IS NULL OR group_id = $2)
	`
	rows, err := s.db.Query(ctx, query, userID, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user badges: %w", err)
	}
	defer rows.Close()

	earned := make(map[string]time.Time)
	for rows.Next() {
		var code string
		var earnedAt time.Time
		if err := rows.Scan(&code, &earnedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user badge: %w", err)
		}
		earned[code] = earnedAt
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]badge.BadgeWithStatus, 0, len(badge.Catalog))
	for _, b := range badge.Catalog {
		bs := badge.BadgeWithStatus{Badge: b}
		if at, ok := earned[b.Code]; ok {
			bs.Unlocked = true
			t := at
			bs.EarnedAt = &t
		}
		out = append(out, bs)
	}
	return out, nil
}
