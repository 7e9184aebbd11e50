package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kindledAPI/internal/types/activity"
	notiftypes "kindledAPI/internal/types/notification"
	"kindledAPI/internal/types/unity"
	"kindledAPI/utils"
)

// UnityService rolls group activity up into weekly unity points. It is
// a pure read over the ledger; nothing here holds locks or counters.
type UnityService struct {
	db            *pgxpool.Pool
	notifications *NotificationService
}

func NewUnityService(db *pgxpool.Pool, notifications *NotificationService) *UnityService {
	return &UnityService{db: db, notifications: notifications}
}

// GetUnityPoints computes a group's unity points for the canonical week
// containing weekStart (zero value means the current week). An on-fire
// result triggers a best-effort celebration push to the group.
func (s *UnityService) GetUnityPoints(ctx context.Context, groupID uuid.UUID, weekStart time.Time) (*unity.UnityPointsWeek, error) {
	if weekStart.IsZero() {
		weekStart = time.Now().UTC()
	}

	week, err := s.computeWeek(ctx, groupID, utils.WeekStart(weekStart))
	if err != nil {
		return nil, err
	}

	if week.IsOnFire {
		s.notifyOnFire(ctx, groupID, week)
	}
	return week, nil
}

// GetUnityPointsHistory returns the last `weeks` canonical weeks,
// newest first, current week included.
func (s *UnityService) GetUnityPointsHistory(ctx context.Context, groupID uuid.UUID, weeks int) ([]unity.UnityPointsWeek, error) {
	if weeks <= 0 {
		return nil, fmt.Errorf("weeks must be a positive integer: %w", ErrInvalidInput)
	}

	start := utils.WeekStart(time.Now().UTC())
	history := make([]unity.UnityPointsWeek, 0, weeks)
	for i := 0; i < weeks; i++ {
		week, err := s.computeWeek(ctx, groupID, start.AddDate(0, 0, -7*i))
		if err != nil {
			return nil, err
		}
		history = append(history, *week)
	}
	return history, nil
}

func (s *UnityService) computeWeek(ctx context.Context, groupID uuid.UUID, weekStart time.Time) (*unity.UnityPointsWeek, error) {
	weekEnd := utils.WeekEnd(weekStart)

	query := `
		SELECT activity_type, COUNT(*)
		FROM activity_events
		WHERE group_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
		GROUP BY activity_type
	`
	rows, err := s.db.Query(ctx, query, groupID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate weekly activity: %w", err)
	}
	defer rows.Close()

	totalPoints := 0
	for rows.Next() {
		var activityType activity.ActivityType
		var count int
		if err := rows.Scan(&activityType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan weekly aggregate: %w", err)
		}
		totalPoints += utils.PointWeights[activityType] * count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	memberQuery := `
		SELECT COUNT(DISTINCT user_id)
		FROM activity_events
		WHERE group_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
	`
	var memberCount int
	if err := s.db.QueryRow(ctx, memberQuery, groupID, weekStart, weekEnd).Scan(&memberCount); err != nil {
		return nil, fmt.Errorf("failed to count contributing members: %w", err)
	}

	level := utils.EmberMeter(totalPoints, memberCount)
	return &unity.UnityPointsWeek{
		GroupID:       groupID,
		WeekStart:     weekStart,
		WeekEnd:       weekEnd,
		TotalPoints:   totalPoints,
		MemberCount:   memberCount,
		EmberMeter:    level,
		IsOnFire:      level >= utils.OnFireLevel,
		WeeklyMessage: utils.WeeklyMessage(level),
	}, nil
}

// notifyOnFire celebrates an on-fire week, at most once per group+week.
func (s *UnityService) notifyOnFire(ctx context.Context, groupID uuid.UUID, week *unity.UnityPointsWeek) {
	// Dedupe on (group, week) so repeated reads don't re-celebrate.
	query := `
		INSERT INTO group_week_celebrations (group_id, week_start, celebrated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (group_id, week_start) DO NOTHING
	`
	tag, err := s.db.Exec(ctx, query, groupID, week.WeekStart)
	if err != nil {
		log.Printf("notifyOnFire: failed to record celebration for group %s: %v", groupID, err)
		return
	}
	if tag.RowsAffected() == 0 {
		return
	}

	s.notifications.NotifyGroup(ctx, groupID, notiftypes.NotificationGroupOnFire,
		"Your fellowship is on fire!", week.WeeklyMessage)
}
