package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kindledAPI/internal/types/activity"
)

// LedgerService is the engine's adapter over the append-only activity
// ledger. Events are immutable once recorded.
type LedgerService struct {
	db *pgxpool.Pool
}

func NewLedgerService(db *pgxpool.Pool) *LedgerService {
	return &LedgerService{db: db}
}

func (s *LedgerService) AppendEvent(ctx context.Context, userID, groupID uuid.UUID, activityType activity.ActivityType, occurredAt time.Time) (uuid.UUID, error) {
	if !activityType.IsValid() {
		return uuid.Nil, fmt.Errorf("unknown activity type %q: %w", activityType, ErrInvalidInput)
	}

	eventID := uuid.New()
	query := `
		INSERT INTO activity_events (id, user_id, group_id, activity_type, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	if _, err := s.db.Exec(ctx, query, eventID, userID, groupID, activityType, occurredAt); err != nil {
		return uuid.Nil, fmt.Errorf("failed to append activity event: %w", err)
	}
	return eventID, nil
}

func (s *LedgerService) QueryGroupEvents(ctx context.Context, groupID uuid.UUID, from, to time.Time) ([]activity.ActivityEvent, error) {
	query := `
		SELECT id, user_id, group_id, activity_type, occurred_at, created_at
		FROM activity_events
		WHERE group_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
		ORDER BY occurred_at ASC
	`
	rows, err := s.db.Query(ctx, query, groupID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query group events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (s *LedgerService) QueryUserEvents(ctx context.Context, userID, groupID uuid.UUID, from, to time.Time) ([]activity.ActivityEvent, error) {
	query := `
		SELECT id, user_id, group_id, activity_type, occurred_at, created_at
		FROM activity_events
		WHERE user_id = $1 AND group_id = $2 AND occurred_at >= $3 AND occurred_at <= $4
		ORDER BY occurred_at ASC
	`
	rows, err := s.db.Query(ctx, query, userID, groupID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query user events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CountsByType returns a user's lifetime activity counts, keyed by
// activity type. Input to badge evaluation.
func (s *LedgerService) CountsByType(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	query := `
		SELECT activity_type, COUNT(*)
		FROM activity_events
		WHERE user_id = $1
		GROUP BY activity_type
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var activityType string
		var count int
		if err := rows.Scan(&activityType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan activity count: %w", err)
		}
		counts[activityType] = count
	}
	return counts, rows.Err()
}

func scanEvents(rows pgx.Rows) ([]activity.ActivityEvent, error) {
	var events []activity.ActivityEvent
	for rows.Next() {
		var e activity.ActivityEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.GroupID, &e.Type, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
