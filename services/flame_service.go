package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kindledAPI/internal/types/activity"
	"kindledAPI/internal/types/badge"
	"kindledAPI/internal/types/flame"
	notiftypes "kindledAPI/internal/types/notification"
	"kindledAPI/middleware"
	"kindledAPI/utils"
)

// FlameService owns the per user+group streak state machine. All other
// effects of an activity (challenge progress, badge evaluation, pushes)
// fan out from RecordActivity here.
type FlameService struct {
	db            *pgxpool.Pool
	ledger        *LedgerService
	challenges    *ChallengeService
	badges        *BadgeService
	notifications *NotificationService
	locks         *utils.KeyMutex
}

func NewFlameService(db *pgxpool.Pool, ledger *LedgerService, challenges *ChallengeService, badges *BadgeService, notifications *NotificationService) *FlameService {
	return &FlameService{
		db:            db,
		ledger:        ledger,
		challenges:    challenges,
		badges:        badges,
		notifications: notifications,
		locks:         utils.NewKeyMutex(),
	}
}

type RecordActivityResult struct {
	EventID   uuid.UUID               `json:"event_id"`
	Flame     *flame.FaithFlame       `json:"flame"`
	NewBadges []badge.BadgeWithStatus `json:"new_badges,omitempty"`
}

// RecordActivity appends the event to the ledger, advances the streak
// under the per-key lock, bumps matching challenge progress, and runs
// badge evaluation. Same-day repeats leave the streak untouched but
// still land in the ledger (they count toward unity points).
func (s *FlameService) RecordActivity(ctx context.Context, clerkID string, req *activity.RecordActivityRequest) (*RecordActivityResult, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		return nil, fmt.Errorf("invalid group id %q: %w", req.GroupID, ErrInvalidInput)
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	eventID, err := s.ledger.AppendEvent(ctx, userID, groupID, req.Type, occurredAt)
	if err != nil {
		return nil, err
	}
	middleware.ActivitiesRecorded.WithLabelValues(string(req.Type)).Inc()

	state, dayAdvanced, err := s.advance(ctx, userID, groupID, occurredAt)
	if err != nil {
		return nil, err
	}

	if err := s.challenges.ApplyActivity(ctx, userID, groupID, req.Type, dayAdvanced, occurredAt); err != nil {
		// Challenge bumps must not lose the recorded activity.
		log.Printf("RecordActivity: challenge progress update failed for user %s: %v", userID, err)
	}

	newBadges, err := s.badges.EvaluateBadges(ctx, userID, groupID)
	if err != nil {
		log.Printf("RecordActivity: badge evaluation failed for user %s: %v", userID, err)
		newBadges = nil
	}

	return &RecordActivityResult{EventID: eventID, Flame: state, NewBadges: newBadges}, nil
}

// advance performs the locked read-modify-write on the streak row.
func (s *FlameService) advance(ctx context.Context, userID, groupID uuid.UUID, occurredAt time.Time) (*flame.FaithFlame, bool, error) {
	key := userID.String() + "|" + groupID.String()
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	state, err := s.getFlame(ctx, userID, groupID)
	if err != nil {
		return nil, false, err
	}

	prevIntensity := state.Intensity
	current, longest, changed := utils.AdvanceStreak(state.CurrentStreak, state.LongestStreak, state.LastActiveOn, occurredAt)
	if !changed {
		return state, false, nil
	}

	day := utils.DayOf(occurredAt)
	query := `
		INSERT INTO faith_flames (id, user_id, group_id, current_streak, longest_streak, last_active_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (user_id, group_id)
		DO UPDATE SET
			current_streak = $4,
			longest_streak = $5,
			last_active_on = $6,
			updated_at = NOW()
	`
	if _, err := s.db.Exec(ctx, query, uuid.New(), userID, groupID, current, longest, day); err != nil {
		return nil, false, fmt.Errorf("failed to persist streak: %w", err)
	}

	state.CurrentStreak = current
	state.LongestStreak = longest
	state.LastActiveOn = &day
	state.Intensity = utils.IntensityFor(current)

	if state.Intensity != prevIntensity && state.Intensity != flame.IntensityOut {
		s.notifications.Notify(ctx, userID, notiftypes.NotificationStreakMilestone,
			"Your flame grew brighter",
			fmt.Sprintf("You reached a %d-day streak. Your flame is now %s.", current, state.Intensity))
	}

	return state, true, nil
}

// GetFaithFlameByClerkID returns the caller's streak state for a
// group. An absent row is the zero state ("out"), not an error.
func (s *FlameService) GetFaithFlameByClerkID(ctx context.Context, clerkID string, groupID uuid.UUID) (*flame.FaithFlame, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	return s.getFlame(ctx, userID, groupID)
}

func (s *FlameService) getFlame(ctx context.Context, userID, groupID uuid.UUID) (*flame.FaithFlame, error) {
	query := `
		SELECT id, user_id, group_id, current_streak, longest_streak, last_active_on, created_at, updated_at
		FROM faith_flames
		WHERE user_id = $1 AND group_id = $2
	`
	state := &flame.FaithFlame{}
	err := s.db.QueryRow(ctx, query, userID, groupID).Scan(
		&state.ID,
		&state.UserID,
		&state.GroupID,
		&state.CurrentStreak,
		&state.LongestStreak,
		&state.LastActiveOn,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &flame.FaithFlame{
				UserID:    userID,
				GroupID:   groupID,
				Intensity: flame.IntensityOut,
			}, nil
		}
		return nil, fmt.Errorf("failed to get streak state: %w", err)
	}

	state.Intensity = utils.IntensityFor(state.CurrentStreak)
	return state, nil
}

// ListFellowshipFlames returns every member's flame in a group,
// hottest first.
func (s *FlameService) ListFellowshipFlames(ctx context.Context, groupID uuid.UUID) ([]flame.FellowshipFlame, error) {
	query := `
		SELECT f.user_id, u.username, u.image_url, f.current_streak, f.longest_streak
		FROM faith_flames f
		JOIN users u ON u.id = f.user_id
		WHERE f.group_id = $1
		ORDER BY f.current_streak DESC, f.longest_streak DESC, u.username ASC
	`
	rows, err := s.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fellowship flames: %w", err)
	}
	defer rows.Close()

	var flames []flame.FellowshipFlame
	for rows.Next() {
		var f flame.FellowshipFlame
		if err := rows.Scan(&f.UserID, &f.Username, &f.ImageURL, &f.CurrentStreak, &f.LongestStreak); err != nil {
			return nil, fmt.Errorf("failed to scan fellowship flame: %w", err)
		}
		f.Intensity = utils.IntensityFor(f.CurrentStreak)
		flames = append(flames, f)
	}
	return flames, rows.Err()
}
