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
	"kindledAPI/internal/types/challenge"
	notiftypes "kindledAPI/internal/types/notification"
	"kindledAPI/middleware"
	"kindledAPI/utils"
)

type ChallengeService struct {
	db            *pgxpool.Pool
	badges        *BadgeService
	notifications *NotificationService
	locks         *utils.KeyMutex
}

func NewChallengeService(db *pgxpool.Pool, badges *BadgeService, notifications *NotificationService) *ChallengeService {
	return &ChallengeService{
		db:            db,
		badges:        badges,
		notifications: notifications,
		locks:         utils.NewKeyMutex(),
	}
}

// CreateChallenge instantiates a challenge from a template for one
// canonical week. Only a steward of the group may create one, and two
// active challenges of the same template may not overlap.
func (s *ChallengeService) CreateChallenge(ctx context.Context, clerkID string, req *challenge.CreateChallengeRequest) (*challenge.Challenge, error) {
	stewardID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		return nil, fmt.Errorf("invalid group id %q: %w", req.GroupID, ErrInvalidInput)
	}

	steward, err := isSteward(ctx, s.db, stewardID, groupID)
	if err != nil {
		return nil, err
	}
	if !steward {
		return nil, ErrNotSteward
	}

	tmpl, ok := challenge.TemplateByID(req.TemplateID)
	if !ok {
		return nil, fmt.Errorf("unknown challenge template %q: %w", req.TemplateID, ErrInvalidInput)
	}

	weekStart := utils.WeekStart(req.WeekStart)
	weekEnd := utils.WeekEnd(weekStart)
	if !req.WeekEnd.IsZero() && req.WeekEnd.UTC().Before(weekStart) {
		return nil, fmt.Errorf("week end before week start: %w", ErrInvalidInput)
	}

	var duplicate bool
	overlapQuery := `
		SELECT EXISTS(
			SELECT 1 FROM challenges
			WHERE group_id = $1 AND template_id = $2 AND status = 'active'
			AND week_start <= $4 AND week_end >= $3
		)
	`
	if err := s.db.QueryRow(ctx, overlapQuery, groupID, tmpl.ID, weekStart, weekEnd).Scan(&duplicate); err != nil {
		return nil, fmt.Errorf("failed to check for duplicate challenge: %w", err)
	}
	if duplicate {
		return nil, ErrDuplicateChallenge
	}

	c := &challenge.Challenge{
		ID:          uuid.New(),
		GroupID:     groupID,
		TemplateID:  tmpl.ID,
		Title:       tmpl.Title,
		Description: tmpl.Description,
		Category:    tmpl.Category,
		Icon:        tmpl.Icon,
		WeekStart:   weekStart,
		WeekEnd:     weekEnd,
		Status:      challenge.StatusActive,
		Threshold:   tmpl.Threshold,
		BadgeReward: tmpl.BadgeReward,
	}

	query := `
		INSERT INTO challenges (id, group_id, template_id, title, description, category, icon, week_start, week_end, status, completion_threshold, badge_reward, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING created_at
	`
	err = s.db.QueryRow(ctx, query,
		c.ID, c.GroupID, c.TemplateID, c.Title, c.Description, c.Category, c.Icon,
		c.WeekStart, c.WeekEnd, c.Status, c.Threshold, c.BadgeReward,
	).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	return c, nil
}

// UpdateProgressByClerkID is the HTTP-facing wrapper around
// UpdateProgress. The increment defaults to 1 when absent.
func (s *ChallengeService) UpdateProgressByClerkID(ctx context.Context, clerkID string, req *challenge.UpdateProgressRequest) (*challenge.UserProgress, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	challengeID, err := uuid.Parse(req.ChallengeID)
	if err != nil {
		return nil, fmt.Errorf("invalid challenge id %q: %w", req.ChallengeID, ErrInvalidInput)
	}

	increment := 1
	if req.Increment != nil {
		increment = *req.Increment
	}
	return s.UpdateProgress(ctx, userID, challengeID, increment)
}

// UpdateProgress adds a positive increment to the caller's progress on
// an active, in-window challenge. The completion flag flips exactly
// once, at the first threshold crossing; progress keeps accumulating
// afterward for display.
func (s *ChallengeService) UpdateProgress(ctx context.Context, userID, challengeID uuid.UUID, increment int) (*challenge.UserProgress, error) {
	if increment <= 0 {
		return nil, fmt.Errorf("increment must be a positive integer: %w", ErrInvalidInput)
	}

	c, err := s.getChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if c.Status != challenge.StatusActive || now.Before(c.WeekStart) || now.After(c.WeekEnd) {
		return nil, ErrChallengeNotActive
	}

	key := userID.String() + "|" + challengeID.String()
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	query := `
		INSERT INTO user_challenge_progress (id, challenge_id, user_id, progress, completed, updated_at)
		VALUES ($1, $2, $3, $4, false, NOW())
		ON CONFLICT (challenge_id, user_id)
		DO UPDATE SET
			progress = user_challenge_progress.progress + $4,
			updated_at = NOW()
		RETURNING id, challenge_id, user_id, progress, completed, completed_at, updated_at
	`
	p := &challenge.UserProgress{}
	err = s.db.QueryRow(ctx, query, uuid.New(), challengeID, userID, increment).Scan(
		&p.ID, &p.ChallengeID, &p.UserID, &p.Progress, &p.Completed, &p.CompletedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update challenge progress: %w", err)
	}

	if !p.Completed && utils.CompletionCrossed(p.Progress-increment, p.Progress, c.Threshold) {
		if err := s.complete(ctx, p, c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// complete flips the completion flag. The completed = false guard makes
// the first writer win; completed_at is never rewritten.
func (s *ChallengeService) complete(ctx context.Context, p *challenge.UserProgress, c *challenge.Challenge) error {
	query := `
		UPDATE user_challenge_progress
		SET completed = true, completed_at = NOW()
		WHERE id = $1 AND completed = false
		RETURNING completed_at
	`
	var completedAt time.Time
	err := s.db.QueryRow(ctx, query, p.ID).Scan(&completedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// A concurrent increment already flipped it.
			return nil
		}
		return fmt.Errorf("failed to mark challenge completed: %w", err)
	}

	p.Completed = true
	p.CompletedAt = &completedAt
	middleware.ChallengesCompleted.Inc()

	s.notifications.Notify(ctx, p.UserID, notiftypes.NotificationChallengeCompleted,
		"Challenge complete!",
		fmt.Sprintf("You completed %q. Well done.", c.Title))

	// Reward-eligibility signal: the evaluator reads the completed
	// progress row and the challenge's badge_reward from the store.
	if _, err := s.badges.EvaluateBadges(ctx, p.UserID, c.GroupID); err != nil {
		log.Printf("complete: badge evaluation failed for user %s: %v", p.UserID, err)
	}
	return nil
}

// ApplyActivity advances progress on every active challenge of the
// group that counts this activity. Called from the record-activity
// flow; dayAdvanced marks the first activity of a new day, which is
// what presence-style templates count.
func (s *ChallengeService) ApplyActivity(ctx context.Context, userID, groupID uuid.UUID, activityType activity.ActivityType, dayAdvanced bool, occurredAt time.Time) error {
	active, err := s.ListActiveChallenges(ctx, groupID)
	if err != nil {
		return err
	}

	for _, c := range active {
		if occurredAt.Before(c.WeekStart) || occurredAt.After(c.WeekEnd) {
			continue
		}
		tmpl, ok := challenge.TemplateByID(c.TemplateID)
		if !ok {
			continue
		}

		counts := false
		if tmpl.CountsActivity != "" {
			counts = tmpl.CountsActivity == string(activityType)
		} else {
			counts = dayAdvanced
		}
		if !counts {
			continue
		}

		if _, err := s.UpdateProgress(ctx, userID, c.ID, 1); err != nil && !errors.Is(err, ErrChallengeNotActive) {
			return err
		}
	}
	return nil
}

// ListActiveChallenges returns the group's active, in-window
// challenges. Past-window challenges are swept to their terminal state
// first: completed when any member finished, expired otherwise.
func (s *ChallengeService) ListActiveChallenges(ctx context.Context, groupID uuid.UUID) ([]challenge.Challenge, error) {
	if err := s.sweepEnded(ctx, groupID); err != nil {
		log.Printf("ListActiveChallenges: expiry sweep failed for group %s: %v", groupID, err)
	}

	query := `
		SELECT id, group_id, template_id, title, description, category, icon, week_start, week_end, status, completion_threshold, badge_reward, created_at
		FROM challenges
		WHERE group_id = $1 AND status = 'active'
		ORDER BY week_start DESC, created_at DESC
	`
	rows, err := s.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active challenges: %w", err)
	}
	defer rows.Close()

	var challenges []challenge.Challenge
	for rows.Next() {
		var c challenge.Challenge
		if err := rows.Scan(
			&c.ID, &c.GroupID, &c.TemplateID, &c.Title, &c.Description, &c.Category, &c.Icon,
			&c.WeekStart, &c.WeekEnd, &c.Status, &c.Threshold, &c.BadgeReward, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

// sweepEnded moves past-window active challenges to a terminal state.
// Terminal states are final; nothing transitions out of them.
func (s *ChallengeService) sweepEnded(ctx context.Context, groupID uuid.UUID) error {
	query := `
		UPDATE challenges c
		SET status = CASE
			WHEN EXISTS(
				SELECT 1 FROM user_challenge_progress p
				WHERE p.challenge_id = c.id AND p.completed = true
			) THEN 'completed'
			ELSE 'expired'
		END
		WHERE c.group_id = $1 AND c.status = 'active' AND c.week_end < NOW()
	`
	_, err := s.db.Exec(ctx, query, groupID)
	return err
}

// GetChallengeProgressByClerkID returns the caller's progress rows for
// a group.
func (s *ChallengeService) GetChallengeProgressByClerkID(ctx context.Context, clerkID string, groupID uuid.UUID) ([]challenge.ProgressWithChallenge, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	return s.GetChallengeProgress(ctx, userID, groupID)
}

// GetChallengeProgress returns the user's progress rows joined to the
// group's challenges, newest week first.
func (s *ChallengeService) GetChallengeProgress(ctx context.Context, userID, groupID uuid.UUID) ([]challenge.ProgressWithChallenge, error) {
	query := `
		SELECT c.id, c.group_id, c.template_id, c.title, c.description, c.category, c.icon, c.week_start, c.week_end, c.status, c.completion_threshold, c.badge_reward, c.created_at,
		       p.id, p.challenge_id, p.user_id, p.progress, p.completed, p.completed_at, p.updated_at
		FROM user_challenge_progress p
		JOIN challenges c ON c.id = p.challenge_id
		WHERE p.user_id = $1 AND c.group_id = $2
		ORDER BY c.week_start DESC
	`
	rows, err := s.db.Query(ctx, query, userID, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge progress: %w", err)
	}
	defer rows.Close()

	var out []challenge.ProgressWithChallenge
	for rows.Next() {
		var pc challenge.ProgressWithChallenge
		c := &pc.Challenge
		p := &pc.Progress
		if err := rows.Scan(
			&c.ID, &c.GroupID, &c.TemplateID, &c.Title, &c.Description, &c.Category, &c.Icon,
			&c.WeekStart, &c.WeekEnd, &c.Status, &c.Threshold, &c.BadgeReward, &c.CreatedAt,
			&p.ID, &p.ChallengeID, &p.UserID, &p.Progress, &p.Completed, &p.CompletedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan challenge progress: %w", err)
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

func (s *ChallengeService) getChallenge(ctx context.Context, challengeID uuid.UUID) (*challenge.Challenge, error) {
	query := `
		SELECT id, group_id, template_id, title, description, category, icon, week_start, week_end, status, completion_threshold, badge_reward, created_at
		FROM challenges
		WHERE id = $1
	`
	c := &challenge.Challenge{}
	err := s.db.QueryRow(ctx, query, challengeID).Scan(
		&c.ID, &c.GroupID, &c.TemplateID, &c.Title, &c.Description, &c.Category, &c.Icon,
		&c.WeekStart, &c.WeekEnd, &c.Status, &c.Threshold, &c.BadgeReward, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("challenge not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return c, nil
}
