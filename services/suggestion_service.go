package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kindledAPI/internal/types/profile"
	"kindledAPI/internal/types/suggestion"
	"kindledAPI/utils"
)

// SuggestionService loads profile signals and runs the request-time
// ranker. It reads profiles, never writes them, except for recording
// dismissals (which are themselves ranker input).
type SuggestionService struct {
	db *pgxpool.Pool
}

func NewSuggestionService(db *pgxpool.Pool) *SuggestionService {
	return &SuggestionService{db: db}
}

// BuildSuggestionsByClerkID ranks the fixed catalog for the caller.
func (s *SuggestionService) BuildSuggestionsByClerkID(ctx context.Context, clerkID string) ([]suggestion.Suggestion, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	return s.BuildSuggestions(ctx, userID)
}

// GetProfileByClerkID loads the caller's ranker signals. Nil when no
// profile exists.
func (s *SuggestionService) GetProfileByClerkID(ctx context.Context, clerkID string) (*profile.UserProfile, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// DismissSuggestionByClerkID records a dismissal for the caller.
func (s *SuggestionService) DismissSuggestionByClerkID(ctx context.Context, clerkID string, req *suggestion.DismissRequest) error {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}
	return s.DismissSuggestion(ctx, userID, req)
}

// BuildSuggestions ranks the fixed catalog for a user. A missing
// profile degrades to the unconditional candidates rather than failing
// the read.
func (s *SuggestionService) BuildSuggestions(ctx context.Context, userID uuid.UUID) ([]suggestion.Suggestion, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		log.Printf("BuildSuggestions: profile unavailable for user %s, degrading: %v", userID, err)
		p = nil
	}
	return utils.BuildSuggestions(p), nil
}

// GetProfile reads the ranker's signal set. An absent row returns nil
// with no error.
func (s *SuggestionService) GetProfile(ctx context.Context, userID uuid.UUID) (*profile.UserProfile, error) {
	query := `
		SELECT user_id, interests, city, role, availability, notif_cadence, dismissed_suggestion_ids, dismissed_suggestion_types, preferred_group_id
		FROM user_profiles
		WHERE user_id = $1
	`
	p := &profile.UserProfile{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Interests,
		&p.City,
		&p.Role,
		&p.Availability,
		&p.NotifCadence,
		&p.DismissedIDs,
		&p.DismissedTypes,
		&p.PreferredGroupID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// DismissSuggestion records a dismissal by ID, by type, or both.
func (s *SuggestionService) DismissSuggestion(ctx context.Context, userID uuid.UUID, req *suggestion.DismissRequest) error {
	if req.SuggestionID == "" && req.Type == "" {
		return fmt.Errorf("suggestion_id or type required: %w", ErrInvalidInput)
	}

	if req.SuggestionID != "" {
		query := `
			UPDATE user_profiles
			SET dismissed_suggestion_ids = array_append(dismissed_suggestion_ids, $2)
			WHERE user_id = $1 AND NOT ($2 = ANY(dismissed_suggestion_ids))
		`
		if _, err := s.db.Exec(ctx, query, userID, req.SuggestionID); err != nil {
			return fmt.Errorf("failed to dismiss suggestion: %w", err)
		}
	}

	if req.Type != "" {
		query := `
			UPDATE user_profiles
			SET dismissed_suggestion_types = array_append(dismissed_suggestion_types, $2)
			WHERE user_id = $1 AND NOT ($2 = ANY(dismissed_suggestion_types))
		`
		if _, err := s.db.Exec(ctx, query, userID, req.Type); err != nil {
			return fmt.Errorf("failed to dismiss suggestion type: %w", err)
		}
	}
	return nil
}
