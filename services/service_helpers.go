package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Error taxonomy surfaced to handlers. Storage failures are wrapped
// with %w and reach the handler as-is (mapped to 503); these sentinels
// cover the validation and conflict cases.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotSteward         = errors.New("only a steward can do this")
	ErrChallengeNotActive = errors.New("challenge not active")
	ErrDuplicateChallenge = errors.New("an active challenge with this template already exists for overlapping weeks")
)

// resolveUserID maps a Clerk ID to the internal user UUID.
func resolveUserID(ctx context.Context, db *pgxpool.Pool, clerkID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return userID, nil
}

// isSteward checks membership role for a group. Used only at challenge
// creation time.
func isSteward(ctx context.Context, db *pgxpool.Pool, userID, groupID uuid.UUID) (bool, error) {
	var steward bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM group_members
			WHERE user_id = $1 AND group_id = $2 AND role = 'steward'
		)
	`
	if err := db.QueryRow(ctx, query, userID, groupID).Scan(&steward); err != nil {
		return false, fmt.Errorf("failed to check steward role: %w", err)
	}
	return steward, nil
}
