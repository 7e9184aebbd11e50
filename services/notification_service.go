package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kindledAPI/internal/types/notification"
)

// PushProvider delivers a push to a set of device tokens. FCM in
// production; tests inject a fake.
type PushProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]string) error
}

type NotificationService struct {
	db   *pgxpool.Pool
	push PushProvider
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) SetPushProvider(p PushProvider) {
	s.push = p
}

// Notify persists a notification row and pushes it to the user's
// devices. Push is best effort and never fails the caller; engine
// results don't depend on delivery.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, notifType notification.NotificationType, title, message string) {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, false, NOW())
	`
	if _, err := s.db.Exec(ctx, query, uuid.New(), userID, notifType, title, message); err != nil {
		log.Printf("Notify: failed to persist notification for user %s: %v", userID, err)
		return
	}

	if s.push == nil {
		return
	}
	tokens, err := s.deviceTokens(ctx, userID)
	if err != nil {
		log.Printf("Notify: failed to load device tokens for user %s: %v", userID, err)
		return
	}
	if err := s.push.SendPush(ctx, tokens, title, message, map[string]string{"type": string(notifType)}); err != nil {
		log.Printf("Notify: push failed for user %s: %v", userID, err)
	}
}

// NotifyGroup fans a notification out to every member of a group.
func (s *NotificationService) NotifyGroup(ctx context.Context, groupID uuid.UUID, notifType notification.NotificationType, title, message string) {
	query := `SELECT user_id FROM group_members WHERE group_id = $1`
	rows, err := s.db.Query(ctx, query, groupID)
	if err != nil {
		log.Printf("NotifyGroup: failed to list members of group %s: %v", groupID, err)
		return
	}
	defer rows.Close()

	var members []uuid.UUID
	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			log.Printf("NotifyGroup: failed to scan member of group %s: %v", groupID, err)
			return
		}
		members = append(members, userID)
	}

	for _, userID := range members {
		s.Notify(ctx, userID, notifType, title, message)
	}
}

// RegisterDeviceByClerkID is the HTTP-facing wrapper around
// RegisterDevice.
func (s *NotificationService) RegisterDeviceByClerkID(ctx context.Context, clerkID, token, platform string) error {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}
	return s.RegisterDevice(ctx, userID, token, platform)
}

// GetNotificationsByClerkID returns the caller's latest notifications.
func (s *NotificationService) GetNotificationsByClerkID(ctx context.Context, clerkID string) ([]notification.Notification, error) {
	userID, err := resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}
	return s.GetNotifications(ctx, userID)
}

func (s *NotificationService) RegisterDevice(ctx context.Context, userID uuid.UUID, token, platform string) error {
	if token == "" {
		return fmt.Errorf("device token required: %w", ErrInvalidInput)
	}

	query := `
		INSERT INTO device_tokens (user_id, token, platform, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (token)
		DO UPDATE SET user_id = $1, platform = $3
	`
	if _, err := s.db.Exec(ctx, query, userID, token, platform); err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}

func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 50
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	defer rows.Close()

	var notifs []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

func (s *NotificationService) deviceTokens(ctx context.Context, userID uuid.UUID) ([]notification.DeviceToken, error) {
	query := `SELECT user_id, token, platform FROM device_tokens WHERE user_id = $1`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.UserID, &t.Token, &t.Platform); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}
