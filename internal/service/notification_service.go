package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jefanko/app-updates/internal/domain"
	"go.uber.org/zap"
)

// ErrNotificationNotOwned is returned when trying to access a notification owned by another user
var ErrNotificationNotOwned = errors.New("notification does not belong to current user")

// NotificationService handles the signed-in user's notifications
type NotificationService struct {
	sync   *Sync
	logger *zap.Logger
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(sync *Sync, logger *zap.Logger) *NotificationService {
	return &NotificationService{sync: sync, logger: logger}
}

// List returns the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	user, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.sync.Store.Notifications.Filter(func(n domain.Notification) bool {
		return strings.EqualFold(n.UserEmail, user.Email)
	}), nil
}

// UnreadCount returns how many of the user's notifications are unread
func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	items, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range items {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

// MarkAsRead flags one notification as read
func (s *NotificationService) MarkAsRead(ctx context.Context, id string) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	n, ok := s.sync.Store.Notifications.Get(id)
	if !ok {
		return ErrNotFound
	}
	if !strings.EqualFold(n.UserEmail, user.Email) {
		return ErrPermissionDenied
	}
	if n.IsRead {
		return nil
	}

	err = s.sync.Notifications.Update(ctx, id, func(n domain.Notification) domain.Notification {
		n.IsRead = true
		return n
	}, map[string]interface{}{"isRead": true})
	return mutationError(err)
}

// MarkAllAsRead flags every unread notification of the user as read. On
// failure the previous list is restored.
func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	user, err := currentUser(ctx)
	if err != nil {
		return err
	}
	email := user.Email
	backend := s.sync.Backends().Notifications

	s.sync.Notifications.Batch(ctx, func(items []domain.Notification) []domain.Notification {
		for i := range items {
			if strings.EqualFold(items[i].UserEmail, email) {
				items[i].IsRead = true
			}
		}
		return items
	}, func(ctx context.Context) error {
		return backend.MarkAllAsRead(ctx, email)
	})

	s.logger.Info("notifications marked as read", zap.String("userEmail", email))
	return nil
}
