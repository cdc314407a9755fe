package repository

import (
	"context"
	"time"

	"github.com/jefanko/app-updates/internal/domain"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	*Table[domain.Notification]
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{Table: NewTable[domain.Notification](db)}
}

// ListForUser returns the notifications addressed to email, newest first
func (r *NotificationRepository) ListForUser(ctx context.Context, email string) ([]domain.Notification, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_email = ?", email))
}

// MarkAsRead flags a single notification as read
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	return r.Update(ctx, id, map[string]interface{}{"isRead": true})
}

// MarkAllAsRead flags every unread notification of the recipient as read
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_email = ? AND is_read = ?", email, false).
		Updates(map[string]interface{}{
			"is_read":    true,
			"updated_at": time.Now().UTC(),
		}).Error
}

// CountUnread returns how many notifications the recipient has not read
func (r *NotificationRepository) CountUnread(ctx context.Context, email string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_email = ? AND is_read = ?", email, false).
		Count(&count).Error
	return int(count), err
}
