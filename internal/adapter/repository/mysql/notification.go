package mysql

import (
	"context"

	notificationDomain "finvault-backend/internal/domain/notification"

	"gorm.io/gorm"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notificationDomain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]notificationDomain.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []notificationDomain.Notification
	err := q.Offset(offset).Order("id DESC").Find(&out).Error
	return out, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID string) error {
	return r.db.WithContext(ctx).
		Model(&notificationDomain.Notification{}).
		Where("notification_id = ?", notificationID).
		Update("read", true).Error
}
