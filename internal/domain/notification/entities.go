package notification

import (
	"context"
	"time"
)

// Notification is a persisted user-facing message. Delivery is best effort and
// never gates the ledger mutation that produced it.
type Notification struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	NotificationID string    `gorm:"size:32;uniqueIndex:ux_notifications_notification_id" json:"notification_id"`
	UserID         string    `gorm:"size:32;index:idx_notifications_user" json:"user_id"`
	Title          string    `gorm:"size:128" json:"title"`
	Message        string    `gorm:"type:text" json:"message"`
	Read           bool      `gorm:"default:false" json:"read"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}

// Dispatcher is the fire-and-forget notification boundary the engines call.
type Dispatcher interface {
	Notify(ctx context.Context, userID, title, message string)
}
