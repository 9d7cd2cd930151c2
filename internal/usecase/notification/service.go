package notification

import (
	"context"
	"log"

	notificationDomain "finvault-backend/internal/domain/notification"
	"finvault-backend/pkg/id"
)

// Service persists user notifications. It satisfies notification.Dispatcher:
// delivery is best effort, a failed write is logged and swallowed so the
// ledger mutation that triggered it is never rolled back.
type Service struct {
	repo notificationDomain.Repository
}

func NewService(repo notificationDomain.Repository) *Service { return &Service{repo: repo} }

func (s *Service) Notify(ctx context.Context, userID, title, message string) {
	n := &notificationDomain.Notification{
		NotificationID: id.NewID32(),
		UserID:         userID,
		Title:          title,
		Message:        message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("notification: create for user %s: %v", userID, err)
	}
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]notificationDomain.Notification, error) {
	return s.repo.ListByUserID(ctx, userID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, notificationID string) error {
	return s.repo.MarkRead(ctx, notificationID)
}
