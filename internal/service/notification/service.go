package notification

import (
	"context"
	"fmt"

	"github.com/paydesk/payroll-backend-go/internal/domain/notification"
)

type service struct {
	repo notification.Repository
}

func NewService(repo notification.Repository) notification.Service {
	return &service{repo: repo}
}

func (s *service) Notify(ctx context.Context, employeeID, title, message string) error {
	_, err := s.repo.Create(ctx, notification.Notification{
		EmployeeID: employeeID,
		Title:      title,
		Message:    message,
	})
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (s *service) List(ctx context.Context, employeeID string, unreadOnly bool) ([]notification.Notification, error) {
	return s.repo.ListByEmployee(ctx, employeeID, unreadOnly)
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}
