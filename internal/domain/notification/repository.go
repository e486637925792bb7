package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	ListByEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type Service interface {
	Notify(ctx context.Context, employeeID, title, message string) error
	List(ctx context.Context, employeeID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
}
