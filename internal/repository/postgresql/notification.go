package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/paydesk/payroll-backend-go/internal/domain/notification"
	"github.com/paydesk/payroll-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (employee_id, title, message)
		VALUES ($1, $2, $3)
		RETURNING id, employee_id, title, message, is_read, created_at
	`

	var created notification.Notification
	err := q.QueryRow(ctx, query, n.EmployeeID, n.Title, n.Message).Scan(
		&created.ID, &created.EmployeeID, &created.Title, &created.Message,
		&created.IsRead, &created.CreatedAt,
	)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return created, nil
}

func (r *notificationRepository) ListByEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, title, message, is_read, created_at
		FROM notifications
		WHERE employee_id = $1
	`
	if unreadOnly {
		query += " AND is_read = FALSE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.EmployeeID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return notification.ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	return nil
}
