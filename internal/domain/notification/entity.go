package notification

import "time"

type Notification struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
