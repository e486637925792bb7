package employee

import "context"

// Repository is the employee directory as consumed by payroll.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
