package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines data access for payroll records. Every status mutation
// is a compare-and-set on the expected source status: when the row no longer
// matches, the method returns ErrConcurrencyConflict (or ErrRecordNotFound
// when the row is gone) instead of silently overwriting.
type Repository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecord, error)
	List(ctx context.Context, filter Filter) ([]PayrollRecord, int64, error)
	// ListByPeriodStatus returns every record of the period currently in the
	// given status; bulk operations visit this snapshot exactly once.
	ListByPeriodStatus(ctx context.Context, month, year int, status Status) ([]PayrollRecord, error)

	// UpdateAdjustments persists the full ledger plus the recomputed amounts,
	// conditional on the record still being pending.
	UpdateAdjustments(ctx context.Context, id string, adjustments []Adjustment, earnings Earnings, deductions Deductions, netSalary decimal.Decimal) error

	// UpdateStatus moves the record from one status to another atomically.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
	// MarkPaid is UpdateStatus(approved -> paid) that also stamps paid_at/paid_by.
	MarkPaid(ctx context.Context, id string, paidBy *string) (time.Time, error)

	// Side-effect flags, independent of status.
	SetPayslipGenerated(ctx context.Context, id string, path string) error
	SetNotificationSent(ctx context.Context, id string, sent bool) error

	GetSummary(ctx context.Context, month, year int) (SummaryResponse, error)
}
