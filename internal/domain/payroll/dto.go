package payroll

import (
	"github.com/paydesk/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD DTOs ==========

// PeriodRequest addresses all records of one month. It is the request body
// for batch processing and for every bulk transition.
type PeriodRequest struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2020 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== ADJUSTMENT DTOs ==========

type AddAdjustmentRequest struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

func (r *AddAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !AdjustmentType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of bonus, penalty, allowance, deduction, reimbursement, recovery"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== BATCH / BULK RESULT DTOs ==========

type BatchError struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// BatchResultResponse summarizes one ProcessMonth run. TotalErrors and Errors
// are always populated, even when zero, so callers can render partial-failure
// feedback.
type BatchResultResponse struct {
	PeriodMonth    int          `json:"period_month"`
	PeriodYear     int          `json:"period_year"`
	TotalProcessed int          `json:"total_processed"`
	TotalSkipped   int          `json:"total_skipped"`
	TotalErrors    int          `json:"total_errors"`
	Errors         []BatchError `json:"errors"`
}

type BulkFailure struct {
	RecordID string `json:"record_id"`
	Reason   string `json:"reason"`
}

type BulkResultResponse struct {
	Succeeded   []string      `json:"succeeded"`
	Failed      []BulkFailure `json:"failed"`
	TotalErrors int           `json:"total_errors"`
}

// ========== RECORD DTOs ==========

type RecordResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	EmployeeCode     string          `json:"employee_code"`
	PeriodMonth      int             `json:"period_month"`
	PeriodYear       int             `json:"period_year"`
	Earnings         Earnings        `json:"earnings"`
	Deductions       Deductions      `json:"deductions"`
	NetSalary        decimal.Decimal `json:"net_salary"`
	Adjustments      []Adjustment    `json:"adjustments"`
	Status           string          `json:"status"`
	PayslipGenerated bool            `json:"payslip_generated"`
	PayslipPath      *string         `json:"payslip_path,omitempty"`
	NotificationSent bool            `json:"notification_sent"`
	PaidAt           *string         `json:"paid_at,omitempty"`
}

type Filter struct {
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	Status      *string `json:"status,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
	SortBy      string  `json:"sort_by"`
	SortOrder   string  `json:"sort_order"`
}

type ListRecordsResponse struct {
	Data       []RecordResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

// ========== SUMMARY DTOs ==========

type SummaryResponse struct {
	PeriodMonth    int             `json:"period_month"`
	PeriodYear     int             `json:"period_year"`
	TotalEmployees int             `json:"total_employees"`
	TotalGross     decimal.Decimal `json:"total_gross"`
	TotalDeduction decimal.Decimal `json:"total_deduction"`
	TotalNet       decimal.Decimal `json:"total_net"`
	PendingCount   int             `json:"pending_count"`
	ApprovedCount  int             `json:"approved_count"`
	PaidCount      int             `json:"paid_count"`
	FailedCount    int             `json:"failed_count"`
	CancelledCount int             `json:"cancelled_count"`
}
