package payroll

import "errors"

var (
	ErrRecordNotFound         = errors.New("payroll record not found")
	ErrRecordAlreadyExists    = errors.New("payroll record already exists for this period")
	ErrRecordNotPending       = errors.New("payroll record is not pending")
	ErrIllegalTransition      = errors.New("illegal payroll status transition")
	ErrConcurrencyConflict    = errors.New("payroll record was modified concurrently")
	ErrInvalidAdjustment      = errors.New("adjustment type or amount is invalid")
	ErrInvalidSalaryStructure = errors.New("salary structure is missing basic or has negative components")
	ErrInvalidPeriod          = errors.New("invalid payroll period")
	ErrDisbursementFailed     = errors.New("salary disbursement failed")
)
