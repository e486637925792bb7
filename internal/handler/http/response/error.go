package response

import (
	"errors"
	"net/http"

	"github.com/paydesk/payroll-backend-go/internal/domain/employee"
	"github.com/paydesk/payroll-backend-go/internal/domain/notification"
	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
	"github.com/paydesk/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrRecordNotPending):
		Conflict(w, "Payroll record is no longer pending")
	case errors.Is(err, payroll.ErrIllegalTransition):
		Conflict(w, "Payroll record status does not allow this operation")
	case errors.Is(err, payroll.ErrConcurrencyConflict):
		Conflict(w, "Payroll record was modified concurrently, retry the operation")
	case errors.Is(err, payroll.ErrInvalidAdjustment):
		BadRequest(w, "Adjustment type or amount is invalid", nil)
	case errors.Is(err, payroll.ErrInvalidSalaryStructure):
		BadRequest(w, "Employee salary structure is invalid", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrDisbursementFailed):
		BadRequest(w, "Salary disbursement failed, record moved to failed", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
