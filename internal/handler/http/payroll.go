package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
	"github.com/paydesk/payroll-backend-go/internal/handler/http/middleware"
	"github.com/paydesk/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Batch processing
	ProcessMonth(w http.ResponseWriter, r *http.Request)

	// Records
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)

	// Adjustments
	AddAdjustment(w http.ResponseWriter, r *http.Request)

	// Transitions
	Approve(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
	Pay(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)

	// Bulk transitions
	BulkApprove(w http.ResponseWriter, r *http.Request)
	BulkRevoke(w http.ResponseWriter, r *http.Request)
	BulkPay(w http.ResponseWriter, r *http.Request)

	// Side effects
	ResendPayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== BATCH PROCESSING ==========

func (h *payrollHandlerImpl) ProcessMonth(w http.ResponseWriter, r *http.Request) {
	var req payroll.PeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.ProcessMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll batch processed", result)
}

// ========== RECORDS ==========

func (h *payrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")

	result, err := h.payrollService.GetRecord(r.Context(), recordID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)

	result, err := h.payrollService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int(result.TotalCount) / result.Limit
	if int(result.TotalCount)%result.Limit > 0 {
		totalPages++
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

func (h *payrollHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	result, err := h.payrollService.GetSummary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseFilter(r *http.Request) payroll.Filter {
	query := r.URL.Query()
	filter := payroll.Filter{
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
	}

	if v, err := strconv.Atoi(query.Get("month")); err == nil {
		filter.PeriodMonth = &v
	}
	if v, err := strconv.Atoi(query.Get("year")); err == nil {
		filter.PeriodYear = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := query.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v, err := strconv.Atoi(query.Get("page")); err == nil {
		filter.Page = v
	}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = v
	}

	return filter
}

// ========== ADJUSTMENTS ==========

func (h *payrollHandlerImpl) AddAdjustment(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")

	var req payroll.AddAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.AddAdjustment(r.Context(), recordID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment added", result)
}

// ========== TRANSITIONS ==========

func (h *payrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")

	result, err := h.payrollService.Approve(r.Context(), recordID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record approved", result)
}

func (h *payrollHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")

	result, err := h.payrollService.Revoke(r.Context(), recordID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll approval revoked", result)
}

func (h *payrollHandlerImpl) Pay(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")

	result, err := h.payrollService.Pay(r.Context(), recordID, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary paid", result)
}

func (h *payrollHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")

	result, err := h.payrollService.Cancel(r.Context(), recordID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record cancelled", result)
}

// ========== BULK TRANSITIONS ==========

func (h *payrollHandlerImpl) BulkApprove(w http.ResponseWriter, r *http.Request) {
	var req payroll.PeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.BulkApprove(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk approve finished", result)
}

func (h *payrollHandlerImpl) BulkRevoke(w http.ResponseWriter, r *http.Request) {
	var req payroll.PeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.BulkRevoke(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk revoke finished", result)
}

func (h *payrollHandlerImpl) BulkPay(w http.ResponseWriter, r *http.Request) {
	var req payroll.PeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.BulkPay(r.Context(), req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk pay finished", result)
}

// ========== SIDE EFFECTS ==========

func (h *payrollHandlerImpl) ResendPayslip(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")

	if err := h.payrollService.ResendPayslipEmail(r.Context(), recordID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip email sent", nil)
}
