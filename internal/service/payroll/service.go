package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/paydesk/payroll-backend-go/internal/config"
	"github.com/paydesk/payroll-backend-go/internal/domain/employee"
	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
	"github.com/paydesk/payroll-backend-go/internal/pkg/payment"
	"github.com/paydesk/payroll-backend-go/internal/service/payslip"
	"golang.org/x/sync/errgroup"
)

// bulkWorkers bounds the concurrency of bulk transitions so a large period
// does not exhaust the database pool.
const bulkWorkers = 8

type service struct {
	repo       payroll.Repository
	employees  employee.Repository
	gateway    payment.Gateway
	dispatcher *SideEffectDispatcher
	policy     DeductionPolicy
	logger     *slog.Logger

	payoutChannel  string
	payoutCurrency string
}

func NewService(
	repo payroll.Repository,
	employees employee.Repository,
	gateway payment.Gateway,
	dispatcher *SideEffectDispatcher,
	policy DeductionPolicy,
	logger *slog.Logger,
	payoutCfg config.XenditConfig,
) payroll.Service {
	if policy == nil {
		policy = DefaultStatutoryPolicy
	}

	return &service{
		repo:           repo,
		employees:      employees,
		gateway:        gateway,
		dispatcher:     dispatcher,
		policy:         policy,
		logger:         logger,
		payoutChannel:  payoutCfg.ChannelCode,
		payoutCurrency: payoutCfg.Currency,
	}
}

// ========== BATCH PROCESSING ==========

// ProcessMonth creates a pending payroll record for every active employee
// that does not already have one for the period. A failing employee is
// reported and skipped; the rest of the batch continues.
func (s *service) ProcessMonth(ctx context.Context, req payroll.PeriodRequest) (payroll.BatchResultResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchResultResponse{}, err
	}

	activeEmployees, err := s.employees.ListActive(ctx)
	if err != nil {
		return payroll.BatchResultResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	result := payroll.BatchResultResponse{
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		Errors:      []payroll.BatchError{},
	}

	for _, emp := range activeEmployees {
		_, err := s.repo.GetByEmployeePeriod(ctx, emp.ID, req.PeriodMonth, req.PeriodYear)
		if err == nil {
			result.TotalSkipped++
			continue
		}
		if !errors.Is(err, payroll.ErrRecordNotFound) {
			result.Errors = append(result.Errors, payroll.BatchError{EmployeeID: emp.ID, Reason: err.Error()})
			continue
		}

		earnings, deductions, net, err := Calculate(emp.Salary, s.policy)
		if err != nil {
			result.Errors = append(result.Errors, payroll.BatchError{EmployeeID: emp.ID, Reason: err.Error()})
			continue
		}

		record := payroll.PayrollRecord{
			EmployeeID:  emp.ID,
			PeriodMonth: req.PeriodMonth,
			PeriodYear:  req.PeriodYear,
			Earnings:    earnings,
			Deductions:  deductions,
			NetSalary:   net,
			Status:      payroll.StatusPending,
		}

		if _, err := s.repo.Create(ctx, record); err != nil {
			if errors.Is(err, payroll.ErrRecordAlreadyExists) {
				result.TotalSkipped++
				continue
			}
			result.Errors = append(result.Errors, payroll.BatchError{EmployeeID: emp.ID, Reason: err.Error()})
			continue
		}

		result.TotalProcessed++
	}

	result.TotalErrors = len(result.Errors)

	s.logger.Info("payroll batch processed",
		slog.Int("period_month", req.PeriodMonth),
		slog.Int("period_year", req.PeriodYear),
		slog.Int("processed", result.TotalProcessed),
		slog.Int("skipped", result.TotalSkipped),
		slog.Int("errors", result.TotalErrors),
	)

	return result, nil
}

// ========== RECORDS ==========

func (s *service) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(rec), nil
}

func (s *service) ListRecords(ctx context.Context, filter payroll.Filter) (payroll.ListRecordsResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	records, totalCount, err := s.repo.List(ctx, filter)
	if err != nil {
		return payroll.ListRecordsResponse{}, err
	}

	data := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		data = append(data, mapToRecordResponse(rec))
	}

	return payroll.ListRecordsResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *service) GetSummary(ctx context.Context, month, year int) (payroll.SummaryResponse, error) {
	req := payroll.PeriodRequest{PeriodMonth: month, PeriodYear: year}
	if err := req.Validate(); err != nil {
		return payroll.SummaryResponse{}, payroll.ErrInvalidPeriod
	}
	return s.repo.GetSummary(ctx, month, year)
}

// ========== ADJUSTMENT LEDGER ==========

func (s *service) AddAdjustment(ctx context.Context, recordID string, req payroll.AddAdjustmentRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	adj := payroll.Adjustment{
		Type:        payroll.AdjustmentType(req.Type),
		Description: req.Description,
		Amount:      req.Amount,
	}

	for attempt := 0; ; attempt++ {
		rec, err := s.repo.GetByID(ctx, recordID)
		if err != nil {
			return payroll.RecordResponse{}, err
		}

		if err := rec.ApplyAdjustment(adj); err != nil {
			return payroll.RecordResponse{}, err
		}

		err = s.repo.UpdateAdjustments(ctx, recordID, rec.Adjustments, rec.Earnings, rec.Deductions, rec.NetSalary)
		if errors.Is(err, payroll.ErrConcurrencyConflict) && attempt == 0 {
			continue
		}
		if err != nil {
			return payroll.RecordResponse{}, err
		}

		return mapToRecordResponse(rec), nil
	}
}

// ========== SINGLE-RECORD TRANSITIONS ==========

// transition moves one record to the target status. A commit-time conflict
// is retried once against the re-read status; a second conflict surfaces.
func (s *service) transition(ctx context.Context, recordID string, to payroll.Status) (payroll.PayrollRecord, error) {
	for attempt := 0; ; attempt++ {
		rec, err := s.repo.GetByID(ctx, recordID)
		if err != nil {
			return payroll.PayrollRecord{}, err
		}

		if !rec.Status.CanTransitionTo(to) {
			return payroll.PayrollRecord{}, payroll.ErrIllegalTransition
		}

		err = s.repo.UpdateStatus(ctx, recordID, rec.Status, to)
		if errors.Is(err, payroll.ErrConcurrencyConflict) && attempt == 0 {
			continue
		}
		if err != nil {
			return payroll.PayrollRecord{}, err
		}

		rec.Status = to
		return rec, nil
	}
}

func (s *service) Approve(ctx context.Context, recordID string) (payroll.RecordResponse, error) {
	rec, err := s.transition(ctx, recordID, payroll.StatusApproved)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(rec), nil
}

func (s *service) Revoke(ctx context.Context, recordID string) (payroll.RecordResponse, error) {
	rec, err := s.transition(ctx, recordID, payroll.StatusPending)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(rec), nil
}

func (s *service) Cancel(ctx context.Context, recordID string) (payroll.RecordResponse, error) {
	rec, err := s.transition(ctx, recordID, payroll.StatusCancelled)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(rec), nil
}

// Pay disburses the net salary through the payment gateway and marks the
// record paid. A gateway failure moves the record to failed instead; the
// status change is never skipped on a payment error.
func (s *service) Pay(ctx context.Context, recordID string, paidBy *string) (payroll.RecordResponse, error) {
	rec, err := s.pay(ctx, recordID, paidBy)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return mapToRecordResponse(rec), nil
}

// pay disburses first and commits the paid status after. A concurrent status
// change between the two steps surfaces as a conflict with the money already
// sent; the record id doubles as the gateway idempotency key, so re-running
// the operation resolves to the original payout instead of paying twice.
func (s *service) pay(ctx context.Context, recordID string, paidBy *string) (payroll.PayrollRecord, error) {
	rec, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	if rec.Status != payroll.StatusApproved {
		return payroll.PayrollRecord{}, payroll.ErrIllegalTransition
	}

	emp, err := s.employees.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to load employee for disbursement: %w", err)
	}

	holderName := emp.FullName
	if emp.BankAccountHolderName != nil {
		holderName = *emp.BankAccountHolderName
	}

	_, err = s.gateway.Disburse(ctx, payment.DisbursementRequest{
		ReferenceID:       rec.ID,
		Amount:            rec.NetSalary,
		Currency:          s.payoutCurrency,
		ChannelCode:       s.payoutChannel,
		AccountNumber:     emp.BankAccountNumber,
		AccountHolderName: holderName,
		Description:       fmt.Sprintf("Salary %s - %s", payslip.PeriodLabel(rec.PeriodMonth, rec.PeriodYear), emp.EmployeeCode),
	})
	if err != nil {
		s.logger.Error("salary disbursement failed",
			slog.String("record_id", rec.ID),
			slog.String("employee_id", rec.EmployeeID),
			slog.String("error", err.Error()),
		)
		if ferr := s.repo.UpdateStatus(ctx, recordID, payroll.StatusApproved, payroll.StatusFailed); ferr != nil {
			s.logger.Error("failed to move record to failed",
				slog.String("record_id", rec.ID),
				slog.String("error", ferr.Error()),
			)
		}
		return payroll.PayrollRecord{}, fmt.Errorf("%w: %s", payroll.ErrDisbursementFailed, err.Error())
	}

	paidAt, err := s.repo.MarkPaid(ctx, recordID, paidBy)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	rec.Status = payroll.StatusPaid
	rec.PaidAt = &paidAt
	rec.PaidBy = paidBy

	s.dispatcher.Dispatch(ctx, rec)

	// Re-read so the response carries the side-effect flags.
	refreshed, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return rec, nil
	}
	return refreshed, nil
}

// ========== BULK TRANSITIONS ==========

func (s *service) BulkApprove(ctx context.Context, req payroll.PeriodRequest) (payroll.BulkResultResponse, error) {
	return s.bulkTransition(ctx, req, payroll.StatusPending, func(ctx context.Context, id string) error {
		_, err := s.transition(ctx, id, payroll.StatusApproved)
		return err
	})
}

func (s *service) BulkRevoke(ctx context.Context, req payroll.PeriodRequest) (payroll.BulkResultResponse, error) {
	return s.bulkTransition(ctx, req, payroll.StatusApproved, func(ctx context.Context, id string) error {
		_, err := s.transition(ctx, id, payroll.StatusPending)
		return err
	})
}

func (s *service) BulkPay(ctx context.Context, req payroll.PeriodRequest, paidBy *string) (payroll.BulkResultResponse, error) {
	return s.bulkTransition(ctx, req, payroll.StatusApproved, func(ctx context.Context, id string) error {
		_, err := s.pay(ctx, id, paidBy)
		return err
	})
}

// bulkTransition applies op to every record of the period currently in the
// source status. Per-record failures are collected, never aborting the rest.
func (s *service) bulkTransition(ctx context.Context, req payroll.PeriodRequest, from payroll.Status, op func(ctx context.Context, id string) error) (payroll.BulkResultResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkResultResponse{}, err
	}

	records, err := s.repo.ListByPeriodStatus(ctx, req.PeriodMonth, req.PeriodYear, from)
	if err != nil {
		return payroll.BulkResultResponse{}, err
	}

	result := payroll.BulkResultResponse{
		Succeeded: []string{},
		Failed:    []payroll.BulkFailure{},
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkWorkers)

	for _, rec := range records {
		id := rec.ID
		g.Go(func() error {
			if err := op(ctx, id); err != nil {
				mu.Lock()
				result.Failed = append(result.Failed, payroll.BulkFailure{RecordID: id, Reason: err.Error()})
				mu.Unlock()
				return nil
			}
			mu.Lock()
			result.Succeeded = append(result.Succeeded, id)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	result.TotalErrors = len(result.Failed)
	return result, nil
}

// ========== SIDE-EFFECT RETRY ==========

func (s *service) ResendPayslipEmail(ctx context.Context, recordID string) error {
	rec, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if rec.Status != payroll.StatusPaid {
		return payroll.ErrIllegalTransition
	}

	return s.dispatcher.ResendEmail(ctx, rec)
}

// ========== MAPPERS ==========

func mapToRecordResponse(rec payroll.PayrollRecord) payroll.RecordResponse {
	resp := payroll.RecordResponse{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		PeriodMonth:      rec.PeriodMonth,
		PeriodYear:       rec.PeriodYear,
		Earnings:         rec.Earnings,
		Deductions:       rec.Deductions,
		NetSalary:        rec.NetSalary,
		Adjustments:      rec.Adjustments,
		Status:           string(rec.Status),
		PayslipGenerated: rec.PayslipGenerated,
		PayslipPath:      rec.PayslipPath,
		NotificationSent: rec.NotificationSent,
	}

	if resp.Adjustments == nil {
		resp.Adjustments = []payroll.Adjustment{}
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	if rec.EmployeeCode != nil {
		resp.EmployeeCode = *rec.EmployeeCode
	}
	if rec.PaidAt != nil {
		formatted := rec.PaidAt.Format("2006-01-02T15:04:05Z07:00")
		resp.PaidAt = &formatted
	}

	return resp
}
