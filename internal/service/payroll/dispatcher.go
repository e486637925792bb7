package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paydesk/payroll-backend-go/internal/domain/employee"
	"github.com/paydesk/payroll-backend-go/internal/domain/notification"
	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
	"github.com/paydesk/payroll-backend-go/internal/pkg/email"
	"github.com/paydesk/payroll-backend-go/internal/service/payslip"
)

// SideEffectDispatcher runs the post-payment side effects: payslip document
// generation, payslip email and in-app notification. Each effect tracks its
// own flag on the record; a failure in one never blocks the others and never
// touches the payment status.
type SideEffectDispatcher struct {
	repo          payroll.Repository
	employees     employee.Repository
	payslips      payslip.Generator
	email         email.EmailService
	notifications notification.Service
	logger        *slog.Logger
}

func NewSideEffectDispatcher(
	repo payroll.Repository,
	employees employee.Repository,
	payslips payslip.Generator,
	emailService email.EmailService,
	notifications notification.Service,
	logger *slog.Logger,
) *SideEffectDispatcher {
	return &SideEffectDispatcher{
		repo:          repo,
		employees:     employees,
		payslips:      payslips,
		email:         emailService,
		notifications: notifications,
		logger:        logger,
	}
}

// Dispatch runs every still-pending side effect for a paid record. Failures
// are logged and left for a later retry; the record stays paid regardless.
func (d *SideEffectDispatcher) Dispatch(ctx context.Context, rec payroll.PayrollRecord) {
	emp, err := d.employees.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		d.logger.Warn("side effects skipped, employee lookup failed",
			slog.String("record_id", rec.ID),
			slog.String("employee_id", rec.EmployeeID),
			slog.String("error", err.Error()),
		)
		return
	}

	if !rec.PayslipGenerated {
		path, err := d.generatePayslip(ctx, &rec, emp)
		if err != nil {
			d.logger.Warn("payslip generation failed",
				slog.String("record_id", rec.ID),
				slog.String("error", err.Error()),
			)
		} else {
			d.sendPayslipEmail(ctx, rec, emp, path)
		}
	}

	if !rec.NotificationSent {
		if err := d.notify(ctx, rec, emp); err != nil {
			d.logger.Warn("payment notification failed",
				slog.String("record_id", rec.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// ResendEmail regenerates the payslip if it is missing, re-sends the payslip
// email, and retries the in-app notification when its flag is still unset.
// Safe to call repeatedly for the same record.
func (d *SideEffectDispatcher) ResendEmail(ctx context.Context, rec payroll.PayrollRecord) error {
	emp, err := d.employees.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to load employee for payslip email: %w", err)
	}

	var path string
	if rec.PayslipGenerated && rec.PayslipPath != nil {
		path = *rec.PayslipPath
	} else {
		path, err = d.generatePayslip(ctx, &rec, emp)
		if err != nil {
			return err
		}
	}

	url, err := d.payslips.URL(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to resolve payslip URL: %w", err)
	}

	period := payslip.PeriodLabel(rec.PeriodMonth, rec.PeriodYear)
	if err := d.email.SendPayslip(emp.Email, emp.FullName, period, rec.NetSalary.StringFixed(2), url); err != nil {
		return fmt.Errorf("failed to send payslip email: %w", err)
	}

	if !rec.NotificationSent {
		if err := d.notify(ctx, rec, emp); err != nil {
			d.logger.Warn("payment notification retry failed",
				slog.String("record_id", rec.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

func (d *SideEffectDispatcher) generatePayslip(ctx context.Context, rec *payroll.PayrollRecord, emp employee.Employee) (string, error) {
	path, err := d.payslips.Generate(ctx, *rec, emp)
	if err != nil {
		return "", err
	}

	if err := d.repo.SetPayslipGenerated(ctx, rec.ID, path); err != nil {
		return "", err
	}

	rec.PayslipGenerated = true
	rec.PayslipPath = &path
	return path, nil
}

func (d *SideEffectDispatcher) sendPayslipEmail(ctx context.Context, rec payroll.PayrollRecord, emp employee.Employee, path string) {
	url, err := d.payslips.URL(ctx, path)
	if err != nil {
		d.logger.Warn("payslip URL resolution failed",
			slog.String("record_id", rec.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	period := payslip.PeriodLabel(rec.PeriodMonth, rec.PeriodYear)
	if err := d.email.SendPayslip(emp.Email, emp.FullName, period, rec.NetSalary.StringFixed(2), url); err != nil {
		d.logger.Warn("payslip email failed",
			slog.String("record_id", rec.ID),
			slog.String("to", emp.Email),
			slog.String("error", err.Error()),
		)
	}
}

func (d *SideEffectDispatcher) notify(ctx context.Context, rec payroll.PayrollRecord, emp employee.Employee) error {
	period := payslip.PeriodLabel(rec.PeriodMonth, rec.PeriodYear)
	title := "Salary credited"
	message := fmt.Sprintf("Your salary of %s for %s has been paid.", rec.NetSalary.StringFixed(2), period)

	if err := d.notifications.Notify(ctx, emp.ID, title, message); err != nil {
		return err
	}

	return d.repo.SetNotificationSent(ctx, rec.ID, true)
}
