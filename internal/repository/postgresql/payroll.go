package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
	"github.com/paydesk/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

const recordColumns = `
	pr.id, pr.employee_id, pr.period_month, pr.period_year,
	pr.basic, pr.hra, pr.da, pr.special_allowance, pr.other_allowances, pr.gross,
	pr.pf, pr.professional_tax, pr.esi, pr.total_deductions, pr.net_salary,
	pr.adjustments, pr.status, pr.payslip_generated, pr.payslip_path,
	pr.notification_sent, pr.paid_at, pr.paid_by, pr.created_at, pr.updated_at
`

func scanRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var adjustmentsBytes []byte

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.Earnings.Basic, &rec.Earnings.HRA, &rec.Earnings.DA,
		&rec.Earnings.SpecialAllowance, &rec.Earnings.OtherAllowances, &rec.Earnings.Gross,
		&rec.Deductions.PF, &rec.Deductions.ProfessionalTax, &rec.Deductions.ESI,
		&rec.Deductions.Total, &rec.NetSalary,
		&adjustmentsBytes, &rec.Status, &rec.PayslipGenerated, &rec.PayslipPath,
		&rec.NotificationSent, &rec.PaidAt, &rec.PaidBy, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	_ = json.Unmarshal(adjustmentsBytes, &rec.Adjustments)

	return rec, nil
}

// ========== RECORDS ==========

func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	adjustmentsJSON, _ := json.Marshal(record.Adjustments)
	if record.Adjustments == nil {
		adjustmentsJSON = []byte("[]")
	}

	query := `
		INSERT INTO payroll_records (
			employee_id, period_month, period_year,
			basic, hra, da, special_allowance, other_allowances, gross,
			pf, professional_tax, esi, total_deductions, net_salary,
			adjustments, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + strings.ReplaceAll(recordColumns, "pr.", "")

	rec, err := scanRecord(q.QueryRow(ctx, query,
		record.EmployeeID, record.PeriodMonth, record.PeriodYear,
		record.Earnings.Basic, record.Earnings.HRA, record.Earnings.DA,
		record.Earnings.SpecialAllowance, record.Earnings.OtherAllowances, record.Earnings.Gross,
		record.Deductions.PF, record.Deductions.ProfessionalTax, record.Deductions.ESI,
		record.Deductions.Total, record.NetSalary,
		adjustmentsJSON, record.Status,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_period") {
			return payroll.PayrollRecord{}, payroll.ErrRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `,
			e.full_name AS employee_name, e.employee_code, e.email AS employee_email
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1
	`

	var rec payroll.PayrollRecord
	var adjustmentsBytes []byte
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.Earnings.Basic, &rec.Earnings.HRA, &rec.Earnings.DA,
		&rec.Earnings.SpecialAllowance, &rec.Earnings.OtherAllowances, &rec.Earnings.Gross,
		&rec.Deductions.PF, &rec.Deductions.ProfessionalTax, &rec.Deductions.ESI,
		&rec.Deductions.Total, &rec.NetSalary,
		&adjustmentsBytes, &rec.Status, &rec.PayslipGenerated, &rec.PayslipPath,
		&rec.NotificationSent, &rec.PaidAt, &rec.PaidBy, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode, &rec.EmployeeEmail,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	_ = json.Unmarshal(adjustmentsBytes, &rec.Adjustments)

	return rec, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records pr
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Count query
	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	// Sort
	sortColumn := "pr.created_at"
	if filter.SortBy != "" {
		allowedColumns := map[string]string{
			"created_at":    "pr.created_at",
			"period":        "pr.period_year DESC, pr.period_month",
			"employee_name": "e.full_name",
			"net_salary":    "pr.net_salary",
		}
		if col, ok := allowedColumns[filter.SortBy]; ok {
			sortColumn = col
		}
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT `+recordColumns+`,
			e.full_name AS employee_name, e.employee_code, e.email AS employee_email
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseQuery, sortColumn, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		var rec payroll.PayrollRecord
		var adjustmentsBytes []byte
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear,
			&rec.Earnings.Basic, &rec.Earnings.HRA, &rec.Earnings.DA,
			&rec.Earnings.SpecialAllowance, &rec.Earnings.OtherAllowances, &rec.Earnings.Gross,
			&rec.Deductions.PF, &rec.Deductions.ProfessionalTax, &rec.Deductions.ESI,
			&rec.Deductions.Total, &rec.NetSalary,
			&adjustmentsBytes, &rec.Status, &rec.PayslipGenerated, &rec.PayslipPath,
			&rec.NotificationSent, &rec.PaidAt, &rec.PaidBy, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.EmployeeCode, &rec.EmployeeEmail,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		_ = json.Unmarshal(adjustmentsBytes, &rec.Adjustments)
		records = append(records, rec)
	}

	return records, totalCount, nil
}

func (r *payrollRepository) ListByPeriodStatus(ctx context.Context, month, year int, status payroll.Status) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `,
			e.full_name AS employee_name, e.employee_code, e.email AS employee_email
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.period_month = $1 AND pr.period_year = $2 AND pr.status = $3
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, month, year, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records for period: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		var rec payroll.PayrollRecord
		var adjustmentsBytes []byte
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear,
			&rec.Earnings.Basic, &rec.Earnings.HRA, &rec.Earnings.DA,
			&rec.Earnings.SpecialAllowance, &rec.Earnings.OtherAllowances, &rec.Earnings.Gross,
			&rec.Deductions.PF, &rec.Deductions.ProfessionalTax, &rec.Deductions.ESI,
			&rec.Deductions.Total, &rec.NetSalary,
			&adjustmentsBytes, &rec.Status, &rec.PayslipGenerated, &rec.PayslipPath,
			&rec.NotificationSent, &rec.PaidAt, &rec.PaidBy, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.EmployeeCode, &rec.EmployeeEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		_ = json.Unmarshal(adjustmentsBytes, &rec.Adjustments)
		records = append(records, rec)
	}

	return records, nil
}

// ========== MUTATIONS ==========

// checkExists maps a zero-rows conditional update to the right error: the
// record either disappeared or lost the compare-and-set race.
func (r *payrollRepository) checkExists(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var current string
	err := q.QueryRow(ctx, `SELECT status FROM payroll_records WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrRecordNotFound
		}
		return fmt.Errorf("failed to check payroll record: %w", err)
	}
	return payroll.ErrConcurrencyConflict
}

func (r *payrollRepository) UpdateAdjustments(ctx context.Context, id string, adjustments []payroll.Adjustment, earnings payroll.Earnings, deductions payroll.Deductions, netSalary decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	adjustmentsJSON, _ := json.Marshal(adjustments)

	query := `
		UPDATE payroll_records
		SET adjustments = $1, gross = $2, total_deductions = $3, net_salary = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
	`

	tag, err := q.Exec(ctx, query, adjustmentsJSON, earnings.Gross, deductions.Total, netSalary, id, payroll.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to update payroll adjustments: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.checkExists(ctx, id)
	}

	return nil
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, from, to payroll.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	tag, err := q.Exec(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update payroll status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.checkExists(ctx, id)
	}

	return nil
}

func (r *payrollRepository) MarkPaid(ctx context.Context, id string, paidBy *string) (time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $1, paid_at = NOW(), paid_by = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING paid_at
	`

	var paidAt time.Time
	err := q.QueryRow(ctx, query, payroll.StatusPaid, paidBy, id, payroll.StatusApproved).Scan(&paidAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return time.Time{}, r.checkExists(ctx, id)
		}
		return time.Time{}, fmt.Errorf("failed to mark payroll record paid: %w", err)
	}

	return paidAt, nil
}

func (r *payrollRepository) SetPayslipGenerated(ctx context.Context, id string, path string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET payslip_generated = TRUE, payslip_path = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, path, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrRecordNotFound
		}
		return fmt.Errorf("failed to flag payslip generated: %w", err)
	}

	return nil
}

func (r *payrollRepository) SetNotificationSent(ctx context.Context, id string, sent bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET notification_sent = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, sent, id).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrRecordNotFound
		}
		return fmt.Errorf("failed to flag notification sent: %w", err)
	}

	return nil
}

// ========== AGGREGATIONS ==========

func (r *payrollRepository) GetSummary(ctx context.Context, month, year int) (payroll.SummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total_employees,
			COALESCE(SUM(gross), 0) AS total_gross,
			COALESCE(SUM(total_deductions), 0) AS total_deduction,
			COALESCE(SUM(net_salary), 0) AS total_net,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending_count,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved_count,
			COUNT(*) FILTER (WHERE status = 'paid') AS paid_count,
			COUNT(*) FILTER (WHERE status = 'failed') AS failed_count,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled_count
		FROM payroll_records
		WHERE period_month = $1 AND period_year = $2
	`

	var summary payroll.SummaryResponse
	err := q.QueryRow(ctx, query, month, year).Scan(
		&summary.TotalEmployees, &summary.TotalGross, &summary.TotalDeduction, &summary.TotalNet,
		&summary.PendingCount, &summary.ApprovedCount, &summary.PaidCount,
		&summary.FailedCount, &summary.CancelledCount,
	)
	if err != nil {
		return payroll.SummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	summary.PeriodMonth = month
	summary.PeriodYear = year

	return summary, nil
}
