package payslip

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"
	"github.com/paydesk/payroll-backend-go/internal/domain/employee"
	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
	"github.com/paydesk/payroll-backend-go/internal/pkg/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

// Generator renders payslip documents and stores them.
type Generator interface {
	// Generate renders the payslip for a payroll record and uploads it,
	// returning the storage path.
	Generate(ctx context.Context, rec payroll.PayrollRecord, emp employee.Employee) (string, error)

	// URL resolves a stored payslip path to a downloadable URL.
	URL(ctx context.Context, path string) (string, error)
}

type generator struct {
	storage   storage.FileStorage
	templates *template.Template
}

func NewGenerator(fileStorage storage.FileStorage) (Generator, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse payslip templates: %w", err)
	}

	return &generator{
		storage:   fileStorage,
		templates: tmpl,
	}, nil
}

type payslipData struct {
	EmployeeName string
	EmployeeCode string
	Period       string
	Earnings     payroll.Earnings
	Deductions   payroll.Deductions
	Adjustments  []payroll.Adjustment
	NetSalary    string
	GeneratedAt  string
}

// PeriodLabel formats a payroll period for display, e.g. "January 2026".
func PeriodLabel(month, year int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}

func (g *generator) Generate(ctx context.Context, rec payroll.PayrollRecord, emp employee.Employee) (string, error) {
	data := payslipData{
		EmployeeName: emp.FullName,
		EmployeeCode: emp.EmployeeCode,
		Period:       PeriodLabel(rec.PeriodMonth, rec.PeriodYear),
		Earnings:     rec.Earnings,
		Deductions:   rec.Deductions,
		Adjustments:  rec.Adjustments,
		NetSalary:    rec.NetSalary.StringFixed(2),
		GeneratedAt:  time.Now().Format("2 January 2006"),
	}

	var body bytes.Buffer
	if err := g.templates.ExecuteTemplate(&body, "payslip.html", data); err != nil {
		return "", fmt.Errorf("failed to render payslip: %w", err)
	}

	path := fmt.Sprintf("payslips/%d/%02d/%s.html", rec.PeriodYear, rec.PeriodMonth, uuid.New().String())

	storedPath, err := g.storage.Upload(ctx, &body, path, "text/html")
	if err != nil {
		return "", fmt.Errorf("failed to store payslip: %w", err)
	}

	return storedPath, nil
}

func (g *generator) URL(ctx context.Context, path string) (string, error) {
	return g.storage.GetURL(ctx, path, 24*time.Hour)
}
