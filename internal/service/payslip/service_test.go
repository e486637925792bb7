package payslip

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/paydesk/payroll-backend-go/internal/domain/employee"
	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
	"github.com/paydesk/payroll-backend-go/internal/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator(t *testing.T) (Generator, storage.FileStorage) {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/files")
	require.NoError(t, err)

	gen, err := NewGenerator(store)
	require.NoError(t, err)

	return gen, store
}

func TestGenerateStoresRenderedPayslip(t *testing.T) {
	t.Parallel()

	gen, store := testGenerator(t)

	rec := payroll.PayrollRecord{
		ID:          "rec-1",
		PeriodMonth: 3,
		PeriodYear:  2026,
		Earnings: payroll.Earnings{
			Basic: decimal.NewFromInt(30000),
			HRA:   decimal.NewFromInt(12000),
			Gross: decimal.NewFromInt(42000),
		},
		Deductions: payroll.Deductions{
			PF:    decimal.NewFromInt(3600),
			Total: decimal.NewFromInt(3600),
		},
		NetSalary: decimal.NewFromInt(38400),
		Adjustments: []payroll.Adjustment{
			{Type: payroll.AdjustmentBonus, Description: "Festival bonus", Amount: decimal.NewFromInt(1000)},
		},
	}
	emp := employee.Employee{
		FullName:     "Asha Verma",
		EmployeeCode: "1024-0007",
	}

	path, err := gen.Generate(context.Background(), rec, emp)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "payslips/2026/03/"), "path = %s", path)

	f, err := store.Download(context.Background(), path)
	require.NoError(t, err)
	defer f.Close()

	body, err := io.ReadAll(f)
	require.NoError(t, err)

	html := string(body)
	assert.Contains(t, html, "Asha Verma")
	assert.Contains(t, html, "1024-0007")
	assert.Contains(t, html, "March 2026")
	assert.Contains(t, html, "Festival bonus")
	assert.Contains(t, html, "38400.00")
}

func TestGenerateUsesUniquePaths(t *testing.T) {
	t.Parallel()

	gen, _ := testGenerator(t)

	rec := payroll.PayrollRecord{ID: "rec-1", PeriodMonth: 1, PeriodYear: 2026}
	emp := employee.Employee{FullName: "A", EmployeeCode: "1024-0001"}

	first, err := gen.Generate(context.Background(), rec, emp)
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), rec, emp)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestURL(t *testing.T) {
	t.Parallel()

	gen, _ := testGenerator(t)

	url, err := gen.URL(context.Background(), "payslips/2026/03/doc.html")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/payslips/2026/03/doc.html", url)
}
