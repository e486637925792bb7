package payroll

import (
	"testing"

	"github.com/paydesk/payroll-backend-go/internal/domain/employee"
	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	salary := employee.SalaryStructure{
		Basic:            decimal.NewFromInt(30000),
		HRA:              decimal.NewFromInt(12000),
		DA:               decimal.Zero,
		SpecialAllowance: decimal.NewFromInt(5000),
		OtherAllowances:  decimal.Zero,
	}

	earnings, deductions, net, err := Calculate(salary, DefaultStatutoryPolicy)
	require.NoError(t, err)

	assert.True(t, earnings.Gross.Equal(decimal.NewFromInt(47000)), "gross = %s", earnings.Gross)
	assert.True(t, deductions.PF.Equal(decimal.NewFromInt(3600)), "pf = %s", deductions.PF)
	assert.True(t, deductions.ProfessionalTax.Equal(decimal.NewFromInt(200)), "pt = %s", deductions.ProfessionalTax)
	assert.True(t, deductions.ESI.IsZero(), "esi = %s", deductions.ESI)
	assert.True(t, deductions.Total.Equal(decimal.NewFromInt(3800)), "total = %s", deductions.Total)
	assert.True(t, net.Equal(decimal.NewFromInt(43200)), "net = %s", net)
}

func TestCalculateIsDeterministic(t *testing.T) {
	t.Parallel()

	salary := employee.SalaryStructure{
		Basic: decimal.NewFromInt(18000),
		HRA:   decimal.NewFromInt(2000),
	}

	_, _, first, err := Calculate(salary, DefaultStatutoryPolicy)
	require.NoError(t, err)
	_, _, second, err := Calculate(salary, DefaultStatutoryPolicy)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestCalculateESIBelowCeiling(t *testing.T) {
	t.Parallel()

	// Gross 20000 sits under the ESI ceiling, so ESI applies at 0.75%.
	salary := employee.SalaryStructure{
		Basic: decimal.NewFromInt(15000),
		HRA:   decimal.NewFromInt(5000),
	}

	earnings, deductions, _, err := Calculate(salary, DefaultStatutoryPolicy)
	require.NoError(t, err)

	assert.True(t, earnings.Gross.Equal(decimal.NewFromInt(20000)))
	assert.True(t, deductions.ESI.Equal(decimal.NewFromInt(150)), "esi = %s", deductions.ESI)
	assert.True(t, deductions.ProfessionalTax.Equal(decimal.NewFromInt(150)), "pt = %s", deductions.ProfessionalTax)
}

func TestCalculateProfessionalTaxSlabs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		basic int64
		want  int64
	}{
		{14000, 0},
		{15000, 0},
		{18000, 150},
		{20000, 150},
		{25000, 200},
	}

	for _, tc := range cases {
		salary := employee.SalaryStructure{Basic: decimal.NewFromInt(tc.basic)}
		_, deductions, _, err := Calculate(salary, DefaultStatutoryPolicy)
		require.NoError(t, err)
		assert.True(t, deductions.ProfessionalTax.Equal(decimal.NewFromInt(tc.want)),
			"basic %d: pt = %s", tc.basic, deductions.ProfessionalTax)
	}
}

func TestCalculateRejectsInvalidStructure(t *testing.T) {
	t.Parallel()

	_, _, _, err := Calculate(employee.SalaryStructure{}, DefaultStatutoryPolicy)
	assert.ErrorIs(t, err, payroll.ErrInvalidSalaryStructure)

	_, _, _, err = Calculate(employee.SalaryStructure{
		Basic: decimal.NewFromInt(10000),
		HRA:   decimal.NewFromInt(-500),
	}, DefaultStatutoryPolicy)
	assert.ErrorIs(t, err, payroll.ErrInvalidSalaryStructure)
}

func TestCalculateCustomPolicy(t *testing.T) {
	t.Parallel()

	flat := func(earnings payroll.Earnings) payroll.Deductions {
		d := payroll.Deductions{PF: decimal.NewFromInt(1000)}
		d.Total = d.PF
		return d
	}

	salary := employee.SalaryStructure{Basic: decimal.NewFromInt(50000)}
	_, deductions, net, err := Calculate(salary, flat)
	require.NoError(t, err)

	assert.True(t, deductions.Total.Equal(decimal.NewFromInt(1000)))
	assert.True(t, net.Equal(decimal.NewFromInt(49000)))
}
