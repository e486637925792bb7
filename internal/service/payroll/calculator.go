package payroll

import (
	"github.com/paydesk/payroll-backend-go/internal/domain/employee"
	"github.com/paydesk/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// DeductionPolicy computes statutory deductions from a gross earnings
// breakdown. Swapping the policy changes every calculation uniformly.
type DeductionPolicy func(earnings payroll.Earnings) payroll.Deductions

var (
	pfRate  = decimal.NewFromFloat(0.12)
	esiRate = decimal.NewFromFloat(0.0075)

	esiGrossCeiling = decimal.NewFromInt(21000)

	ptLowerSlab = decimal.NewFromInt(15000)
	ptUpperSlab = decimal.NewFromInt(20000)
	ptLowerTax  = decimal.NewFromInt(150)
	ptUpperTax  = decimal.NewFromInt(200)
)

// DefaultStatutoryPolicy applies the standard monthly deductions:
// provident fund at 12% of basic, a slab-based professional tax, and
// employee state insurance at 0.75% of gross for employees under the
// gross ceiling.
func DefaultStatutoryPolicy(earnings payroll.Earnings) payroll.Deductions {
	var d payroll.Deductions

	d.PF = earnings.Basic.Mul(pfRate).Round(2)

	switch {
	case earnings.Gross.LessThanOrEqual(ptLowerSlab):
		d.ProfessionalTax = decimal.Zero
	case earnings.Gross.LessThanOrEqual(ptUpperSlab):
		d.ProfessionalTax = ptLowerTax
	default:
		d.ProfessionalTax = ptUpperTax
	}

	if earnings.Gross.LessThanOrEqual(esiGrossCeiling) {
		d.ESI = earnings.Gross.Mul(esiRate).Round(2)
	} else {
		d.ESI = decimal.Zero
	}

	d.Total = d.PF.Add(d.ProfessionalTax).Add(d.ESI)

	return d
}

// Calculate builds the earnings breakdown, statutory deductions and net
// salary for one employee's salary structure. It touches no shared state
// and performs no I/O; the same structure always yields the same result.
func Calculate(salary employee.SalaryStructure, policy DeductionPolicy) (payroll.Earnings, payroll.Deductions, decimal.Decimal, error) {
	if salary.Basic.IsNegative() || salary.HRA.IsNegative() || salary.DA.IsNegative() ||
		salary.SpecialAllowance.IsNegative() || salary.OtherAllowances.IsNegative() {
		return payroll.Earnings{}, payroll.Deductions{}, decimal.Zero, payroll.ErrInvalidSalaryStructure
	}
	if salary.Basic.IsZero() {
		return payroll.Earnings{}, payroll.Deductions{}, decimal.Zero, payroll.ErrInvalidSalaryStructure
	}

	earnings := payroll.Earnings{
		Basic:            salary.Basic,
		HRA:              salary.HRA,
		DA:               salary.DA,
		SpecialAllowance: salary.SpecialAllowance,
		OtherAllowances:  salary.OtherAllowances,
	}
	earnings.Gross = earnings.Basic.
		Add(earnings.HRA).
		Add(earnings.DA).
		Add(earnings.SpecialAllowance).
		Add(earnings.OtherAllowances)

	deductions := policy(earnings)

	net := earnings.Gross.Sub(deductions.Total)

	return earnings, deductions, net, nil
}
