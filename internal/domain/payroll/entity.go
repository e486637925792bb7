package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusPaid      Status = "paid"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// transitions lists the legal forward edges plus the single backward edge
// (approved -> pending via revoke). Paid, failed and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusCancelled},
	StatusApproved: {StatusPending, StatusPaid, StatusFailed, StatusCancelled},
}

// CanTransitionTo reports whether moving from s to target is a legal edge.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// AdjustmentType enum
type AdjustmentType string

const (
	AdjustmentBonus         AdjustmentType = "bonus"
	AdjustmentPenalty       AdjustmentType = "penalty"
	AdjustmentAllowance     AdjustmentType = "allowance"
	AdjustmentDeduction     AdjustmentType = "deduction"
	AdjustmentReimbursement AdjustmentType = "reimbursement"
	AdjustmentRecovery      AdjustmentType = "recovery"
)

func (t AdjustmentType) Valid() bool {
	switch t {
	case AdjustmentBonus, AdjustmentPenalty, AdjustmentAllowance,
		AdjustmentDeduction, AdjustmentReimbursement, AdjustmentRecovery:
		return true
	}
	return false
}

// AddsToEarnings reports whether the adjustment raises gross. The remaining
// types raise total deductions.
func (t AdjustmentType) AddsToEarnings() bool {
	switch t {
	case AdjustmentBonus, AdjustmentAllowance, AdjustmentReimbursement:
		return true
	}
	return false
}

// Adjustment - ad-hoc addition or deduction attached before finalization.
// The ledger is append-only; a correction is a compensating entry.
type Adjustment struct {
	Type        AdjustmentType  `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Earnings breakdown. Gross includes earning-side adjustments.
type Earnings struct {
	Basic            decimal.Decimal `json:"basic"`
	HRA              decimal.Decimal `json:"hra"`
	DA               decimal.Decimal `json:"da"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	OtherAllowances  decimal.Decimal `json:"other_allowances"`
	Gross            decimal.Decimal `json:"gross"`
}

// Deductions breakdown. Total includes deduction-side adjustments.
type Deductions struct {
	PF              decimal.Decimal `json:"pf"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	ESI             decimal.Decimal `json:"esi"`
	Total           decimal.Decimal `json:"total"`
}

// PayrollRecord - one employee's payroll for one period.
// Exactly one record exists per (employee_id, period_month, period_year).
type PayrollRecord struct {
	ID               string
	EmployeeID       string
	PeriodMonth      int
	PeriodYear       int
	Earnings         Earnings
	Deductions       Deductions
	NetSalary        decimal.Decimal
	Adjustments      []Adjustment
	Status           Status
	PayslipGenerated bool
	PayslipPath      *string
	NotificationSent bool
	PaidAt           *time.Time
	PaidBy           *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeCode  *string
	EmployeeEmail *string
}

// Recompute rebuilds gross, total deductions and net salary from the earnings
// components, the statutory deductions and the full adjustment ledger.
// Net is never carried stale across a mutation.
func (r *PayrollRecord) Recompute() {
	gross := r.Earnings.Basic.
		Add(r.Earnings.HRA).
		Add(r.Earnings.DA).
		Add(r.Earnings.SpecialAllowance).
		Add(r.Earnings.OtherAllowances)

	total := r.Deductions.PF.
		Add(r.Deductions.ProfessionalTax).
		Add(r.Deductions.ESI)

	for _, adj := range r.Adjustments {
		if adj.Type.AddsToEarnings() {
			gross = gross.Add(adj.Amount)
		} else {
			total = total.Add(adj.Amount)
		}
	}

	r.Earnings.Gross = gross
	r.Deductions.Total = total
	r.NetSalary = gross.Sub(total)
}

// ApplyAdjustment appends an adjustment and recomputes the derived amounts.
// The record must still be pending; the same gate is enforced again by the
// repository's conditional update at commit time.
func (r *PayrollRecord) ApplyAdjustment(adj Adjustment) error {
	if r.Status != StatusPending {
		return ErrRecordNotPending
	}
	if !adj.Type.Valid() || !adj.Amount.IsPositive() {
		return ErrInvalidAdjustment
	}

	r.Adjustments = append(r.Adjustments, adj)
	r.Recompute()
	return nil
}
