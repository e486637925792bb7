package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCanTransitionTo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPaid, false},
		{StatusPending, StatusFailed, false},
		{StatusApproved, StatusPending, true},
		{StatusApproved, StatusPaid, true},
		{StatusApproved, StatusFailed, true},
		{StatusApproved, StatusCancelled, true},
		{StatusPaid, StatusPending, false},
		{StatusPaid, StatusApproved, false},
		{StatusPaid, StatusCancelled, false},
		{StatusFailed, StatusApproved, false},
		{StatusFailed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusApproved, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestAdjustmentTypeAddsToEarnings(t *testing.T) {
	t.Parallel()

	assert.True(t, AdjustmentBonus.AddsToEarnings())
	assert.True(t, AdjustmentAllowance.AddsToEarnings())
	assert.True(t, AdjustmentReimbursement.AddsToEarnings())
	assert.False(t, AdjustmentPenalty.AddsToEarnings())
	assert.False(t, AdjustmentDeduction.AddsToEarnings())
	assert.False(t, AdjustmentRecovery.AddsToEarnings())
}

func testRecord() PayrollRecord {
	rec := PayrollRecord{
		Status: StatusPending,
		Earnings: Earnings{
			Basic:            decimal.NewFromInt(30000),
			HRA:              decimal.NewFromInt(12000),
			DA:               decimal.Zero,
			SpecialAllowance: decimal.NewFromInt(5000),
			OtherAllowances:  decimal.Zero,
		},
		Deductions: Deductions{
			PF:              decimal.NewFromInt(3600),
			ProfessionalTax: decimal.NewFromInt(200),
			ESI:             decimal.Zero,
		},
	}
	rec.Recompute()
	return rec
}

func TestRecompute(t *testing.T) {
	t.Parallel()

	rec := testRecord()

	assert.True(t, rec.Earnings.Gross.Equal(decimal.NewFromInt(47000)), "gross = %s", rec.Earnings.Gross)
	assert.True(t, rec.Deductions.Total.Equal(decimal.NewFromInt(3800)), "total = %s", rec.Deductions.Total)
	assert.True(t, rec.NetSalary.Equal(decimal.NewFromInt(43200)), "net = %s", rec.NetSalary)
}

func TestApplyAdjustmentBonusRaisesGross(t *testing.T) {
	t.Parallel()

	rec := testRecord()

	err := rec.ApplyAdjustment(Adjustment{
		Type:        AdjustmentBonus,
		Description: "Diwali bonus",
		Amount:      decimal.NewFromInt(2000),
	})
	require.NoError(t, err)

	assert.True(t, rec.Earnings.Gross.Equal(decimal.NewFromInt(49000)))
	assert.True(t, rec.Deductions.Total.Equal(decimal.NewFromInt(3800)))
	assert.True(t, rec.NetSalary.Equal(decimal.NewFromInt(45200)))
	assert.Len(t, rec.Adjustments, 1)
}

func TestApplyAdjustmentPenaltyRaisesDeductions(t *testing.T) {
	t.Parallel()

	rec := testRecord()

	err := rec.ApplyAdjustment(Adjustment{
		Type:        AdjustmentPenalty,
		Description: "Late attendance",
		Amount:      decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	assert.True(t, rec.Earnings.Gross.Equal(decimal.NewFromInt(47000)))
	assert.True(t, rec.Deductions.Total.Equal(decimal.NewFromInt(4300)))
	assert.True(t, rec.NetSalary.Equal(decimal.NewFromInt(42700)))
}

func TestApplyAdjustmentLedgerIsAppendOnly(t *testing.T) {
	t.Parallel()

	rec := testRecord()

	require.NoError(t, rec.ApplyAdjustment(Adjustment{Type: AdjustmentBonus, Description: "bonus", Amount: decimal.NewFromInt(1000)}))
	// A wrong entry is corrected by a compensating one, not by removal.
	require.NoError(t, rec.ApplyAdjustment(Adjustment{Type: AdjustmentRecovery, Description: "bonus entered in error", Amount: decimal.NewFromInt(1000)}))

	assert.Len(t, rec.Adjustments, 2)
	assert.True(t, rec.NetSalary.Equal(decimal.NewFromInt(43200)))
}

func TestApplyAdjustmentRejectsNonPending(t *testing.T) {
	t.Parallel()

	for _, status := range []Status{StatusApproved, StatusPaid, StatusFailed, StatusCancelled} {
		rec := testRecord()
		rec.Status = status

		err := rec.ApplyAdjustment(Adjustment{Type: AdjustmentBonus, Description: "bonus", Amount: decimal.NewFromInt(100)})
		assert.ErrorIs(t, err, ErrRecordNotPending, "status %s", status)
		assert.Empty(t, rec.Adjustments)
	}
}

func TestApplyAdjustmentRejectsInvalid(t *testing.T) {
	t.Parallel()

	rec := testRecord()

	err := rec.ApplyAdjustment(Adjustment{Type: "raise", Description: "unknown type", Amount: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, ErrInvalidAdjustment)

	err = rec.ApplyAdjustment(Adjustment{Type: AdjustmentBonus, Description: "zero", Amount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidAdjustment)

	err = rec.ApplyAdjustment(Adjustment{Type: AdjustmentBonus, Description: "negative", Amount: decimal.NewFromInt(-100)})
	assert.ErrorIs(t, err, ErrInvalidAdjustment)
}
