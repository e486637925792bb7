package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryStructure - fixed monthly components. Gross is derived, not stored.
type SalaryStructure struct {
	Basic            decimal.Decimal
	HRA              decimal.Decimal
	DA               decimal.Decimal
	SpecialAllowance decimal.Decimal
	OtherAllowances  decimal.Decimal
}

type Employee struct {
	ID                    string
	EmployeeCode          string
	FullName              string
	Email                 string
	BankName              string
	BankAccountHolderName *string
	BankAccountNumber     string
	Salary                SalaryStructure
	EmploymentStatus      EmploymentStatus
	HireDate              time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusInactive   EmploymentStatus = "inactive"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
)
