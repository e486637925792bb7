package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// DisbursementRequest describes one salary payout.
type DisbursementRequest struct {
	// ReferenceID doubles as the idempotency key; retrying the same payroll
	// record must not disburse twice.
	ReferenceID       string
	Amount            decimal.Decimal
	Currency          string
	ChannelCode       string
	AccountNumber     string
	AccountHolderName string
	Description       string
}

type DisbursementResponse struct {
	ID     string
	Status string // ACCEPTED, SUCCEEDED, FAILED, ...
}

// Gateway is the payment collaborator used by the pay transition. A returned
// error means the payment attempt failed and the record moves to failed.
type Gateway interface {
	Disburse(ctx context.Context, req DisbursementRequest) (*DisbursementResponse, error)
}

// APIError represents a gateway API error
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("payment gateway error [%d] %s: %s", e.StatusCode, e.ErrorCode, e.Message)
}
