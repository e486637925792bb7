package payroll

import "context"

// Service is the payroll workflow consumed by the HTTP layer.
type Service interface {
	// Batch processing
	ProcessMonth(ctx context.Context, req PeriodRequest) (BatchResultResponse, error)

	// Records
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter Filter) (ListRecordsResponse, error)
	GetSummary(ctx context.Context, month, year int) (SummaryResponse, error)

	// Adjustment ledger
	AddAdjustment(ctx context.Context, recordID string, req AddAdjustmentRequest) (RecordResponse, error)

	// Single-record transitions
	Approve(ctx context.Context, recordID string) (RecordResponse, error)
	Revoke(ctx context.Context, recordID string) (RecordResponse, error)
	Pay(ctx context.Context, recordID string, paidBy *string) (RecordResponse, error)
	Cancel(ctx context.Context, recordID string) (RecordResponse, error)

	// Bulk transitions
	BulkApprove(ctx context.Context, req PeriodRequest) (BulkResultResponse, error)
	BulkRevoke(ctx context.Context, req PeriodRequest) (BulkResultResponse, error)
	BulkPay(ctx context.Context, req PeriodRequest, paidBy *string) (BulkResultResponse, error)

	// Side-effect retry
	ResendPayslipEmail(ctx context.Context, recordID string) error
}
