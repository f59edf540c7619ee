package payroll

import "context"

type Service interface {
	// Calculate runs the pure calculation without persisting anything.
	Calculate(ctx context.Context, req CalculateRequest) (CalculationResultResponse, error)

	// Records
	CreateRecord(ctx context.Context, req CreateRecordRequest) (RecordResponse, error)
	ApproveRecord(ctx context.Context, recordID string) (RecordResponse, error)
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)

	// Batch
	ProcessBranchPayroll(ctx context.Context, branchID string, req BranchPayrollRequest) (BranchPayrollResponse, error)

	// Summary
	GetSummary(ctx context.Context, month, year int) (SummaryResponse, error)
}
