package correction

import "context"

type Service interface {
	Create(ctx context.Context, req CreateCorrectionRequest) (CreateCorrectionResponse, error)
	Get(ctx context.Context, id string) (CorrectionResponse, error)
	ListByRecord(ctx context.Context, payrollRecordID string) ([]CorrectionResponse, error)

	Approve(ctx context.Context, id string, req DecisionRequest) (CorrectionResponse, error)
	Reject(ctx context.Context, id string, req DecisionRequest) (CorrectionResponse, error)
	Process(ctx context.Context, id string) (CorrectionResponse, error)
	Cancel(ctx context.Context, id string, req DecisionRequest) (CorrectionResponse, error)
}
