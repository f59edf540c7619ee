package correction

import "context"

type Repository interface {
	Create(ctx context.Context, c Correction) (Correction, error)
	GetByID(ctx context.Context, id string, companyID string) (Correction, error)
	// GetByIDForUpdate locks the correction row so concurrent decisions on the
	// same correction serialize.
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (Correction, error)
	ListByRecord(ctx context.Context, payrollRecordID string, companyID string) ([]Correction, error)
	// Update persists a status transition together with its decision fields
	// and snapshots.
	Update(ctx context.Context, c Correction) (Correction, error)
}
