package employee

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetActiveByBranchID(ctx context.Context, branchID string, companyID string) ([]Employee, error)
}
