package audit

import (
	"context"
	"time"
)

type Filter struct {
	PayrollRecordID *string
	EmployeeID      *string
	Action          *Action
	From            *time.Time
	To              *time.Time
	Page            int
	Limit           int
}

// Repository - append and query only.
type Repository interface {
	Add(ctx context.Context, entry Entry) (Entry, error)
	// List returns entries newest first.
	List(ctx context.Context, companyID string, filter Filter) ([]Entry, int64, error)
}
