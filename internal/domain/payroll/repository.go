package payroll

import (
	"context"
	"time"
)

// Transactor runs fn inside a single transactional boundary. Everything a
// workflow step persists (record mutation, correction transition, audit entry)
// goes through one WithinTransaction call so status-check-then-transition is
// atomic.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RecordRepository defines data access for payroll records.
// All methods take companyID to prevent cross-company data access.
type RecordRepository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)
	// GetByIDForUpdate locks the record row for the duration of the
	// surrounding transaction. The record row per period is the unit of
	// contention for approvals and correction processing.
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (PayrollRecord, error)
	List(ctx context.Context, companyID string, filter RecordFilter) ([]PayrollRecord, int64, error)
	SetApproved(ctx context.Context, id string, companyID string, approvedBy string, approvedAt time.Time) error
	// UpdateAmounts rewrites the monetary fields of a record. Only correction
	// processing calls this.
	UpdateAmounts(ctx context.Context, record PayrollRecord) error
	GetSummary(ctx context.Context, companyID string, month, year int) (SummaryResponse, error)
}
