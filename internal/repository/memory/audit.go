package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/audit"
)

// AuditRepository appends entries to a slice. Append-only, like the real one.
type AuditRepository struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) Add(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)

	return entry, nil
}

func (r *AuditRepository) List(ctx context.Context, companyID string, filter audit.Filter) ([]audit.Entry, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []audit.Entry
	// Iterate newest first.
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.CompanyID != companyID {
			continue
		}
		if filter.PayrollRecordID != nil && e.PayrollRecordID != *filter.PayrollRecordID {
			continue
		}
		if filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Action != nil && e.Action != *filter.Action {
			continue
		}
		if filter.From != nil && e.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, e)
	}

	totalCount := int64(len(matched))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return nil, totalCount, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[offset:end], totalCount, nil
}
