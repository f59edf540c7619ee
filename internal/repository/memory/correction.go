package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/correction"
)

type CorrectionRepository struct {
	mu          sync.RWMutex
	corrections map[string]correction.Correction
}

func NewCorrectionRepository() *CorrectionRepository {
	return &CorrectionRepository{corrections: make(map[string]correction.Correction)}
}

func (r *CorrectionRepository) Create(ctx context.Context, c correction.Correction) (correction.Correction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.corrections[c.ID] = c

	return c, nil
}

func (r *CorrectionRepository) GetByID(ctx context.Context, id string, companyID string) (correction.Correction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.corrections[id]
	if !ok || c.CompanyID != companyID {
		return correction.Correction{}, correction.ErrCorrectionNotFound
	}
	return c, nil
}

func (r *CorrectionRepository) GetByIDForUpdate(ctx context.Context, id string, companyID string) (correction.Correction, error) {
	return r.GetByID(ctx, id, companyID)
}

func (r *CorrectionRepository) ListByRecord(ctx context.Context, payrollRecordID string, companyID string) ([]correction.Correction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []correction.Correction
	for _, c := range r.corrections {
		if c.PayrollRecordID == payrollRecordID && c.CompanyID == companyID {
			matched = append(matched, c)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].RequestedAt.After(matched[j].RequestedAt)
	})

	return matched, nil
}

func (r *CorrectionRepository) Update(ctx context.Context, c correction.Correction) (correction.Correction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.corrections[c.ID]
	if !ok || existing.CompanyID != c.CompanyID {
		return correction.Correction{}, correction.ErrCorrectionNotFound
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	r.corrections[c.ID] = c

	return c, nil
}
