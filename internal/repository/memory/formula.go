package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/formula"
)

type FormulaRepository struct {
	mu    sync.RWMutex
	rules map[string]formula.Rule
}

func NewFormulaRepository() *FormulaRepository {
	return &FormulaRepository{rules: make(map[string]formula.Rule)}
}

func (r *FormulaRepository) Create(ctx context.Context, rule formula.Rule) (formula.Rule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.rules {
		if existing.CompanyID == rule.CompanyID && existing.Name == rule.Name && existing.IsActive {
			return formula.Rule{}, formula.ErrRuleNameExists
		}
	}

	now := time.Now()
	rule.ID = uuid.NewString()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	r.rules[rule.ID] = rule

	return rule, nil
}

func (r *FormulaRepository) GetByID(ctx context.Context, id string, companyID string) (formula.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[id]
	if !ok || rule.CompanyID != companyID {
		return formula.Rule{}, formula.ErrRuleNotFound
	}
	return rule, nil
}

func (r *FormulaRepository) GetActiveByCompanyID(ctx context.Context, companyID string) ([]formula.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []formula.Rule
	for _, rule := range r.rules {
		if rule.CompanyID == companyID && rule.IsActive {
			matched = append(matched, rule)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})

	return matched, nil
}

func (r *FormulaRepository) Deactivate(ctx context.Context, id string, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[id]
	if !ok || rule.CompanyID != companyID {
		return formula.ErrRuleNotFound
	}

	rule.IsActive = false
	rule.UpdatedAt = time.Now()
	r.rules[id] = rule

	return nil
}
