package formula

import "context"

// RuleRepository defines data access for stored formula rules.
type RuleRepository interface {
	Create(ctx context.Context, rule Rule) (Rule, error)
	GetByID(ctx context.Context, id string, companyID string) (Rule, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Rule, error)
	Deactivate(ctx context.Context, id string, companyID string) error
}
