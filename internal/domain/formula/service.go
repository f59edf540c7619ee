package formula

import "context"

type RuleService interface {
	CreateRule(ctx context.Context, req CreateRuleRequest) (RuleResponse, error)
	ListRules(ctx context.Context) ([]RuleResponse, error)
	DeactivateRule(ctx context.Context, id string) error
}
