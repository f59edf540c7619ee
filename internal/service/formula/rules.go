package formula

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/formula"
)

type RuleServiceImpl struct {
	rules formula.RuleRepository
}

func NewRuleService(rules formula.RuleRepository) formula.RuleService {
	return &RuleServiceImpl{rules: rules}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func (s *RuleServiceImpl) CreateRule(ctx context.Context, req formula.CreateRuleRequest) (formula.RuleResponse, error) {
	if err := req.Validate(); err != nil {
		return formula.RuleResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return formula.RuleResponse{}, err
	}

	created, err := s.rules.Create(ctx, formula.Rule{
		CompanyID: companyID,
		Name:      req.Name,
		Type:      formula.RuleType(req.Type),
		Basis:     formula.AmountBasis(req.Basis),
		Value:     req.Value,
		IsActive:  true,
	})
	if err != nil {
		return formula.RuleResponse{}, err
	}

	return mapToRuleResponse(created), nil
}

func (s *RuleServiceImpl) ListRules(ctx context.Context) ([]formula.RuleResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rules, err := s.rules.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]formula.RuleResponse, 0, len(rules))
	for _, r := range rules {
		result = append(result, mapToRuleResponse(r))
	}
	return result, nil
}

func (s *RuleServiceImpl) DeactivateRule(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.rules.Deactivate(ctx, id, companyID)
}

func mapToRuleResponse(r formula.Rule) formula.RuleResponse {
	return formula.RuleResponse{
		ID:        r.ID,
		CompanyID: r.CompanyID,
		Name:      r.Name,
		Type:      string(r.Type),
		Basis:     string(r.Basis),
		Value:     r.Value,
		IsActive:  r.IsActive,
	}
}
