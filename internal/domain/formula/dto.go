package formula

import (
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRuleRequest struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Basis string          `json:"basis"`
	Value decimal.Decimal `json:"value"`
}

func (r *CreateRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !RuleType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of allowance, deduction, tax, custom"})
	}
	switch AmountBasis(r.Basis) {
	case BasisFixed, BasisPercentOfBasic, BasisPerWorkingDay:
	default:
		errs = append(errs, validator.ValidationError{Field: "basis", Message: "must be one of fixed, percent_of_basic, per_working_day"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RuleResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Basis     string          `json:"basis"`
	Value     decimal.Decimal `json:"value"`
	IsActive  bool            `json:"is_active"`
}
