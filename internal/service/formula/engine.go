package formula

import (
	"fmt"

	"github.com/look4dennis/stride-hr-sub001/internal/domain/formula"
	"github.com/shopspring/decimal"
)

// monthlyWorkHours is the divisor used to derive an hourly rate from a
// monthly basic salary (8h x 20 working days).
const monthlyWorkHours = 160

type engine struct{}

func NewEngine() formula.Engine {
	return &engine{}
}

func (e *engine) OvertimeAmount(hours, basicSalary, rate decimal.Decimal) decimal.Decimal {
	if hours.IsZero() {
		return decimal.Zero
	}
	hourly := basicSalary.Div(decimal.NewFromInt(monthlyWorkHours))
	return hourly.Mul(rate).Mul(hours)
}

func (e *engine) EvaluateAll(evalCtx formula.EvaluationContext, rules []formula.Rule) ([]formula.Contribution, []string) {
	var contributions []formula.Contribution
	var errs []string

	for _, rule := range rules {
		amount, err := e.evaluate(evalCtx, rule)
		if err != nil {
			errs = append(errs, fmt.Sprintf("rule %q: %v", rule.Name, err))
			continue
		}
		contributions = append(contributions, formula.Contribution{
			Name:   rule.Name,
			Type:   rule.Type,
			Amount: amount,
		})
	}

	return contributions, errs
}

func (e *engine) evaluate(evalCtx formula.EvaluationContext, rule formula.Rule) (decimal.Decimal, error) {
	if !rule.Type.Valid() {
		return decimal.Zero, formula.ErrInvalidRuleType
	}

	switch rule.Basis {
	case formula.BasisFixed:
		return rule.Value, nil
	case formula.BasisPercentOfBasic:
		return evalCtx.BasicSalary.Mul(rule.Value).Div(decimal.NewFromInt(100)), nil
	case formula.BasisPerWorkingDay:
		return rule.Value.Mul(decimal.NewFromInt(int64(evalCtx.ActualWorkingDays))), nil
	default:
		return decimal.Zero, formula.ErrInvalidRuleBasis
	}
}
