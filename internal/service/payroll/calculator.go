package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/look4dennis/stride-hr-sub001/internal/domain/currency"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/formula"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CalculationInput is everything the calculator needs. Collaborator results
// fully determine the output, so identical inputs produce identical results.
type CalculationInput struct {
	Context      formula.EvaluationContext
	Rules        []formula.Rule
	UseRules     bool
	OvertimeRate decimal.Decimal
	Currency     string
	// TargetCurrency, when set, asks for a conversion rate to attach as
	// metadata. Stored amounts stay in Currency.
	TargetCurrency *string
}

// Calculator turns an evaluation context and a rule set into a monetary
// result. No rounding happens here; amounts stay exact so repeated
// corrections never drift. Presentation layers round.
type Calculator struct {
	engine      formula.Engine
	rates       currency.RateProvider
	rateTimeout time.Duration
}

func NewCalculator(engine formula.Engine, rates currency.RateProvider, rateTimeout time.Duration) *Calculator {
	return &Calculator{engine: engine, rates: rates, rateTimeout: rateTimeout}
}

func (c *Calculator) Calculate(ctx context.Context, input CalculationInput) payroll.CalculationResult {
	result := payroll.CalculationResult{
		EmployeeID:         input.Context.EmployeeID,
		BasicSalary:        input.Context.BasicSalary,
		AllowanceBreakdown: make(map[string]decimal.Decimal),
		DeductionBreakdown: make(map[string]decimal.Decimal),
		CustomCalculations: make(map[string]decimal.Decimal),
		Currency:           input.Currency,
	}

	result.OvertimeAmount = c.engine.OvertimeAmount(
		input.Context.OvertimeHours, input.Context.BasicSalary, input.OvertimeRate)

	totalAllowances := decimal.Zero
	totalDeductions := decimal.Zero

	if input.UseRules {
		contributions, errs := c.engine.EvaluateAll(input.Context, input.Rules)
		result.Errors = append(result.Errors, errs...)

		for _, contribution := range contributions {
			// Bucketing follows the declared type; the sign of the amount is
			// irrelevant.
			switch contribution.Type {
			case formula.RuleTypeAllowance:
				result.AllowanceBreakdown[contribution.Name] = contribution.Amount
				totalAllowances = totalAllowances.Add(contribution.Amount)
			case formula.RuleTypeDeduction, formula.RuleTypeTax:
				result.DeductionBreakdown[contribution.Name] = contribution.Amount
				totalDeductions = totalDeductions.Add(contribution.Amount)
			case formula.RuleTypeCustom:
				result.CustomCalculations[contribution.Name] = contribution.Amount
			}
		}
	}

	result.TotalAllowances = totalAllowances
	result.TotalDeductions = totalDeductions
	result.GrossSalary = result.BasicSalary.Add(totalAllowances).Add(result.OvertimeAmount)
	result.NetSalary = result.GrossSalary.Sub(totalDeductions)

	if result.NetSalary.IsNegative() {
		// Not clamped; downstream decides what a negative payout means.
		result.Errors = append(result.Errors, "net salary is negative")
	}

	if input.TargetCurrency != nil && *input.TargetCurrency != input.Currency {
		c.attachExchangeRate(ctx, &result, input.Currency, *input.TargetCurrency)
	}

	return result
}

// attachExchangeRate fetches the rate under a timeout. A failed lookup is
// recorded in the result errors instead of failing the calculation; the rate
// is reporting metadata, not part of the amounts.
func (c *Calculator) attachExchangeRate(ctx context.Context, result *payroll.CalculationResult, from, to string) {
	rateCtx, cancel := context.WithTimeout(ctx, c.rateTimeout)
	defer cancel()

	rate, err := c.rates.GetExchangeRate(rateCtx, from, to)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("exchange rate unavailable for %s to %s", from, to))
		return
	}
	result.ExchangeRate = &rate
}
