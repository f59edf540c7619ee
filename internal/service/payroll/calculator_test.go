package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/look4dennis/stride-hr-sub001/internal/domain/formula"
	formulaService "github.com/look4dennis/stride-hr-sub001/internal/service/formula"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	rates, err := currency.NewStaticProvider("USD:IDR=15500")
	require.NoError(t, err)
	return NewCalculator(formulaService.NewEngine(), rates, time.Second)
}

func baseContext() formula.EvaluationContext {
	return formula.EvaluationContext{
		EmployeeID:        "emp-1",
		BasicSalary:       decimal.NewFromInt(3000),
		OvertimeHours:     decimal.NewFromInt(10),
		WorkingDays:       23,
		ActualWorkingDays: 21,
	}
}

func TestCalculateInvariants(t *testing.T) {
	calc := newTestCalculator(t)

	rules := []formula.Rule{
		{Name: "Transport", Type: formula.RuleTypeAllowance, Basis: formula.BasisFixed, Value: decimal.NewFromInt(200)},
		{Name: "Income Tax", Type: formula.RuleTypeTax, Basis: formula.BasisPercentOfBasic, Value: decimal.NewFromInt(5)},
		{Name: "Insurance", Type: formula.RuleTypeDeduction, Basis: formula.BasisFixed, Value: decimal.NewFromInt(50)},
		{Name: "Points", Type: formula.RuleTypeCustom, Basis: formula.BasisFixed, Value: decimal.NewFromInt(42)},
	}

	result := calc.Calculate(context.Background(), CalculationInput{
		Context:      baseContext(),
		Rules:        rules,
		UseRules:     true,
		OvertimeRate: decimal.NewFromFloat(1.5),
		Currency:     "USD",
	})

	assert.Empty(t, result.Errors)
	assert.True(t, result.OvertimeAmount.Equal(decimal.NewFromFloat(281.25)), "overtime %s", result.OvertimeAmount)
	assert.True(t, result.TotalAllowances.Equal(decimal.NewFromInt(200)))
	// 5% of 3000 tax + 50 insurance
	assert.True(t, result.TotalDeductions.Equal(decimal.NewFromInt(200)))

	wantGross := result.BasicSalary.Add(result.TotalAllowances).Add(result.OvertimeAmount)
	assert.True(t, result.GrossSalary.Equal(wantGross))
	assert.True(t, result.NetSalary.Equal(result.GrossSalary.Sub(result.TotalDeductions)))

	// Custom contributions stay out of the totals.
	assert.True(t, result.CustomCalculations["Points"].Equal(decimal.NewFromInt(42)))
	assert.Len(t, result.AllowanceBreakdown, 1)
	assert.Len(t, result.DeductionBreakdown, 2)
}

func TestCalculateBucketsByDeclaredType(t *testing.T) {
	calc := newTestCalculator(t)

	// A negative-valued allowance still lands in allowances.
	rules := []formula.Rule{
		{Name: "Adjustment", Type: formula.RuleTypeAllowance, Basis: formula.BasisFixed, Value: decimal.NewFromInt(-100)},
	}

	result := calc.Calculate(context.Background(), CalculationInput{
		Context:      baseContext(),
		Rules:        rules,
		UseRules:     true,
		OvertimeRate: decimal.NewFromFloat(1.5),
		Currency:     "USD",
	})

	assert.True(t, result.AllowanceBreakdown["Adjustment"].Equal(decimal.NewFromInt(-100)))
	assert.True(t, result.TotalAllowances.Equal(decimal.NewFromInt(-100)))
	assert.Empty(t, result.DeductionBreakdown)
}

func TestCalculateRulesDisabled(t *testing.T) {
	calc := newTestCalculator(t)

	rules := []formula.Rule{
		{Name: "Transport", Type: formula.RuleTypeAllowance, Basis: formula.BasisFixed, Value: decimal.NewFromInt(200)},
	}

	result := calc.Calculate(context.Background(), CalculationInput{
		Context:      baseContext(),
		Rules:        rules,
		UseRules:     false,
		OvertimeRate: decimal.NewFromFloat(1.5),
		Currency:     "USD",
	})

	assert.Empty(t, result.AllowanceBreakdown)
	assert.True(t, result.TotalAllowances.IsZero())
	assert.True(t, result.GrossSalary.Equal(result.BasicSalary.Add(result.OvertimeAmount)))
}

func TestCalculateNegativeNetFlagged(t *testing.T) {
	calc := newTestCalculator(t)

	rules := []formula.Rule{
		{Name: "Garnishment", Type: formula.RuleTypeDeduction, Basis: formula.BasisFixed, Value: decimal.NewFromInt(10000)},
	}

	result := calc.Calculate(context.Background(), CalculationInput{
		Context:      baseContext(),
		Rules:        rules,
		UseRules:     true,
		OvertimeRate: decimal.NewFromFloat(1.5),
		Currency:     "USD",
	})

	assert.True(t, result.NetSalary.IsNegative())
	assert.Contains(t, result.Errors, "net salary is negative")
	// The amount is preserved, not clamped.
	assert.True(t, result.NetSalary.Equal(result.GrossSalary.Sub(decimal.NewFromInt(10000))))
}

func TestCalculateExchangeRate(t *testing.T) {
	calc := newTestCalculator(t)

	t.Run("known pair attaches metadata", func(t *testing.T) {
		target := "IDR"
		result := calc.Calculate(context.Background(), CalculationInput{
			Context:        baseContext(),
			OvertimeRate:   decimal.NewFromFloat(1.5),
			Currency:       "USD",
			TargetCurrency: &target,
		})

		require.NotNil(t, result.ExchangeRate)
		assert.True(t, result.ExchangeRate.Equal(decimal.NewFromInt(15500)))
		assert.Empty(t, result.Errors)
	})

	t.Run("unknown pair degrades to a result error", func(t *testing.T) {
		target := "CHF"
		result := calc.Calculate(context.Background(), CalculationInput{
			Context:        baseContext(),
			OvertimeRate:   decimal.NewFromFloat(1.5),
			Currency:       "USD",
			TargetCurrency: &target,
		})

		assert.Nil(t, result.ExchangeRate)
		assert.Contains(t, result.Errors, "exchange rate unavailable for USD to CHF")
		// Amounts are untouched by the failure.
		assert.False(t, result.GrossSalary.IsZero())
	})

	t.Run("same currency skips the lookup", func(t *testing.T) {
		target := "USD"
		result := calc.Calculate(context.Background(), CalculationInput{
			Context:        baseContext(),
			OvertimeRate:   decimal.NewFromFloat(1.5),
			Currency:       "USD",
			TargetCurrency: &target,
		})

		assert.Nil(t, result.ExchangeRate)
		assert.Empty(t, result.Errors)
	})
}

func TestCalculateIsPure(t *testing.T) {
	calc := newTestCalculator(t)

	input := CalculationInput{
		Context: baseContext(),
		Rules: []formula.Rule{
			{Name: "Transport", Type: formula.RuleTypeAllowance, Basis: formula.BasisFixed, Value: decimal.NewFromInt(200)},
		},
		UseRules:     true,
		OvertimeRate: decimal.NewFromFloat(1.5),
		Currency:     "USD",
	}

	first := calc.Calculate(context.Background(), input)
	second := calc.Calculate(context.Background(), input)

	assert.True(t, first.GrossSalary.Equal(second.GrossSalary))
	assert.True(t, first.NetSalary.Equal(second.NetSalary))
	assert.Equal(t, first.AllowanceBreakdown, second.AllowanceBreakdown)
}
