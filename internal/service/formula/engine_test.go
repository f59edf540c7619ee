package formula

import (
	"testing"

	domain "github.com/look4dennis/stride-hr-sub001/internal/domain/formula"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOvertimeAmount(t *testing.T) {
	e := NewEngine()

	t.Run("standard multiplier", func(t *testing.T) {
		// 3000/160 = 18.75 hourly, x1.5 x10h = 281.25
		got := e.OvertimeAmount(
			decimal.NewFromInt(10),
			decimal.NewFromInt(3000),
			decimal.NewFromFloat(1.5),
		)
		assert.True(t, got.Equal(decimal.NewFromFloat(281.25)), "got %s", got)
	})

	t.Run("zero hours yields zero", func(t *testing.T) {
		got := e.OvertimeAmount(
			decimal.Zero,
			decimal.NewFromInt(3000),
			decimal.NewFromFloat(1.5),
		)
		assert.True(t, got.IsZero())
	})

	t.Run("zero basic yields zero", func(t *testing.T) {
		got := e.OvertimeAmount(
			decimal.NewFromInt(10),
			decimal.Zero,
			decimal.NewFromFloat(1.5),
		)
		assert.True(t, got.IsZero())
	})
}

func TestEvaluateAll(t *testing.T) {
	e := NewEngine()
	evalCtx := domain.EvaluationContext{
		BasicSalary:       decimal.NewFromInt(3000),
		ActualWorkingDays: 20,
	}

	t.Run("bases", func(t *testing.T) {
		rules := []domain.Rule{
			{Name: "Transport", Type: domain.RuleTypeAllowance, Basis: domain.BasisFixed, Value: decimal.NewFromInt(150)},
			{Name: "Housing", Type: domain.RuleTypeAllowance, Basis: domain.BasisPercentOfBasic, Value: decimal.NewFromInt(10)},
			{Name: "Meal", Type: domain.RuleTypeAllowance, Basis: domain.BasisPerWorkingDay, Value: decimal.NewFromInt(5)},
		}

		contributions, errs := e.EvaluateAll(evalCtx, rules)
		assert.Empty(t, errs)
		assert.Len(t, contributions, 3)

		byName := map[string]decimal.Decimal{}
		for _, c := range contributions {
			byName[c.Name] = c.Amount
		}
		assert.True(t, byName["Transport"].Equal(decimal.NewFromInt(150)))
		assert.True(t, byName["Housing"].Equal(decimal.NewFromInt(300)))
		assert.True(t, byName["Meal"].Equal(decimal.NewFromInt(100)))
	})

	t.Run("unknown basis is reported, others still contribute", func(t *testing.T) {
		rules := []domain.Rule{
			{Name: "Broken", Type: domain.RuleTypeDeduction, Basis: "lunar_phase", Value: decimal.NewFromInt(1)},
			{Name: "Tax", Type: domain.RuleTypeTax, Basis: domain.BasisPercentOfBasic, Value: decimal.NewFromInt(5)},
		}

		contributions, errs := e.EvaluateAll(evalCtx, rules)
		assert.Len(t, errs, 1)
		assert.Contains(t, errs[0], "Broken")
		assert.Len(t, contributions, 1)
		assert.Equal(t, "Tax", contributions[0].Name)
		assert.True(t, contributions[0].Amount.Equal(decimal.NewFromInt(150)))
	})

	t.Run("invalid type is reported", func(t *testing.T) {
		rules := []domain.Rule{
			{Name: "Mystery", Type: "bonus", Basis: domain.BasisFixed, Value: decimal.NewFromInt(1)},
		}

		contributions, errs := e.EvaluateAll(evalCtx, rules)
		assert.Len(t, errs, 1)
		assert.Empty(t, contributions)
	})

	t.Run("no rules", func(t *testing.T) {
		contributions, errs := e.EvaluateAll(evalCtx, nil)
		assert.Empty(t, contributions)
		assert.Empty(t, errs)
	})
}
