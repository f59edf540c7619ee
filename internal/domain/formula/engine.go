package formula

import "github.com/shopspring/decimal"

// Engine evaluates rules against a context. The rule language behind the
// contract is the engine's own business; the payroll core only consumes
// named decimal contributions.
type Engine interface {
	// EvaluateAll evaluates every rule. A rule that cannot be evaluated is
	// skipped and reported in the returned error strings; the other rules
	// still contribute.
	EvaluateAll(evalCtx EvaluationContext, rules []Rule) ([]Contribution, []string)

	// OvertimeAmount converts overtime hours into an amount given the basic
	// salary and a rate multiplier. Zero hours yields zero.
	OvertimeAmount(hours, basicSalary, rate decimal.Decimal) decimal.Decimal
}
