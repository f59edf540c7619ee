package formula

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleType enum - declared type of a rule's contribution. Bucketing of a
// contribution into allowances or deductions follows this type, never the
// sign of the amount.
type RuleType string

const (
	RuleTypeAllowance RuleType = "allowance"
	RuleTypeDeduction RuleType = "deduction"
	RuleTypeTax       RuleType = "tax"
	RuleTypeCustom    RuleType = "custom"
)

func (t RuleType) Valid() bool {
	switch t {
	case RuleTypeAllowance, RuleTypeDeduction, RuleTypeTax, RuleTypeCustom:
		return true
	}
	return false
}

// AmountBasis enum - how a rule's value turns into an amount. Closed set;
// the engine rejects anything else instead of guessing.
type AmountBasis string

const (
	BasisFixed          AmountBasis = "fixed"            // value is the amount
	BasisPercentOfBasic AmountBasis = "percent_of_basic" // value is a percentage of basic salary
	BasisPerWorkingDay  AmountBasis = "per_working_day"  // value times actual working days
)

// Rule - a named, typed, pluggable calculation contributing one amount to a
// payroll result.
type Rule struct {
	ID        string
	CompanyID string
	Name      string
	Type      RuleType
	Basis     AmountBasis
	Value     decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EvaluationContext - per-period inputs assembled for rule evaluation.
type EvaluationContext struct {
	EmployeeID        string
	BranchID          string
	CompanyID         string
	PeriodStart       time.Time
	PeriodEnd         time.Time
	BasicSalary       decimal.Decimal
	OvertimeHours     decimal.Decimal
	WorkingDays       int
	ActualWorkingDays int
	AbsentDays        int
	LeaveDays         int
	Values            map[string]decimal.Decimal
}

// Contribution - one named amount produced by rule evaluation.
type Contribution struct {
	Name   string
	Type   RuleType
	Amount decimal.Decimal
}
