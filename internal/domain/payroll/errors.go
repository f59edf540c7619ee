package payroll

import "errors"

var (
	ErrRecordNotFound          = errors.New("payroll record not found")
	ErrRecordAlreadyExists     = errors.New("payroll record already exists for this period")
	ErrRecordAlreadyApproved   = errors.New("payroll record already approved")
	ErrInvalidPeriod           = errors.New("invalid payroll period")
	ErrInvalidDateRange        = errors.New("period start must be before or equal to period end")
	ErrEmployeeHasNoBaseSalary = errors.New("employee has no base salary configured")
	ErrRuleEngineFailure       = errors.New("formula engine evaluation failed")
)
