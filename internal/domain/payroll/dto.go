package payroll

import (
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CALCULATION DTOs ==========

type CalculateRequest struct {
	EmployeeID      string                     `json:"employee_id"`
	PeriodStart     string                     `json:"period_start"` // YYYY-MM-DD
	PeriodEnd       string                     `json:"period_end"`   // YYYY-MM-DD
	OvertimeRate    *decimal.Decimal           `json:"overtime_rate,omitempty"`
	UseCompanyRules *bool                      `json:"use_company_rules,omitempty"`
	TargetCurrency  *string                    `json:"target_currency,omitempty"`
	CustomValues    map[string]decimal.Decimal `json:"custom_values,omitempty"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be before or equal to period_end"})
	}
	if r.OvertimeRate != nil && r.OvertimeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CalculationResultResponse struct {
	EmployeeID         string                     `json:"employee_id"`
	BasicSalary        decimal.Decimal            `json:"basic_salary"`
	OvertimeAmount     decimal.Decimal            `json:"overtime_amount"`
	AllowanceBreakdown map[string]decimal.Decimal `json:"allowance_breakdown"`
	DeductionBreakdown map[string]decimal.Decimal `json:"deduction_breakdown"`
	CustomCalculations map[string]decimal.Decimal `json:"custom_calculations,omitempty"`
	TotalAllowances    decimal.Decimal            `json:"total_allowances"`
	TotalDeductions    decimal.Decimal            `json:"total_deductions"`
	GrossSalary        decimal.Decimal            `json:"gross_salary"`
	NetSalary          decimal.Decimal            `json:"net_salary"`
	Currency           string                     `json:"currency"`
	ExchangeRate       *decimal.Decimal           `json:"exchange_rate,omitempty"`
	Errors             []string                   `json:"errors,omitempty"`
}

// ========== RECORD DTOs ==========

type CreateRecordRequest struct {
	EmployeeID      string                     `json:"employee_id"`
	PeriodMonth     int                        `json:"period_month"`
	PeriodYear      int                        `json:"period_year"`
	OvertimeRate    *decimal.Decimal           `json:"overtime_rate,omitempty"`
	UseCompanyRules *bool                      `json:"use_company_rules,omitempty"`
	TargetCurrency  *string                    `json:"target_currency,omitempty"`
	CustomValues    map[string]decimal.Decimal `json:"custom_values,omitempty"`
	Notes           *string                    `json:"notes,omitempty"`
}

func (r *CreateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2000 or later"})
	}
	if r.OvertimeRate != nil && r.OvertimeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID                 string                     `json:"id"`
	EmployeeID         string                     `json:"employee_id"`
	EmployeeName       *string                    `json:"employee_name,omitempty"`
	EmployeeCode       *string                    `json:"employee_code,omitempty"`
	BranchID           string                     `json:"branch_id"`
	PeriodMonth        int                        `json:"period_month"`
	PeriodYear         int                        `json:"period_year"`
	BasicSalary        decimal.Decimal            `json:"basic_salary"`
	OvertimeAmount     decimal.Decimal            `json:"overtime_amount"`
	AllowanceBreakdown map[string]decimal.Decimal `json:"allowance_breakdown"`
	DeductionBreakdown map[string]decimal.Decimal `json:"deduction_breakdown"`
	CustomCalculations map[string]decimal.Decimal `json:"custom_calculations,omitempty"`
	TotalAllowances    decimal.Decimal            `json:"total_allowances"`
	TotalDeductions    decimal.Decimal            `json:"total_deductions"`
	GrossSalary        decimal.Decimal            `json:"gross_salary"`
	NetSalary          decimal.Decimal            `json:"net_salary"`
	Currency           string                     `json:"currency"`
	ExchangeRate       *decimal.Decimal           `json:"exchange_rate,omitempty"`
	Status             string                     `json:"status"`
	ApprovedBy         *string                    `json:"approved_by,omitempty"`
	ApprovedAt         *string                    `json:"approved_at,omitempty"`
	Notes              *string                    `json:"notes,omitempty"`
	CreatedAt          string                     `json:"created_at"`
}

type RecordFilter struct {
	PeriodMonth *int
	PeriodYear  *int
	Status      *string
	EmployeeID  *string
	SortBy      string
	SortOrder   string
	Page        int
	Limit       int
}

type ListRecordsResponse struct {
	Data       []RecordResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

// ========== BATCH DTOs ==========

type BranchPayrollRequest struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`
}

func (r *BranchPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BranchPayrollItem is the per-employee outcome of a branch run. A failed
// employee carries Error and no Record; the run itself keeps going.
type BranchPayrollItem struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Record       *RecordResponse `json:"record,omitempty"`
	Error        *string         `json:"error,omitempty"`
}

type BranchPayrollResponse struct {
	BranchID    string              `json:"branch_id"`
	PeriodMonth int                 `json:"period_month"`
	PeriodYear  int                 `json:"period_year"`
	Succeeded   int                 `json:"succeeded"`
	Failed      int                 `json:"failed"`
	Items       []BranchPayrollItem `json:"items"`
}

// ========== SUMMARY DTOs ==========

type SummaryResponse struct {
	PeriodMonth     int             `json:"period_month"`
	PeriodYear      int             `json:"period_year"`
	TotalEmployees  int64           `json:"total_employees"`
	TotalBasic      decimal.Decimal `json:"total_basic_salary"`
	TotalOvertime   decimal.Decimal `json:"total_overtime"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalGross      decimal.Decimal `json:"total_gross_salary"`
	TotalNet        decimal.Decimal `json:"total_net_salary"`
	CalculatedCount int64           `json:"calculated_count"`
	ApprovedCount   int64           `json:"approved_count"`
}
