package correction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrorType enum - why a correction is being requested. Each type constrains
// which fields the correction must touch.
type ErrorType string

const (
	ErrorTypeCalculation        ErrorType = "calculation_error"
	ErrorTypeDataEntry          ErrorType = "data_entry_error"
	ErrorTypeMissingAllowance   ErrorType = "missing_allowance"
	ErrorTypeIncorrectDeduction ErrorType = "incorrect_deduction"
	ErrorTypeOvertime           ErrorType = "overtime_error"
)

func (t ErrorType) Valid() bool {
	switch t {
	case ErrorTypeCalculation, ErrorTypeDataEntry, ErrorTypeMissingAllowance,
		ErrorTypeIncorrectDeduction, ErrorTypeOvertime:
		return true
	}
	return false
}

// Status enum. pending -> {approved, rejected, cancelled};
// approved -> {processed, cancelled}; the rest are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusProcessed Status = "processed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Terminal() bool {
	switch s {
	case StatusProcessed, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Field enum - the closed whitelist of correctable record fields.
type Field string

const (
	FieldBasicSalary     Field = "basic_salary"
	FieldOvertimeAmount  Field = "overtime_amount"
	FieldTotalAllowances Field = "total_allowances"
	FieldTotalDeductions Field = "total_deductions"
	FieldGrossSalary     Field = "gross_salary"
	FieldNetSalary       Field = "net_salary"
)

// CorrectableFields is the application order for overrides: components first,
// derived totals last.
var CorrectableFields = []Field{
	FieldBasicSalary,
	FieldOvertimeAmount,
	FieldTotalAllowances,
	FieldTotalDeductions,
	FieldGrossSalary,
	FieldNetSalary,
}

// ParseField matches a correction key against the whitelist,
// case-insensitively and accepting both snake_case and the CamelCase spelling
// upstream clients send ("BasicSalary"). Unknown keys are a validation error
// at the call site, never silently dropped.
func ParseField(key string) (Field, bool) {
	normalized := normalizeFieldKey(key)
	for _, f := range CorrectableFields {
		if normalized == strings.ReplaceAll(string(f), "_", "") {
			return f, true
		}
	}
	return "", false
}

func normalizeFieldKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "_", "")
	key = strings.ReplaceAll(key, " ", "")
	return key
}

// Correction - a proposed, audited change to a persisted payroll record.
// Immutable once terminal.
type Correction struct {
	ID              string
	PayrollRecordID string
	EmployeeID      string
	CompanyID       string
	ErrorType       ErrorType
	CorrectionData  map[Field]decimal.Decimal
	Status          Status
	// OriginalValues is snapshotted from the live record at request time.
	OriginalValues map[Field]decimal.Decimal
	// CorrectedValues exists if and only if the correction is processed.
	CorrectedValues map[Field]decimal.Decimal
	Reason          string
	Notes           *string
	RequestedBy     string
	RequestedAt     time.Time
	ApprovedBy      *string
	ApprovedAt      *time.Time
	ProcessedBy     *string
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
