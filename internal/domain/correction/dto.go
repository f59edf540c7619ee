package correction

import (
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateCorrectionRequest struct {
	PayrollRecordID string                     `json:"payroll_record_id"`
	ErrorType       string                     `json:"error_type"`
	CorrectionData  map[string]decimal.Decimal `json:"correction_data"`
	Reason          string                     `json:"reason"`
}

// Validate checks structure only; the service re-validates the mapped fields
// against the record. Unrecognized correction keys fail here.
func (r *CreateCorrectionRequest) Validate() (map[Field]decimal.Decimal, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PayrollRecordID) {
		errs = append(errs, validator.ValidationError{Field: "payroll_record_id", Message: "is required"})
	}
	if !ErrorType(r.ErrorType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "error_type", Message: "is not a supported error type"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}
	if len(r.CorrectionData) == 0 {
		errs = append(errs, validator.ValidationError{Field: "correction_data", Message: "must not be empty"})
	}

	data := make(map[Field]decimal.Decimal, len(r.CorrectionData))
	for key, value := range r.CorrectionData {
		field, ok := ParseField(key)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "correction_data." + key, Message: "is not a correctable field"})
			continue
		}
		data[field] = value
	}

	if len(errs) == 0 {
		errs = append(errs, validateByErrorType(ErrorType(r.ErrorType), data)...)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return data, nil
}

// validateByErrorType enforces the per-type field constraints.
func validateByErrorType(errorType ErrorType, data map[Field]decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors

	touchesAny := func(fields ...Field) bool {
		for _, f := range fields {
			if _, ok := data[f]; ok {
				return true
			}
		}
		return false
	}

	switch errorType {
	case ErrorTypeCalculation:
		if !touchesAny(FieldBasicSalary, FieldOvertimeAmount, FieldTotalAllowances,
			FieldTotalDeductions, FieldGrossSalary, FieldNetSalary) {
			errs = append(errs, validator.ValidationError{Field: "correction_data", Message: "calculation_error must touch at least one salary field"})
		}
	case ErrorTypeMissingAllowance:
		if !touchesAny(FieldTotalAllowances) {
			errs = append(errs, validator.ValidationError{Field: "correction_data", Message: "missing_allowance must touch total_allowances"})
		}
	case ErrorTypeIncorrectDeduction:
		if !touchesAny(FieldTotalDeductions) {
			errs = append(errs, validator.ValidationError{Field: "correction_data", Message: "incorrect_deduction must touch total_deductions"})
		}
	case ErrorTypeOvertime:
		if !touchesAny(FieldOvertimeAmount) {
			errs = append(errs, validator.ValidationError{Field: "correction_data", Message: "overtime_error must touch overtime_amount"})
		}
	}

	return errs
}

type DecisionRequest struct {
	Notes  *string `json:"notes,omitempty"`
	Reason *string `json:"reason,omitempty"`
}

// Change - one row of the correction preview.
type Change struct {
	Field    string          `json:"field"`
	OldValue decimal.Decimal `json:"old_value"`
	NewValue decimal.Decimal `json:"new_value"`
	Impact   decimal.Decimal `json:"impact"`
}

type CorrectionResponse struct {
	ID              string                     `json:"id"`
	PayrollRecordID string                     `json:"payroll_record_id"`
	EmployeeID      string                     `json:"employee_id"`
	ErrorType       string                     `json:"error_type"`
	CorrectionData  map[string]decimal.Decimal `json:"correction_data"`
	Status          string                     `json:"status"`
	OriginalValues  map[string]decimal.Decimal `json:"original_values"`
	CorrectedValues map[string]decimal.Decimal `json:"corrected_values,omitempty"`
	Reason          string                     `json:"reason"`
	Notes           *string                    `json:"notes,omitempty"`
	RequestedBy     string                     `json:"requested_by"`
	RequestedAt     string                     `json:"requested_at"`
	ApprovedBy      *string                    `json:"approved_by,omitempty"`
	ApprovedAt      *string                    `json:"approved_at,omitempty"`
	ProcessedBy     *string                    `json:"processed_by,omitempty"`
	ProcessedAt     *string                    `json:"processed_at,omitempty"`
}

// CreateCorrectionResponse carries the stored correction plus the preview of
// what processing it would do to the record right now.
type CreateCorrectionResponse struct {
	Correction CorrectionResponse `json:"correction"`
	Changes    []Change           `json:"changes"`
}
