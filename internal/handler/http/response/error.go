package response

import (
	"errors"
	"net/http"

	"github.com/look4dennis/stride-hr-sub001/internal/domain/correction"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/currency"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/employee"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/formula"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/payroll"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrRecordAlreadyApproved):
		Conflict(w, "Payroll record already approved")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrInvalidDateRange):
		BadRequest(w, "Period start must be before or equal to period end", nil)
	case errors.Is(err, payroll.ErrEmployeeHasNoBaseSalary):
		BadRequest(w, "Employee has no base salary configured", nil)
	case errors.Is(err, payroll.ErrRuleEngineFailure):
		BadGateway(w, "Formula engine evaluation failed")

	// Correction domain errors
	case errors.Is(err, correction.ErrCorrectionNotFound):
		NotFound(w, "Payroll correction not found")
	case errors.Is(err, correction.ErrCorrectionNotPending):
		Conflict(w, "Correction is not pending")
	case errors.Is(err, correction.ErrCorrectionNotApproved):
		Conflict(w, "Correction is not approved")
	case errors.Is(err, correction.ErrCorrectionTerminal):
		Conflict(w, "Correction is already in a terminal status")

	// Formula domain errors
	case errors.Is(err, formula.ErrRuleNotFound):
		NotFound(w, "Formula rule not found")
	case errors.Is(err, formula.ErrRuleNameExists):
		Conflict(w, "Formula rule name already exists")
	case errors.Is(err, formula.ErrEngineUnavailable):
		BadGateway(w, "Formula engine unavailable")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrBranchNotFound):
		NotFound(w, "Branch not found")

	// External providers
	case errors.Is(err, currency.ErrRateUnavailable):
		BadGateway(w, "Exchange rate unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
