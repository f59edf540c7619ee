package payroll

import (
	"context"
	"time"

	"github.com/look4dennis/stride-hr-sub001/internal/domain/attendance"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/employee"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/formula"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ContextBuilder assembles the per-period inputs for rule evaluation from the
// employee record and attendance facts. It reads; it never writes.
type ContextBuilder struct {
	employees  employee.Repository
	attendance attendance.Provider
}

func NewContextBuilder(employees employee.Repository, attendance attendance.Provider) *ContextBuilder {
	return &ContextBuilder{employees: employees, attendance: attendance}
}

func (b *ContextBuilder) Build(ctx context.Context, companyID, employeeID string, start, end time.Time, custom map[string]decimal.Decimal) (formula.EvaluationContext, error) {
	if start.After(end) {
		return formula.EvaluationContext{}, payroll.ErrInvalidDateRange
	}

	emp, err := b.employees.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return formula.EvaluationContext{}, err
	}

	evalCtx := formula.EvaluationContext{
		EmployeeID:  emp.ID,
		BranchID:    emp.BranchID,
		CompanyID:   emp.CompanyID,
		PeriodStart: start,
		PeriodEnd:   end,
		WorkingDays: workingDays(start, end),
		Values:      make(map[string]decimal.Decimal, len(custom)),
	}
	for k, v := range custom {
		evalCtx.Values[k] = v
	}
	if emp.BaseSalary != nil {
		evalCtx.BasicSalary = *emp.BaseSalary
	}

	days, err := b.attendance.GetRange(ctx, employeeID, start, end)
	if err != nil {
		return formula.EvaluationContext{}, err
	}

	overtimeMinutes := 0
	for _, day := range days {
		switch day.Status {
		case attendance.StatusPresent, attendance.StatusLate:
			evalCtx.ActualWorkingDays++
		case attendance.StatusAbsent:
			evalCtx.AbsentDays++
		case attendance.StatusLeave:
			evalCtx.LeaveDays++
		}
		overtimeMinutes += day.OvertimeMinutes
	}
	evalCtx.OvertimeHours = decimal.NewFromInt(int64(overtimeMinutes)).Div(decimal.NewFromInt(60))

	return evalCtx, nil
}

// workingDays counts calendar days minus Saturdays and Sundays, both bounds
// inclusive.
func workingDays(start, end time.Time) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// periodBounds returns the first and last day of a record's month.
func periodBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}
