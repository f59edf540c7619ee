package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/look4dennis/stride-hr-sub001/internal/domain/attendance"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/employee"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/payroll"
	"github.com/look4dennis/stride-hr-sub001/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID  = "11111111-1111-1111-1111-111111111111"
	testBranchID   = "22222222-2222-2222-2222-222222222222"
	testEmployeeID = "33333333-3333-3333-3333-333333333333"
)

func seedEmployee(employees *memory.EmployeeRepository, baseSalary decimal.Decimal) {
	employees.Seed(employee.Employee{
		ID:               testEmployeeID,
		CompanyID:        testCompanyID,
		BranchID:         testBranchID,
		EmployeeCode:     "EMP001",
		FullName:         "Ava Stone",
		EmploymentStatus: employee.EmploymentStatusActive,
		BaseSalary:       &baseSalary,
		Currency:         "USD",
	})
}

func TestContextBuilderBuild(t *testing.T) {
	employees := memory.NewEmployeeRepository()
	days := memory.NewAttendanceProvider()
	seedEmployee(employees, decimal.NewFromInt(3000))

	// January 2025: 31 days, 8 weekend days, 23 working days.
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	days.Seed(testEmployeeID,
		attendance.Day{EmployeeID: testEmployeeID, Date: start, Status: attendance.StatusPresent, OvertimeMinutes: 90},
		attendance.Day{EmployeeID: testEmployeeID, Date: start.AddDate(0, 0, 1), Status: attendance.StatusLate, OvertimeMinutes: 30},
		attendance.Day{EmployeeID: testEmployeeID, Date: start.AddDate(0, 0, 2), Status: attendance.StatusAbsent},
		attendance.Day{EmployeeID: testEmployeeID, Date: start.AddDate(0, 0, 5), Status: attendance.StatusLeave},
		// Outside the period, must be ignored.
		attendance.Day{EmployeeID: testEmployeeID, Date: end.AddDate(0, 0, 1), Status: attendance.StatusPresent, OvertimeMinutes: 600},
	)

	b := NewContextBuilder(employees, days)
	evalCtx, err := b.Build(context.Background(), testCompanyID, testEmployeeID, start, end,
		map[string]decimal.Decimal{"bonus_pool": decimal.NewFromInt(500)})
	require.NoError(t, err)

	assert.Equal(t, testEmployeeID, evalCtx.EmployeeID)
	assert.Equal(t, testBranchID, evalCtx.BranchID)
	assert.Equal(t, 23, evalCtx.WorkingDays)
	assert.Equal(t, 2, evalCtx.ActualWorkingDays)
	assert.Equal(t, 1, evalCtx.AbsentDays)
	assert.Equal(t, 1, evalCtx.LeaveDays)
	assert.True(t, evalCtx.BasicSalary.Equal(decimal.NewFromInt(3000)))
	assert.True(t, evalCtx.OvertimeHours.Equal(decimal.NewFromInt(2)), "overtime hours %s", evalCtx.OvertimeHours)
	assert.True(t, evalCtx.Values["bonus_pool"].Equal(decimal.NewFromInt(500)))
}

func TestContextBuilderInvalidRange(t *testing.T) {
	employees := memory.NewEmployeeRepository()
	seedEmployee(employees, decimal.NewFromInt(3000))

	b := NewContextBuilder(employees, memory.NewAttendanceProvider())
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := b.Build(context.Background(), testCompanyID, testEmployeeID, start, end, nil)
	assert.ErrorIs(t, err, payroll.ErrInvalidDateRange)
}

func TestContextBuilderUnknownEmployee(t *testing.T) {
	b := NewContextBuilder(memory.NewEmployeeRepository(), memory.NewAttendanceProvider())
	start, end := periodBounds(2025, 1)

	_, err := b.Build(context.Background(), testCompanyID, testEmployeeID, start, end, nil)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestWorkingDays(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"january 2025", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 23},
		{"single weekday", time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), 1},
		{"weekend only", time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, workingDays(c.start, c.end))
		})
	}
}

func TestPeriodBounds(t *testing.T) {
	start, end := periodBounds(2025, 2)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), end)

	start, end = periodBounds(2024, 2)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
}
