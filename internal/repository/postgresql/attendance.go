package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/look4dennis/stride-hr-sub001/internal/domain/attendance"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/database"
)

// Read-only view over the attendance_days table maintained by the attendance
// service.
type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Provider {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Day, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, date, status, overtime_minutes
		FROM attendance_days
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance range: %w", err)
	}
	defer rows.Close()

	var days []attendance.Day
	for rows.Next() {
		var d attendance.Day
		if err := rows.Scan(&d.EmployeeID, &d.Date, &d.Status, &d.OvertimeMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan attendance day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance days: %w", err)
	}

	return days, nil
}
