package attendance

import "time"

// DayStatus enum
type DayStatus string

const (
	StatusPresent DayStatus = "present"
	StatusLate    DayStatus = "late"
	StatusAbsent  DayStatus = "absent"
	StatusLeave   DayStatus = "leave"
)

// Day - one attendance fact consumed by the evaluation context builder.
// Attendance capture itself (clock in/out, schedules, approval) lives outside
// this service; we only read the facts.
type Day struct {
	EmployeeID      string
	Date            time.Time
	Status          DayStatus
	OvertimeMinutes int
}
