package audit

import "github.com/shopspring/decimal"

type EntryResponse struct {
	ID              string                     `json:"id"`
	PayrollRecordID string                     `json:"payroll_record_id"`
	EmployeeID      string                     `json:"employee_id"`
	Action          string                     `json:"action"`
	Description     string                     `json:"description"`
	UserID          string                     `json:"user_id"`
	OldValues       map[string]decimal.Decimal `json:"old_values,omitempty"`
	NewValues       map[string]decimal.Decimal `json:"new_values,omitempty"`
	Reason          *string                    `json:"reason,omitempty"`
	Timestamp       string                     `json:"timestamp"`
}

type ListEntriesResponse struct {
	Data       []EntryResponse `json:"data"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}
