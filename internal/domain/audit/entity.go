package audit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action enum - each payroll/correction transition maps to exactly one action.
type Action string

const (
	ActionRecordCreated       Action = "record_created"
	ActionRecordApproved      Action = "record_approved"
	ActionCorrectionRequested Action = "correction_requested"
	ActionCorrectionApproved  Action = "correction_approved"
	ActionCorrectionRejected  Action = "correction_rejected"
	ActionCorrectionProcessed Action = "correction_processed"
	ActionCorrectionCancelled Action = "correction_cancelled"
)

// Entry - one append-only audit trail row. No update or delete exists
// anywhere in the codebase for these.
type Entry struct {
	ID              string
	PayrollRecordID string
	EmployeeID      string
	CompanyID       string
	Action          Action
	Description     string
	UserID          string
	OldValues       map[string]decimal.Decimal
	NewValues       map[string]decimal.Decimal
	Reason          *string
	CreatedAt       time.Time
}
