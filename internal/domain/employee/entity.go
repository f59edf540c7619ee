package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee - the slice of the employee record payroll needs. Employee CRUD
// belongs to another service; this one only reads.
type Employee struct {
	ID               string
	CompanyID        string
	BranchID         string
	EmployeeCode     string
	FullName         string
	EmploymentStatus EmploymentStatus
	BaseSalary       *decimal.Decimal
	Currency         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
