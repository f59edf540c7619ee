package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordStatus enum
type RecordStatus string

const (
	RecordStatusCalculated RecordStatus = "calculated"
	RecordStatusApproved   RecordStatus = "approved"
)

// PayrollRecord - Persisted calculation result, one per (employee, year, month).
// Created once via calculation; after that it is mutated only by a processed
// error correction, never deleted.
type PayrollRecord struct {
	ID                 string
	EmployeeID         string
	CompanyID          string
	BranchID           string
	PeriodMonth        int
	PeriodYear         int
	BasicSalary        decimal.Decimal
	OvertimeAmount     decimal.Decimal
	AllowanceBreakdown map[string]decimal.Decimal
	DeductionBreakdown map[string]decimal.Decimal
	CustomCalculations map[string]decimal.Decimal
	TotalAllowances    decimal.Decimal
	TotalDeductions    decimal.Decimal
	GrossSalary        decimal.Decimal
	NetSalary          decimal.Decimal
	Currency           string
	ExchangeRate       *decimal.Decimal
	Status             RecordStatus
	ApprovedBy         *string
	ApprovedAt         *time.Time
	Notes              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// CalculationResult - Output of the pure calculator. Not persisted by itself;
// CreateRecord snapshots it into a PayrollRecord.
type CalculationResult struct {
	EmployeeID         string
	BasicSalary        decimal.Decimal
	OvertimeAmount     decimal.Decimal
	AllowanceBreakdown map[string]decimal.Decimal
	DeductionBreakdown map[string]decimal.Decimal
	CustomCalculations map[string]decimal.Decimal
	TotalAllowances    decimal.Decimal
	TotalDeductions    decimal.Decimal
	GrossSalary        decimal.Decimal
	NetSalary          decimal.Decimal
	Currency           string
	ExchangeRate       *decimal.Decimal
	Errors             []string
}
