package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// RecordRepository keeps payroll records in a map. Used by tests and local
// development without a database.
type RecordRepository struct {
	mu      sync.RWMutex
	records map[string]payroll.PayrollRecord
}

func NewRecordRepository() *RecordRepository {
	return &RecordRepository{records: make(map[string]payroll.PayrollRecord)}
}

func (r *RecordRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.EmployeeID == record.EmployeeID &&
			existing.PeriodMonth == record.PeriodMonth &&
			existing.PeriodYear == record.PeriodYear {
			return payroll.PayrollRecord{}, payroll.ErrRecordAlreadyExists
		}
	}

	now := time.Now()
	record.ID = uuid.NewString()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.records[record.ID] = record

	return record, nil
}

func (r *RecordRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok || record.CompanyID != companyID {
		return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
	}
	return record, nil
}

func (r *RecordRepository) GetByIDForUpdate(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	return r.GetByID(ctx, id, companyID)
}

func (r *RecordRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.PayrollRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.EmployeeID == employeeID && record.PeriodMonth == month &&
			record.PeriodYear == year && record.CompanyID == companyID {
			return record, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
}

func (r *RecordRepository) List(ctx context.Context, companyID string, filter payroll.RecordFilter) ([]payroll.PayrollRecord, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []payroll.PayrollRecord
	for _, record := range r.records {
		if record.CompanyID != companyID {
			continue
		}
		if filter.PeriodMonth != nil && record.PeriodMonth != *filter.PeriodMonth {
			continue
		}
		if filter.PeriodYear != nil && record.PeriodYear != *filter.PeriodYear {
			continue
		}
		if filter.Status != nil && string(record.Status) != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && record.EmployeeID != *filter.EmployeeID {
			continue
		}
		matched = append(matched, record)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	totalCount := int64(len(matched))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return nil, totalCount, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[offset:end], totalCount, nil
}

func (r *RecordRepository) SetApproved(ctx context.Context, id, companyID, approvedBy string, approvedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.CompanyID != companyID {
		return payroll.ErrRecordNotFound
	}

	record.Status = payroll.RecordStatusApproved
	record.ApprovedBy = &approvedBy
	record.ApprovedAt = &approvedAt
	record.UpdatedAt = time.Now()
	r.records[id] = record

	return nil
}

func (r *RecordRepository) UpdateAmounts(ctx context.Context, record payroll.PayrollRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[record.ID]
	if !ok || existing.CompanyID != record.CompanyID {
		return payroll.ErrRecordNotFound
	}

	existing.BasicSalary = record.BasicSalary
	existing.OvertimeAmount = record.OvertimeAmount
	existing.AllowanceBreakdown = record.AllowanceBreakdown
	existing.DeductionBreakdown = record.DeductionBreakdown
	existing.CustomCalculations = record.CustomCalculations
	existing.TotalAllowances = record.TotalAllowances
	existing.TotalDeductions = record.TotalDeductions
	existing.GrossSalary = record.GrossSalary
	existing.NetSalary = record.NetSalary
	existing.UpdatedAt = time.Now()
	r.records[record.ID] = existing

	return nil
}

func (r *RecordRepository) GetSummary(ctx context.Context, companyID string, month, year int) (payroll.SummaryResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := payroll.SummaryResponse{
		PeriodMonth:     month,
		PeriodYear:      year,
		TotalBasic:      decimal.Zero,
		TotalOvertime:   decimal.Zero,
		TotalAllowances: decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalGross:      decimal.Zero,
		TotalNet:        decimal.Zero,
	}

	for _, record := range r.records {
		if record.CompanyID != companyID || record.PeriodMonth != month || record.PeriodYear != year {
			continue
		}
		summary.TotalEmployees++
		summary.TotalBasic = summary.TotalBasic.Add(record.BasicSalary)
		summary.TotalOvertime = summary.TotalOvertime.Add(record.OvertimeAmount)
		summary.TotalAllowances = summary.TotalAllowances.Add(record.TotalAllowances)
		summary.TotalDeductions = summary.TotalDeductions.Add(record.TotalDeductions)
		summary.TotalGross = summary.TotalGross.Add(record.GrossSalary)
		summary.TotalNet = summary.TotalNet.Add(record.NetSalary)

		switch record.Status {
		case payroll.RecordStatusCalculated:
			summary.CalculatedCount++
		case payroll.RecordStatusApproved:
			summary.ApprovedCount++
		}
	}

	return summary, nil
}
