package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/payroll"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.RecordRepository {
	return &payrollRepository{db: db}
}

const recordColumns = `
	pr.id, pr.employee_id, pr.company_id, pr.branch_id, pr.period_month, pr.period_year,
	pr.basic_salary, pr.overtime_amount,
	pr.allowance_breakdown, pr.deduction_breakdown, pr.custom_calculations,
	pr.total_allowances, pr.total_deductions, pr.gross_salary, pr.net_salary,
	pr.currency, pr.exchange_rate, pr.status, pr.approved_by, pr.approved_at,
	pr.notes, pr.created_at, pr.updated_at,
	e.full_name, e.employee_code`

func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	allowances, err := json.Marshal(record.AllowanceBreakdown)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to marshal allowance breakdown: %w", err)
	}
	deductions, err := json.Marshal(record.DeductionBreakdown)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to marshal deduction breakdown: %w", err)
	}
	custom, err := json.Marshal(record.CustomCalculations)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to marshal custom calculations: %w", err)
	}

	query := `
		INSERT INTO payroll_records (
			employee_id, company_id, branch_id, period_month, period_year,
			basic_salary, overtime_amount,
			allowance_breakdown, deduction_breakdown, custom_calculations,
			total_allowances, total_deductions, gross_salary, net_salary,
			currency, exchange_rate, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		record.EmployeeID, record.CompanyID, record.BranchID, record.PeriodMonth, record.PeriodYear,
		record.BasicSalary, record.OvertimeAmount,
		allowances, deductions, custom,
		record.TotalAllowances, record.TotalDeductions, record.GrossSalary, record.NetSalary,
		record.Currency, record.ExchangeRate, record.Status, record.Notes,
	).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_record_period") {
			return payroll.PayrollRecord{}, payroll.ErrRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return r.GetByID(ctx, id, record.CompanyID)
}

func (r *payrollRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_records pr
		LEFT JOIN employees e ON e.id = pr.employee_id
		WHERE pr.id = $1 AND pr.company_id = $2
	`, recordColumns)

	return r.getOne(ctx, query, id, companyID)
}

func (r *payrollRepository) GetByIDForUpdate(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_records pr
		LEFT JOIN employees e ON e.id = pr.employee_id
		WHERE pr.id = $1 AND pr.company_id = $2
		FOR UPDATE OF pr
	`, recordColumns)

	return r.getOne(ctx, query, id, companyID)
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.PayrollRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_records pr
		LEFT JOIN employees e ON e.id = pr.employee_id
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3 AND pr.company_id = $4
	`, recordColumns)

	return r.getOne(ctx, query, employeeID, month, year, companyID)
}

func (r *payrollRepository) getOne(ctx context.Context, query string, args ...any) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	record, err := scanRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

func (r *payrollRepository) List(ctx context.Context, companyID string, filter payroll.RecordFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"pr.company_id = $1"}
	args := []any{companyID}

	if filter.PeriodMonth != nil {
		args = append(args, *filter.PeriodMonth)
		conditions = append(conditions, fmt.Sprintf("pr.period_month = $%d", len(args)))
	}
	if filter.PeriodYear != nil {
		args = append(args, *filter.PeriodYear)
		conditions = append(conditions, fmt.Sprintf("pr.period_year = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("pr.status = $%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("pr.employee_id = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var totalCount int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM payroll_records pr WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	sortBy := "created_at"
	switch filter.SortBy {
	case "period", "net_salary", "gross_salary", "created_at":
		sortBy = filter.SortBy
	}
	if sortBy == "period" {
		sortBy = "period_year, pr.period_month"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_records pr
		LEFT JOIN employees e ON e.id = pr.employee_id
		WHERE %s
		ORDER BY pr.%s %s
		LIMIT $%d OFFSET $%d
	`, recordColumns, where, sortBy, sortOrder, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, totalCount, nil
}

func (r *payrollRepository) SetApproved(ctx context.Context, id, companyID, approvedBy string, approvedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = $1, approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5
	`

	tag, err := q.Exec(ctx, query, payroll.RecordStatusApproved, approvedBy, approvedAt, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to approve payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

func (r *payrollRepository) UpdateAmounts(ctx context.Context, record payroll.PayrollRecord) error {
	q := GetQuerier(ctx, r.db)

	allowances, err := json.Marshal(record.AllowanceBreakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal allowance breakdown: %w", err)
	}
	deductions, err := json.Marshal(record.DeductionBreakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal deduction breakdown: %w", err)
	}
	custom, err := json.Marshal(record.CustomCalculations)
	if err != nil {
		return fmt.Errorf("failed to marshal custom calculations: %w", err)
	}

	query := `
		UPDATE payroll_records
		SET basic_salary = $1, overtime_amount = $2,
			allowance_breakdown = $3, deduction_breakdown = $4, custom_calculations = $5,
			total_allowances = $6, total_deductions = $7,
			gross_salary = $8, net_salary = $9, updated_at = NOW()
		WHERE id = $10 AND company_id = $11
	`

	tag, err := q.Exec(ctx, query,
		record.BasicSalary, record.OvertimeAmount,
		allowances, deductions, custom,
		record.TotalAllowances, record.TotalDeductions,
		record.GrossSalary, record.NetSalary,
		record.ID, record.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll record amounts: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}

	return nil
}

func (r *payrollRepository) GetSummary(ctx context.Context, companyID string, month, year int) (payroll.SummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(basic_salary), 0),
			COALESCE(SUM(overtime_amount), 0),
			COALESCE(SUM(total_allowances), 0),
			COALESCE(SUM(total_deductions), 0),
			COALESCE(SUM(gross_salary), 0),
			COALESCE(SUM(net_salary), 0),
			COUNT(*) FILTER (WHERE status = 'calculated'),
			COUNT(*) FILTER (WHERE status = 'approved')
		FROM payroll_records
		WHERE company_id = $1 AND period_month = $2 AND period_year = $3
	`

	summary := payroll.SummaryResponse{PeriodMonth: month, PeriodYear: year}
	err := q.QueryRow(ctx, query, companyID, month, year).Scan(
		&summary.TotalEmployees,
		&summary.TotalBasic, &summary.TotalOvertime,
		&summary.TotalAllowances, &summary.TotalDeductions,
		&summary.TotalGross, &summary.TotalNet,
		&summary.CalculatedCount, &summary.ApprovedCount,
	)
	if err != nil {
		return payroll.SummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	return summary, nil
}

func scanRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var record payroll.PayrollRecord
	var allowances, deductions, custom []byte

	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.CompanyID, &record.BranchID,
		&record.PeriodMonth, &record.PeriodYear,
		&record.BasicSalary, &record.OvertimeAmount,
		&allowances, &deductions, &custom,
		&record.TotalAllowances, &record.TotalDeductions,
		&record.GrossSalary, &record.NetSalary,
		&record.Currency, &record.ExchangeRate, &record.Status,
		&record.ApprovedBy, &record.ApprovedAt,
		&record.Notes, &record.CreatedAt, &record.UpdatedAt,
		&record.EmployeeName, &record.EmployeeCode,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	if err := unmarshalBreakdown(allowances, &record.AllowanceBreakdown); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal allowance breakdown: %w", err)
	}
	if err := unmarshalBreakdown(deductions, &record.DeductionBreakdown); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal deduction breakdown: %w", err)
	}
	if err := unmarshalBreakdown(custom, &record.CustomCalculations); err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to unmarshal custom calculations: %w", err)
	}

	return record, nil
}

func unmarshalBreakdown(data []byte, dst *map[string]decimal.Decimal) error {
	if len(data) == 0 {
		*dst = map[string]decimal.Decimal{}
		return nil
	}
	return json.Unmarshal(data, dst)
}
