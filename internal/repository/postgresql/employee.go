package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/employee"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/database"
)

// Read-only view over the employees table. Payroll never writes employees.
type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, branch_id, employee_code, full_name,
			   employment_status, base_salary, currency, created_at, updated_at
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&e.ID, &e.CompanyID, &e.BranchID, &e.EmployeeCode, &e.FullName,
		&e.EmploymentStatus, &e.BaseSalary, &e.Currency, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetActiveByBranchID(ctx context.Context, branchID string, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM branches WHERE id = $1 AND company_id = $2)`,
		branchID, companyID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check branch: %w", err)
	}
	if !exists {
		return nil, employee.ErrBranchNotFound
	}

	query := `
		SELECT id, company_id, branch_id, employee_code, full_name,
			   employment_status, base_salary, currency, created_at, updated_at
		FROM employees
		WHERE branch_id = $1 AND company_id = $2 AND employment_status = 'active'
		ORDER BY employee_code ASC
	`

	rows, err := q.Query(ctx, query, branchID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branch employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		err := rows.Scan(
			&e.ID, &e.CompanyID, &e.BranchID, &e.EmployeeCode, &e.FullName,
			&e.EmploymentStatus, &e.BaseSalary, &e.Currency, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
