package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/look4dennis/stride-hr-sub001/internal/domain/employee"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
	branches  map[string]string
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{
		employees: make(map[string]employee.Employee),
		branches:  make(map[string]string),
	}
}

// Seed registers an employee and their branch. Test helper; the payroll
// service itself never writes employees.
func (r *EmployeeRepository) Seed(e employee.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[e.ID] = e
	if e.BranchID != "" {
		r.branches[e.BranchID] = e.CompanyID
	}
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepository) GetActiveByBranchID(ctx context.Context, branchID string, companyID string) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if owner, ok := r.branches[branchID]; !ok || owner != companyID {
		return nil, employee.ErrBranchNotFound
	}

	var matched []employee.Employee
	for _, e := range r.employees {
		if e.BranchID == branchID && e.CompanyID == companyID &&
			e.EmploymentStatus == employee.EmploymentStatusActive {
			matched = append(matched, e)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].EmployeeCode < matched[j].EmployeeCode
	})

	return matched, nil
}
