package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/look4dennis/stride-hr-sub001/internal/domain/audit"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/database"
	"github.com/shopspring/decimal"
)

// The audit trail is append-only: this repository exposes no update or
// delete, and the table carries no updated_at.
type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Add(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	oldValues, err := marshalValues(entry.OldValues)
	if err != nil {
		return audit.Entry{}, fmt.Errorf("failed to marshal old values: %w", err)
	}
	newValues, err := marshalValues(entry.NewValues)
	if err != nil {
		return audit.Entry{}, fmt.Errorf("failed to marshal new values: %w", err)
	}

	query := `
		INSERT INTO payroll_audit_entries (
			payroll_record_id, employee_id, company_id, action, description,
			user_id, old_values, new_values, reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err = q.QueryRow(ctx, query,
		entry.PayrollRecordID, entry.EmployeeID, entry.CompanyID, entry.Action, entry.Description,
		entry.UserID, oldValues, newValues, entry.Reason,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return audit.Entry{}, fmt.Errorf("failed to add audit entry: %w", err)
	}

	return entry, nil
}

func (r *auditRepository) List(ctx context.Context, companyID string, filter audit.Filter) ([]audit.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1"}
	args := []any{companyID}

	if filter.PayrollRecordID != nil {
		args = append(args, *filter.PayrollRecordID)
		conditions = append(conditions, fmt.Sprintf("payroll_record_id = $%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.Action != nil {
		args = append(args, *filter.Action)
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var totalCount int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM payroll_audit_entries WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT id, payroll_record_id, employee_id, company_id, action, description,
			   user_id, old_values, new_values, reason, created_at
		FROM payroll_audit_entries
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var oldValues, newValues []byte

		err := rows.Scan(
			&e.ID, &e.PayrollRecordID, &e.EmployeeID, &e.CompanyID, &e.Action, &e.Description,
			&e.UserID, &oldValues, &newValues, &e.Reason, &e.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		if len(oldValues) > 0 {
			if err := json.Unmarshal(oldValues, &e.OldValues); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal old values: %w", err)
			}
		}
		if len(newValues) > 0 {
			if err := json.Unmarshal(newValues, &e.NewValues); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal new values: %w", err)
			}
		}

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate audit entries: %w", err)
	}

	return entries, totalCount, nil
}

func marshalValues(values map[string]decimal.Decimal) ([]byte, error) {
	if values == nil {
		return nil, nil
	}
	return json.Marshal(values)
}
