package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/correction"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) correction.Repository {
	return &correctionRepository{db: db}
}

const correctionColumns = `
	id, payroll_record_id, employee_id, company_id, error_type,
	correction_data, status, original_values, corrected_values,
	reason, notes, requested_by, requested_at,
	approved_by, approved_at, processed_by, processed_at,
	created_at, updated_at`

func (r *correctionRepository) Create(ctx context.Context, c correction.Correction) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	data, err := json.Marshal(c.CorrectionData)
	if err != nil {
		return correction.Correction{}, fmt.Errorf("failed to marshal correction data: %w", err)
	}
	original, err := json.Marshal(c.OriginalValues)
	if err != nil {
		return correction.Correction{}, fmt.Errorf("failed to marshal original values: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO payroll_corrections (
			payroll_record_id, employee_id, company_id, error_type,
			correction_data, status, original_values,
			reason, notes, requested_by, requested_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s
	`, correctionColumns)

	created, err := scanCorrection(q.QueryRow(ctx, query,
		c.PayrollRecordID, c.EmployeeID, c.CompanyID, c.ErrorType,
		data, c.Status, original,
		c.Reason, c.Notes, c.RequestedBy, c.RequestedAt,
	))
	if err != nil {
		return correction.Correction{}, fmt.Errorf("failed to create correction: %w", err)
	}

	return created, nil
}

func (r *correctionRepository) GetByID(ctx context.Context, id string, companyID string) (correction.Correction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_corrections
		WHERE id = $1 AND company_id = $2
	`, correctionColumns)

	return r.getOne(ctx, query, id, companyID)
}

func (r *correctionRepository) GetByIDForUpdate(ctx context.Context, id string, companyID string) (correction.Correction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_corrections
		WHERE id = $1 AND company_id = $2
		FOR UPDATE
	`, correctionColumns)

	return r.getOne(ctx, query, id, companyID)
}

func (r *correctionRepository) getOne(ctx context.Context, query string, args ...any) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCorrection(q.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return correction.Correction{}, correction.ErrCorrectionNotFound
		}
		return correction.Correction{}, fmt.Errorf("failed to get correction: %w", err)
	}

	return c, nil
}

func (r *correctionRepository) ListByRecord(ctx context.Context, payrollRecordID string, companyID string) ([]correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_corrections
		WHERE payroll_record_id = $1 AND company_id = $2
		ORDER BY requested_at DESC
	`, correctionColumns)

	rows, err := q.Query(ctx, query, payrollRecordID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}
	defer rows.Close()

	var corrections []correction.Correction
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corrections: %w", err)
	}

	return corrections, nil
}

func (r *correctionRepository) Update(ctx context.Context, c correction.Correction) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	var corrected []byte
	if c.CorrectedValues != nil {
		var err error
		corrected, err = json.Marshal(c.CorrectedValues)
		if err != nil {
			return correction.Correction{}, fmt.Errorf("failed to marshal corrected values: %w", err)
		}
	}

	query := fmt.Sprintf(`
		UPDATE payroll_corrections
		SET status = $1, corrected_values = $2, notes = $3,
			approved_by = $4, approved_at = $5,
			processed_by = $6, processed_at = $7,
			updated_at = NOW()
		WHERE id = $8 AND company_id = $9
		RETURNING %s
	`, correctionColumns)

	updated, err := scanCorrection(q.QueryRow(ctx, query,
		c.Status, corrected, c.Notes,
		c.ApprovedBy, c.ApprovedAt,
		c.ProcessedBy, c.ProcessedAt,
		c.ID, c.CompanyID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return correction.Correction{}, correction.ErrCorrectionNotFound
		}
		return correction.Correction{}, fmt.Errorf("failed to update correction: %w", err)
	}

	return updated, nil
}

func scanCorrection(row pgx.Row) (correction.Correction, error) {
	var c correction.Correction
	var data, original, corrected []byte

	err := row.Scan(
		&c.ID, &c.PayrollRecordID, &c.EmployeeID, &c.CompanyID, &c.ErrorType,
		&data, &c.Status, &original, &corrected,
		&c.Reason, &c.Notes, &c.RequestedBy, &c.RequestedAt,
		&c.ApprovedBy, &c.ApprovedAt, &c.ProcessedBy, &c.ProcessedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return correction.Correction{}, err
	}

	if err := unmarshalFieldMap(data, &c.CorrectionData); err != nil {
		return correction.Correction{}, fmt.Errorf("failed to unmarshal correction data: %w", err)
	}
	if err := unmarshalFieldMap(original, &c.OriginalValues); err != nil {
		return correction.Correction{}, fmt.Errorf("failed to unmarshal original values: %w", err)
	}
	if len(corrected) > 0 {
		if err := json.Unmarshal(corrected, &c.CorrectedValues); err != nil {
			return correction.Correction{}, fmt.Errorf("failed to unmarshal corrected values: %w", err)
		}
	}

	return c, nil
}

func unmarshalFieldMap(data []byte, dst *map[correction.Field]decimal.Decimal) error {
	if len(data) == 0 {
		*dst = map[correction.Field]decimal.Decimal{}
		return nil
	}
	return json.Unmarshal(data, dst)
}
