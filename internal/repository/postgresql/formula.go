package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/formula"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/database"
)

type formulaRepository struct {
	db *database.DB
}

func NewFormulaRepository(db *database.DB) formula.RuleRepository {
	return &formulaRepository{db: db}
}

func (r *formulaRepository) Create(ctx context.Context, rule formula.Rule) (formula.Rule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO formula_rules (company_id, name, type, basis, value, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, company_id, name, type, basis, value, is_active, created_at, updated_at
	`

	var created formula.Rule
	err := q.QueryRow(ctx, query,
		rule.CompanyID, rule.Name, rule.Type, rule.Basis, rule.Value, rule.IsActive,
	).Scan(
		&created.ID, &created.CompanyID, &created.Name, &created.Type, &created.Basis,
		&created.Value, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_formula_rule_name") {
			return formula.Rule{}, formula.ErrRuleNameExists
		}
		return formula.Rule{}, fmt.Errorf("failed to create formula rule: %w", err)
	}

	return created, nil
}

func (r *formulaRepository) GetByID(ctx context.Context, id string, companyID string) (formula.Rule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, type, basis, value, is_active, created_at, updated_at
		FROM formula_rules
		WHERE id = $1 AND company_id = $2
	`

	var rule formula.Rule
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&rule.ID, &rule.CompanyID, &rule.Name, &rule.Type, &rule.Basis,
		&rule.Value, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return formula.Rule{}, formula.ErrRuleNotFound
		}
		return formula.Rule{}, fmt.Errorf("failed to get formula rule: %w", err)
	}

	return rule, nil
}

func (r *formulaRepository) GetActiveByCompanyID(ctx context.Context, companyID string) ([]formula.Rule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, type, basis, value, is_active, created_at, updated_at
		FROM formula_rules
		WHERE company_id = $1 AND is_active = true
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list formula rules: %w", err)
	}
	defer rows.Close()

	var rules []formula.Rule
	for rows.Next() {
		var rule formula.Rule
		err := rows.Scan(
			&rule.ID, &rule.CompanyID, &rule.Name, &rule.Type, &rule.Basis,
			&rule.Value, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan formula rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate formula rules: %w", err)
	}

	return rules, nil
}

func (r *formulaRepository) Deactivate(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE formula_rules
		SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to deactivate formula rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return formula.ErrRuleNotFound
	}

	return nil
}
