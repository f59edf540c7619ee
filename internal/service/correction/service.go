package correction

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/audit"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/correction"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/payroll"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ServiceImpl struct {
	tx          payroll.Transactor
	corrections correction.Repository
	records     payroll.RecordRepository
	audits      audit.Repository
}

func NewService(
	tx payroll.Transactor,
	corrections correction.Repository,
	records payroll.RecordRepository,
	audits audit.Repository,
) correction.Service {
	return &ServiceImpl{
		tx:          tx,
		corrections: corrections,
		records:     records,
		audits:      audits,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)
	if userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return companyID, userID, nil
}

// ========== LIFECYCLE ==========

func (s *ServiceImpl) Create(ctx context.Context, req correction.CreateCorrectionRequest) (correction.CreateCorrectionResponse, error) {
	data, err := req.Validate()
	if err != nil {
		return correction.CreateCorrectionResponse{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return correction.CreateCorrectionResponse{}, err
	}

	record, err := s.records.GetByID(ctx, req.PayrollRecordID, companyID)
	if err != nil {
		return correction.CreateCorrectionResponse{}, err
	}

	original := recordFieldValues(record)

	// The preview applies the overrides to the record as it stands today.
	// Processing re-applies them later, against whatever the record holds
	// then.
	corrected, err := applyCorrections(record, data)
	if err != nil {
		return correction.CreateCorrectionResponse{}, err
	}

	now := time.Now()
	c := correction.Correction{
		PayrollRecordID: record.ID,
		EmployeeID:      record.EmployeeID,
		CompanyID:       companyID,
		ErrorType:       correction.ErrorType(req.ErrorType),
		CorrectionData:  data,
		Status:          correction.StatusPending,
		OriginalValues:  original,
		Reason:          req.Reason,
		RequestedBy:     userID,
		RequestedAt:     now,
	}

	var created correction.Correction
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.corrections.Create(ctx, c)
		if err != nil {
			return err
		}

		reason := created.Reason
		_, err = s.audits.Add(ctx, audit.Entry{
			PayrollRecordID: record.ID,
			EmployeeID:      record.EmployeeID,
			CompanyID:       companyID,
			Action:          audit.ActionCorrectionRequested,
			Description:     fmt.Sprintf("Correction requested (%s)", created.ErrorType),
			UserID:          userID,
			OldValues:       fieldsToStringMap(original),
			NewValues:       fieldsToStringMap(data),
			Reason:          &reason,
		})
		return err
	})
	if err != nil {
		return correction.CreateCorrectionResponse{}, err
	}

	return correction.CreateCorrectionResponse{
		Correction: mapToCorrectionResponse(created),
		Changes:    buildChanges(original, corrected),
	}, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	c, err := s.corrections.GetByID(ctx, id, companyID)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	return mapToCorrectionResponse(c), nil
}

func (s *ServiceImpl) ListByRecord(ctx context.Context, payrollRecordID string) ([]correction.CorrectionResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	corrections, err := s.corrections.ListByRecord(ctx, payrollRecordID, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]correction.CorrectionResponse, 0, len(corrections))
	for _, c := range corrections {
		responses = append(responses, mapToCorrectionResponse(c))
	}
	return responses, nil
}

// ========== DECISIONS ==========

func (s *ServiceImpl) Approve(ctx context.Context, id string, req correction.DecisionRequest) (correction.CorrectionResponse, error) {
	return s.decide(ctx, id, req, correction.StatusApproved, audit.ActionCorrectionApproved, "Correction approved")
}

func (s *ServiceImpl) Reject(ctx context.Context, id string, req correction.DecisionRequest) (correction.CorrectionResponse, error) {
	return s.decide(ctx, id, req, correction.StatusRejected, audit.ActionCorrectionRejected, "Correction rejected")
}

// decide handles the pending -> approved/rejected transitions. Both require
// the correction to still be pending.
func (s *ServiceImpl) decide(ctx context.Context, id string, req correction.DecisionRequest, target correction.Status, action audit.Action, description string) (correction.CorrectionResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	var updated correction.Correction
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.corrections.GetByIDForUpdate(ctx, id, companyID)
		if err != nil {
			return err
		}
		if c.Status.Terminal() {
			return correction.ErrCorrectionTerminal
		}
		if c.Status != correction.StatusPending {
			return correction.ErrCorrectionNotPending
		}

		now := time.Now()
		c.Status = target
		c.ApprovedBy = &userID
		c.ApprovedAt = &now
		if req.Notes != nil {
			c.Notes = req.Notes
		}

		updated, err = s.corrections.Update(ctx, c)
		if err != nil {
			return err
		}

		_, err = s.audits.Add(ctx, audit.Entry{
			PayrollRecordID: c.PayrollRecordID,
			EmployeeID:      c.EmployeeID,
			CompanyID:       companyID,
			Action:          action,
			Description:     description,
			UserID:          userID,
			Reason:          req.Reason,
		})
		return err
	})
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	return mapToCorrectionResponse(updated), nil
}

func (s *ServiceImpl) Process(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	var updated correction.Correction
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.corrections.GetByIDForUpdate(ctx, id, companyID)
		if err != nil {
			return err
		}
		if c.Status != correction.StatusApproved {
			if c.Status.Terminal() {
				return correction.ErrCorrectionTerminal
			}
			return correction.ErrCorrectionNotApproved
		}

		record, err := s.records.GetByIDForUpdate(ctx, c.PayrollRecordID, companyID)
		if err != nil {
			return err
		}

		before := recordFieldValues(record)

		// Overrides are applied to the record as it stands now, not as it
		// stood at request time. Totals are recomputed from the corrected
		// components.
		corrected, err := applyCorrections(record, c.CorrectionData)
		if err != nil {
			return err
		}

		record.BasicSalary = corrected[correction.FieldBasicSalary]
		record.OvertimeAmount = corrected[correction.FieldOvertimeAmount]
		record.TotalAllowances = corrected[correction.FieldTotalAllowances]
		record.TotalDeductions = corrected[correction.FieldTotalDeductions]
		record.GrossSalary = corrected[correction.FieldGrossSalary]
		record.NetSalary = corrected[correction.FieldNetSalary]

		if err := s.records.UpdateAmounts(ctx, record); err != nil {
			return err
		}

		now := time.Now()
		c.Status = correction.StatusProcessed
		c.CorrectedValues = corrected
		c.ProcessedBy = &userID
		c.ProcessedAt = &now

		updated, err = s.corrections.Update(ctx, c)
		if err != nil {
			return err
		}

		_, err = s.audits.Add(ctx, audit.Entry{
			PayrollRecordID: c.PayrollRecordID,
			EmployeeID:      c.EmployeeID,
			CompanyID:       companyID,
			Action:          audit.ActionCorrectionProcessed,
			Description:     "Correction processed and applied to payroll record",
			UserID:          userID,
			OldValues:       fieldsToStringMap(before),
			NewValues:       fieldsToStringMap(corrected),
		})
		return err
	})
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	return mapToCorrectionResponse(updated), nil
}

func (s *ServiceImpl) Cancel(ctx context.Context, id string, req correction.DecisionRequest) (correction.CorrectionResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	var updated correction.Correction
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.corrections.GetByIDForUpdate(ctx, id, companyID)
		if err != nil {
			return err
		}
		if c.Status.Terminal() {
			return correction.ErrCorrectionTerminal
		}

		c.Status = correction.StatusCancelled
		if req.Notes != nil {
			c.Notes = req.Notes
		}

		updated, err = s.corrections.Update(ctx, c)
		if err != nil {
			return err
		}

		_, err = s.audits.Add(ctx, audit.Entry{
			PayrollRecordID: c.PayrollRecordID,
			EmployeeID:      c.EmployeeID,
			CompanyID:       companyID,
			Action:          audit.ActionCorrectionCancelled,
			Description:     "Correction cancelled",
			UserID:          userID,
			Reason:          req.Reason,
		})
		return err
	})
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	return mapToCorrectionResponse(updated), nil
}

// ========== HELPERS ==========

func recordFieldValues(r payroll.PayrollRecord) map[correction.Field]decimal.Decimal {
	return map[correction.Field]decimal.Decimal{
		correction.FieldBasicSalary:     r.BasicSalary,
		correction.FieldOvertimeAmount:  r.OvertimeAmount,
		correction.FieldTotalAllowances: r.TotalAllowances,
		correction.FieldTotalDeductions: r.TotalDeductions,
		correction.FieldGrossSalary:     r.GrossSalary,
		correction.FieldNetSalary:       r.NetSalary,
	}
}

// applyCorrections overlays the component overrides on the record and
// recomputes the derived totals. Explicit gross/net overrides are accepted
// only when they agree with the recomputed values.
func applyCorrections(record payroll.PayrollRecord, data map[correction.Field]decimal.Decimal) (map[correction.Field]decimal.Decimal, error) {
	basic := record.BasicSalary
	overtime := record.OvertimeAmount
	allowances := record.TotalAllowances
	deductions := record.TotalDeductions

	if v, ok := data[correction.FieldBasicSalary]; ok {
		basic = v
	}
	if v, ok := data[correction.FieldOvertimeAmount]; ok {
		overtime = v
	}
	if v, ok := data[correction.FieldTotalAllowances]; ok {
		allowances = v
	}
	if v, ok := data[correction.FieldTotalDeductions]; ok {
		deductions = v
	}

	gross := basic.Add(allowances).Add(overtime)
	net := gross.Sub(deductions)

	var errs validator.ValidationErrors
	if v, ok := data[correction.FieldGrossSalary]; ok && !v.Equal(gross) {
		errs = append(errs, validator.ValidationError{
			Field:   "correction_data.gross_salary",
			Message: "must equal basic_salary + total_allowances + overtime_amount",
		})
	}
	if v, ok := data[correction.FieldNetSalary]; ok && !v.Equal(net) {
		errs = append(errs, validator.ValidationError{
			Field:   "correction_data.net_salary",
			Message: "must equal gross_salary - total_deductions",
		})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return map[correction.Field]decimal.Decimal{
		correction.FieldBasicSalary:     basic,
		correction.FieldOvertimeAmount:  overtime,
		correction.FieldTotalAllowances: allowances,
		correction.FieldTotalDeductions: deductions,
		correction.FieldGrossSalary:     gross,
		correction.FieldNetSalary:       net,
	}, nil
}

// buildChanges lists the fields the correction would actually move, in a
// stable order, with the per-field impact.
func buildChanges(original, corrected map[correction.Field]decimal.Decimal) []correction.Change {
	changes := make([]correction.Change, 0, len(correction.CorrectableFields))
	for _, f := range correction.CorrectableFields {
		oldValue := original[f]
		newValue := corrected[f]
		if oldValue.Equal(newValue) {
			continue
		}
		changes = append(changes, correction.Change{
			Field:    string(f),
			OldValue: oldValue,
			NewValue: newValue,
			Impact:   newValue.Sub(oldValue),
		})
	}
	return changes
}

func fieldsToStringMap(m map[correction.Field]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(m))
	for f, v := range m {
		out[string(f)] = v
	}
	return out
}

func mapToCorrectionResponse(c correction.Correction) correction.CorrectionResponse {
	resp := correction.CorrectionResponse{
		ID:              c.ID,
		PayrollRecordID: c.PayrollRecordID,
		EmployeeID:      c.EmployeeID,
		ErrorType:       string(c.ErrorType),
		CorrectionData:  fieldsToStringMap(c.CorrectionData),
		Status:          string(c.Status),
		OriginalValues:  fieldsToStringMap(c.OriginalValues),
		Reason:          c.Reason,
		Notes:           c.Notes,
		RequestedBy:     c.RequestedBy,
		RequestedAt:     c.RequestedAt.Format(time.RFC3339),
	}
	if c.CorrectedValues != nil {
		resp.CorrectedValues = fieldsToStringMap(c.CorrectedValues)
	}
	if c.ApprovedBy != nil {
		resp.ApprovedBy = c.ApprovedBy
	}
	if c.ApprovedAt != nil {
		str := c.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &str
	}
	if c.ProcessedBy != nil {
		resp.ProcessedBy = c.ProcessedBy
	}
	if c.ProcessedAt != nil {
		str := c.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &str
	}
	return resp
}
