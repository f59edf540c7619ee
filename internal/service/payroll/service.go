package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/audit"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/employee"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/formula"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type ServiceImpl struct {
	tx        payroll.Transactor
	records   payroll.RecordRepository
	rules     formula.RuleRepository
	employees employee.Repository
	builder   *ContextBuilder
	calc      *Calculator
	audits    audit.Repository

	baseCurrency        string
	defaultOvertimeRate decimal.Decimal
}

func NewService(
	tx payroll.Transactor,
	records payroll.RecordRepository,
	rules formula.RuleRepository,
	employees employee.Repository,
	builder *ContextBuilder,
	calc *Calculator,
	audits audit.Repository,
	baseCurrency string,
	defaultOvertimeRate decimal.Decimal,
) payroll.Service {
	return &ServiceImpl{
		tx:                  tx,
		records:             records,
		rules:               rules,
		employees:           employees,
		builder:             builder,
		calc:                calc,
		audits:              audits,
		baseCurrency:        baseCurrency,
		defaultOvertimeRate: defaultOvertimeRate,
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

	return companyID, userID, nil
}

// ========== CALCULATION ==========

func (s *ServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.CalculationResultResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculationResultResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.CalculationResultResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.PeriodStart)
	end, _ := time.Parse("2006-01-02", req.PeriodEnd)

	result, err := s.calculate(ctx, companyID, req.EmployeeID, start, end, calculationOptions{
		OvertimeRate:    req.OvertimeRate,
		UseCompanyRules: req.UseCompanyRules,
		TargetCurrency:  req.TargetCurrency,
		CustomValues:    req.CustomValues,
	})
	if err != nil {
		return payroll.CalculationResultResponse{}, err
	}

	return mapToCalculationResponse(result), nil
}

type calculationOptions struct {
	OvertimeRate    *decimal.Decimal
	UseCompanyRules *bool
	TargetCurrency  *string
	CustomValues    map[string]decimal.Decimal
}

// calculate builds the evaluation context, resolves the rule set and runs the
// pure calculator. Nothing is persisted.
func (s *ServiceImpl) calculate(ctx context.Context, companyID, employeeID string, start, end time.Time, opts calculationOptions) (payroll.CalculationResult, error) {
	emp, err := s.employees.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return payroll.CalculationResult{}, err
	}
	if emp.BaseSalary == nil || emp.BaseSalary.IsZero() {
		return payroll.CalculationResult{}, payroll.ErrEmployeeHasNoBaseSalary
	}

	evalCtx, err := s.builder.Build(ctx, companyID, employeeID, start, end, opts.CustomValues)
	if err != nil {
		return payroll.CalculationResult{}, err
	}

	useRules := true
	if opts.UseCompanyRules != nil {
		useRules = *opts.UseCompanyRules
	}

	var rules []formula.Rule
	if useRules {
		rules, err = s.rules.GetActiveByCompanyID(ctx, companyID)
		if err != nil {
			return payroll.CalculationResult{}, fmt.Errorf("%w: %v", payroll.ErrRuleEngineFailure, err)
		}
	}

	overtimeRate := s.defaultOvertimeRate
	if opts.OvertimeRate != nil {
		overtimeRate = *opts.OvertimeRate
	}

	recordCurrency := emp.Currency
	if recordCurrency == "" {
		recordCurrency = s.baseCurrency
	}

	return s.calc.Calculate(ctx, CalculationInput{
		Context:        evalCtx,
		Rules:          rules,
		UseRules:       useRules,
		OvertimeRate:   overtimeRate,
		Currency:       recordCurrency,
		TargetCurrency: opts.TargetCurrency,
	}), nil
}

// ========== RECORDS ==========

func (s *ServiceImpl) CreateRecord(ctx context.Context, req payroll.CreateRecordRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	created, err := s.createForEmployee(ctx, companyID, userID, req)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return mapToRecordResponse(created), nil
}

// createForEmployee is the shared create path for single records and branch
// batch runs: calculate, then persist record + audit entry in one
// transaction. The unique (employee, year, month) constraint is enforced at
// creation; a duplicate surfaces as ErrRecordAlreadyExists.
func (s *ServiceImpl) createForEmployee(ctx context.Context, companyID, userID string, req payroll.CreateRecordRequest) (payroll.PayrollRecord, error) {
	// Concurrent creates that pass this check still hit the unique
	// constraint on insert.
	_, err := s.records.GetByEmployeePeriod(ctx, req.EmployeeID, req.PeriodMonth, req.PeriodYear, companyID)
	if err == nil {
		return payroll.PayrollRecord{}, payroll.ErrRecordAlreadyExists
	}
	if !errors.Is(err, payroll.ErrRecordNotFound) {
		return payroll.PayrollRecord{}, err
	}

	start, end := periodBounds(req.PeriodYear, req.PeriodMonth)

	result, err := s.calculate(ctx, companyID, req.EmployeeID, start, end, calculationOptions{
		OvertimeRate:    req.OvertimeRate,
		UseCompanyRules: req.UseCompanyRules,
		TargetCurrency:  req.TargetCurrency,
		CustomValues:    req.CustomValues,
	})
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	record := payroll.PayrollRecord{
		EmployeeID:         req.EmployeeID,
		CompanyID:          companyID,
		BranchID:           emp.BranchID,
		PeriodMonth:        req.PeriodMonth,
		PeriodYear:         req.PeriodYear,
		BasicSalary:        result.BasicSalary,
		OvertimeAmount:     result.OvertimeAmount,
		AllowanceBreakdown: result.AllowanceBreakdown,
		DeductionBreakdown: result.DeductionBreakdown,
		CustomCalculations: result.CustomCalculations,
		TotalAllowances:    result.TotalAllowances,
		TotalDeductions:    result.TotalDeductions,
		GrossSalary:        result.GrossSalary,
		NetSalary:          result.NetSalary,
		Currency:           result.Currency,
		ExchangeRate:       result.ExchangeRate,
		Status:             payroll.RecordStatusCalculated,
		Notes:              req.Notes,
	}

	var created payroll.PayrollRecord
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.records.Create(ctx, record)
		if err != nil {
			return err
		}

		_, err = s.audits.Add(ctx, audit.Entry{
			PayrollRecordID: created.ID,
			EmployeeID:      created.EmployeeID,
			CompanyID:       companyID,
			Action:          audit.ActionRecordCreated,
			Description: fmt.Sprintf("Payroll record created for period %d-%02d",
				created.PeriodYear, created.PeriodMonth),
			UserID:    userID,
			NewValues: recordSnapshot(created),
		})
		return err
	})
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	return created, nil
}

func (s *ServiceImpl) ApproveRecord(ctx context.Context, recordID string) (payroll.RecordResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if userID == "" {
		return payroll.RecordResponse{}, fmt.Errorf("user_id claim is required to approve")
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := s.records.GetByIDForUpdate(ctx, recordID, companyID)
		if err != nil {
			return err
		}
		if record.Status == payroll.RecordStatusApproved {
			return payroll.ErrRecordAlreadyApproved
		}

		now := time.Now()
		if err := s.records.SetApproved(ctx, recordID, companyID, userID, now); err != nil {
			return err
		}

		_, err = s.audits.Add(ctx, audit.Entry{
			PayrollRecordID: record.ID,
			EmployeeID:      record.EmployeeID,
			CompanyID:       companyID,
			Action:          audit.ActionRecordApproved,
			Description: fmt.Sprintf("Payroll record approved for period %d-%02d",
				record.PeriodYear, record.PeriodMonth),
			UserID: userID,
		})
		return err
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return s.GetRecord(ctx, recordID)
}

func (s *ServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	record, err := s.records.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return mapToRecordResponse(record), nil
}

func (s *ServiceImpl) ListRecords(ctx context.Context, filter payroll.RecordFilter) (payroll.ListRecordsResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListRecordsResponse{}, err
	}

	records, totalCount, err := s.records.List(ctx, companyID, filter)
	if err != nil {
		return payroll.ListRecordsResponse{}, err
	}

	data := make([]payroll.RecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, mapToRecordResponse(r))
	}

	return payroll.ListRecordsResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ========== BATCH ==========

func (s *ServiceImpl) ProcessBranchPayroll(ctx context.Context, branchID string, req payroll.BranchPayrollRequest) (payroll.BranchPayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BranchPayrollResponse{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.BranchPayrollResponse{}, err
	}

	employees, err := s.employees.GetActiveByBranchID(ctx, branchID, companyID)
	if err != nil {
		return payroll.BranchPayrollResponse{}, err
	}

	response := payroll.BranchPayrollResponse{
		BranchID:    branchID,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		Items:       make([]payroll.BranchPayrollItem, 0, len(employees)),
	}

	// One employee failing must not abort the run; the failure is that
	// employee's result and no record is created for them.
	for _, emp := range employees {
		item := payroll.BranchPayrollItem{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
		}

		created, err := s.createForEmployee(ctx, companyID, userID, payroll.CreateRecordRequest{
			EmployeeID:  emp.ID,
			PeriodMonth: req.PeriodMonth,
			PeriodYear:  req.PeriodYear,
		})
		if err != nil {
			msg := err.Error()
			item.Error = &msg
			response.Failed++
		} else {
			mapped := mapToRecordResponse(created)
			item.Record = &mapped
			response.Succeeded++
		}

		response.Items = append(response.Items, item)
	}

	return response, nil
}

// ========== SUMMARY ==========

func (s *ServiceImpl) GetSummary(ctx context.Context, month, year int) (payroll.SummaryResponse, error) {
	if month < 1 || month > 12 {
		return payroll.SummaryResponse{}, payroll.ErrInvalidPeriod
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	return s.records.GetSummary(ctx, companyID, month, year)
}

// ========== HELPERS ==========

func recordSnapshot(r payroll.PayrollRecord) map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"basic_salary":     r.BasicSalary,
		"overtime_amount":  r.OvertimeAmount,
		"total_allowances": r.TotalAllowances,
		"total_deductions": r.TotalDeductions,
		"gross_salary":     r.GrossSalary,
		"net_salary":       r.NetSalary,
	}
}

func mapToCalculationResponse(r payroll.CalculationResult) payroll.CalculationResultResponse {
	return payroll.CalculationResultResponse{
		EmployeeID:         r.EmployeeID,
		BasicSalary:        r.BasicSalary,
		OvertimeAmount:     r.OvertimeAmount,
		AllowanceBreakdown: r.AllowanceBreakdown,
		DeductionBreakdown: r.DeductionBreakdown,
		CustomCalculations: r.CustomCalculations,
		TotalAllowances:    r.TotalAllowances,
		TotalDeductions:    r.TotalDeductions,
		GrossSalary:        r.GrossSalary,
		NetSalary:          r.NetSalary,
		Currency:           r.Currency,
		ExchangeRate:       r.ExchangeRate,
		Errors:             r.Errors,
	}
}

func mapToRecordResponse(r payroll.PayrollRecord) payroll.RecordResponse {
	var approvedAtStr *string
	if r.ApprovedAt != nil {
		str := r.ApprovedAt.Format(time.RFC3339)
		approvedAtStr = &str
	}

	return payroll.RecordResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		EmployeeName:       r.EmployeeName,
		EmployeeCode:       r.EmployeeCode,
		BranchID:           r.BranchID,
		PeriodMonth:        r.PeriodMonth,
		PeriodYear:         r.PeriodYear,
		BasicSalary:        r.BasicSalary,
		OvertimeAmount:     r.OvertimeAmount,
		AllowanceBreakdown: r.AllowanceBreakdown,
		DeductionBreakdown: r.DeductionBreakdown,
		CustomCalculations: r.CustomCalculations,
		TotalAllowances:    r.TotalAllowances,
		TotalDeductions:    r.TotalDeductions,
		GrossSalary:        r.GrossSalary,
		NetSalary:          r.NetSalary,
		Currency:           r.Currency,
		ExchangeRate:       r.ExchangeRate,
		Status:             string(r.Status),
		ApprovedBy:         r.ApprovedBy,
		ApprovedAt:         approvedAtStr,
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
	}
}
