package correction

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/audit"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/correction"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/payroll"
	"github.com/look4dennis/stride-hr-sub001/internal/pkg/validator"
	"github.com/look4dennis/stride-hr-sub001/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID  = "11111111-1111-1111-1111-111111111111"
	testEmployeeID = "33333333-3333-3333-3333-333333333333"
	testUserID     = "44444444-4444-4444-4444-444444444444"
)

type fixture struct {
	service     correction.Service
	records     *memory.RecordRepository
	corrections *memory.CorrectionRepository
	audits      *memory.AuditRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	records := memory.NewRecordRepository()
	corrections := memory.NewCorrectionRepository()
	audits := memory.NewAuditRepository()

	return &fixture{
		service:     NewService(memory.NewTransactor(), corrections, records, audits),
		records:     records,
		corrections: corrections,
		audits:      audits,
	}
}

func claimsContext(t *testing.T, companyID, userID string) context.Context {
	t.Helper()

	token, err := jwt.NewBuilder().
		Claim("company_id", companyID).
		Claim("user_id", userID).
		Build()
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

// seedRecord stores a calculated record with a 3000 basic and nothing else.
func (f *fixture) seedRecord(t *testing.T) payroll.PayrollRecord {
	t.Helper()

	record, err := f.records.Create(context.Background(), payroll.PayrollRecord{
		EmployeeID:         testEmployeeID,
		CompanyID:          testCompanyID,
		BranchID:           "22222222-2222-2222-2222-222222222222",
		PeriodMonth:        1,
		PeriodYear:         2025,
		BasicSalary:        decimal.NewFromInt(3000),
		OvertimeAmount:     decimal.Zero,
		AllowanceBreakdown: map[string]decimal.Decimal{},
		DeductionBreakdown: map[string]decimal.Decimal{},
		TotalAllowances:    decimal.Zero,
		TotalDeductions:    decimal.Zero,
		GrossSalary:        decimal.NewFromInt(3000),
		NetSalary:          decimal.NewFromInt(3000),
		Currency:           "USD",
		Status:             payroll.RecordStatusCalculated,
	})
	require.NoError(t, err)
	return record
}

func (f *fixture) request(t *testing.T, ctx context.Context, recordID string, data map[string]decimal.Decimal) correction.CreateCorrectionResponse {
	t.Helper()

	resp, err := f.service.Create(ctx, correction.CreateCorrectionRequest{
		PayrollRecordID: recordID,
		ErrorType:       string(correction.ErrorTypeDataEntry),
		CorrectionData:  data,
		Reason:          "wrong basic salary entered",
	})
	require.NoError(t, err)
	return resp
}

func (f *fixture) auditCount(t *testing.T, ctx context.Context, action audit.Action) int64 {
	t.Helper()
	_, total, err := f.audits.List(ctx, testCompanyID, audit.Filter{Action: &action, Page: 1, Limit: 100})
	require.NoError(t, err)
	return total
}

func TestCreateCorrectionPreview(t *testing.T) {
	f := newFixture(t)
	ctx := claimsContext(t, testCompanyID, testUserID)
	record := f.seedRecord(t)

	// CamelCase keys from upstream clients are accepted.
	resp := f.request(t, ctx, record.ID, map[string]decimal.Decimal{
		"BasicSalary": decimal.NewFromInt(3200),
	})

	assert.Equal(t, string(correction.StatusPending), resp.Correction.Status)
	assert.Equal(t, testUserID, resp.Correction.RequestedBy)
	assert.True(t, resp.Correction.OriginalValues["basic_salary"].Equal(decimal.NewFromInt(3000)))
	assert.Empty(t, resp.Correction.CorrectedValues)

	// Preview: basic, gross and net all move by +200.
	require.Len(t, resp.Changes, 3)
	byField := map[string]correction.Change{}
	for _, ch := range resp.Changes {
		byField[ch.Field] = ch
	}
	basic := byField["basic_salary"]
	assert.True(t, basic.OldValue.Equal(decimal.NewFromInt(3000)))
	assert.True(t, basic.NewValue.Equal(decimal.NewFromInt(3200)))
	assert.True(t, basic.Impact.Equal(decimal.NewFromInt(200)))
	assert.True(t, byField["gross_salary"].NewValue.Equal(decimal.NewFromInt(3200)))
	assert.True(t, byField["net_salary"].NewValue.Equal(decimal.NewFromInt(3200)))

	// The record itself is untouched until the correction is processed.
	stored, err := f.records.GetByID(ctx, record.ID, testCompanyID)
	require.NoError(t, err)
	assert.True(t, stored.BasicSalary.Equal(decimal.NewFromInt(3000)))

	assert.EqualValues(t, 1, f.auditCount(t, ctx, audit.ActionCorrectionRequested))
}

func TestCreateCorrectionRejectsUnknownField(t *testing.T) {
	f := newFixture(t)
	ctx := claimsContext(t, testCompanyID, testUserID)
	record := f.seedRecord(t)

	_, err := f.service.Create(ctx, correction.CreateCorrectionRequest{
		PayrollRecordID: record.ID,
		ErrorType:       string(correction.ErrorTypeDataEntry),
		CorrectionData: map[string]decimal.Decimal{
			"bonus_pool": decimal.NewFromInt(500),
		},
		Reason: "adjust bonus",
	})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "correction_data.bonus_pool")
}

func TestCreateCorrectionInconsistentTotals(t *testing.T) {
	f := newFixture(t)
	ctx := claimsContext(t, testCompanyID, testUserID)
	record := f.seedRecord(t)

	_, err := f.service.Create(ctx, correction.CreateCorrectionRequest{
		PayrollRecordID: record.ID,
		ErrorType:       string(correction.ErrorTypeCalculation),
		CorrectionData: map[string]decimal.Decimal{
			"basic_salary": decimal.NewFromInt(3200),
			"gross_salary": decimal.NewFromInt(9999),
		},
		Reason: "fix totals",
	})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "correction_data.gross_salary")
}

func TestApproveRequiresPending(t *testing.T) {
	f := newFixture(t)
	ctx := claimsContext(t, testCompanyID, testUserID)
	record := f.seedRecord(t)
	resp := f.request(t, ctx, record.ID, map[string]decimal.Decimal{"basic_salary": decimal.NewFromInt(3200)})

	approved, err := f.service.Approve(ctx, resp.Correction.ID, correction.DecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(correction.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, testUserID, *approved.ApprovedBy)

	// A second approval must fail; approved is not pending.
	_, err = f.service.Approve(ctx, resp.Correction.ID, correction.DecisionRequest{})
	assert.ErrorIs(t, err, correction.ErrCorrectionNotPending)
	assert.EqualValues(t, 1, f.auditCount(t, ctx, audit.ActionCorrectionApproved))
}

func TestRejectIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := claimsContext(t, testCompanyID, testUserID)
	record := f.seedRecord(t)
	resp := f.request(t, ctx, record.ID, map[string]decimal.Decimal{"basic_salary": decimal.NewFromInt(3200)})

	reason := "numbers are actually correct"
	rejected, err := f.service.Reject(ctx, resp.Correction.ID, correction.DecisionRequest{Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, string(correction.StatusRejected), rejected.Status)

	_, err = f.service.Approve(ctx, resp.Correction.ID, correction.DecisionRequest{})
	assert.ErrorIs(t, err, correction.ErrCorrectionTerminal)
	_, err = f.service.Process(ctx, resp.Correction.ID)
	assert.ErrorIs(t, err, correction.ErrCorrectionTerminal)
	_, err = f.service.Cancel(ctx, resp.Correction.ID, correction.DecisionRequest{})
	assert.ErrorIs(t, err, correction.ErrCorrectionTerminal)

	// The record never changed.
	stored, err := f.records.GetByID(ctx, record.ID, testCompanyID)
	require.NoError(t, err)
	assert.True(t, stored.BasicSalary.Equal(decimal.NewFromInt(3000)))
}

func TestProcessAppliesCorrection(t *testing.T) {
	f := newFixture(t)
	ctx := claimsContext(t, testCompanyID, testUserID)
	record := f.seedRecord(t)
	resp := f.request(t, ctx, record.ID, map[string]decimal.Decimal{"basic_salary": decimal.NewFromInt(3200)})

	// Pending corrections cannot be processed.
	_, err := f.service.Process(ctx, resp.Correction.ID)
	assert.ErrorIs(t, err, correction.ErrCorrectionNotApproved)

	_, err = f.service.Approve(ctx, resp.Correction.ID, correction.DecisionRequest{})
	require.NoError(t, err)

	processed, err := f.service.Process(ctx, resp.Correction.ID)
	require.NoError(t, err)
	assert.Equal(t, string(correction.StatusProcessed), processed.Status)
	require.NotNil(t, processed.ProcessedBy)
	assert.Equal(t, testUserID, *processed.ProcessedBy)
	assert.NotNil(t, processed.ProcessedAt)

	// CorrectedValues exists exactly now, with recomputed totals.
	require.NotEmpty(t, processed.CorrectedValues)
	assert.True(t, processed.CorrectedValues["basic_salary"].Equal(decimal.NewFromInt(3200)))
	assert.True(t, processed.CorrectedValues["gross_salary"].Equal(decimal.NewFromInt(3200)))
	assert.True(t, processed.CorrectedValues["net_salary"].Equal(decimal.NewFromInt(3200)))

	stored, err := f.records.GetByID(ctx, record.ID, testCompanyID)
	require.NoError(t, err)
	assert.True(t, stored.BasicSalary.Equal(decimal.NewFromInt(3200)))
	assert.True(t, stored.GrossSalary.Equal(decimal.NewFromInt(3200)))
	assert.True(t, stored.NetSalary.Equal(decimal.NewFromInt(3200)))

	// Processing again hits the terminal guard.
	_, err = f.service.Process(ctx, resp.Correction.ID)
	assert.ErrorIs(t, err, correction.ErrCorrectionTerminal)
	assert.EqualValues(t, 1, f.auditCount(t, ctx, audit.ActionCorrectionProcessed))
}

func TestProcessReappliesToCurrentRecord(t *testing.T) {
	f := newFixture(t)
	ctx := claimsContext(t, testCompanyID, testUserID)
	record := f.seedRecord(t)

	allowanceFix := f.request(t, ctx, record.ID, map[string]decimal.Decimal{"total_allowances": decimal.NewFromInt(100)})
	basicFix := f.request(t, ctx, record.ID, map[string]decimal.Decimal{"basic_salary": decimal.NewFromInt(3200)})

	_, err := f.service.Approve(ctx, basicFix.Correction.ID, correction.DecisionRequest{})
	require.NoError(t, err)
	_, err = f.service.Process(ctx, basicFix.Correction.ID)
	require.NoError(t, err)

	// The allowance correction was requested against the old record but is
	// applied to the record as it stands after the basic fix.
	_, err = f.service.Approve(ctx, allowanceFix.Correction.ID, correction.DecisionRequest{})
	require.NoError(t, err)
	processed, err := f.service.Process(ctx, allowanceFix.Correction.ID)
	require.NoError(t, err)

	assert.True(t, processed.CorrectedValues["basic_salary"].Equal(decimal.NewFromInt(3200)))
	assert.True(t, processed.CorrectedValues["gross_salary"].Equal(decimal.NewFromInt(3300)))

	stored, err := f.records.GetByID(ctx, record.ID, testCompanyID)
	require.NoError(t, err)
	assert.True(t, stored.GrossSalary.Equal(decimal.NewFromInt(3300)))
	assert.True(t, stored.NetSalary.Equal(decimal.NewFromInt(3300)))
}

func TestCancelFromPendingAndApproved(t *testing.T) {
	f := newFixture(t)
	ctx := claimsContext(t, testCompanyID, testUserID)
	record := f.seedRecord(t)

	pending := f.request(t, ctx, record.ID, map[string]decimal.Decimal{"basic_salary": decimal.NewFromInt(3100)})
	cancelled, err := f.service.Cancel(ctx, pending.Correction.ID, correction.DecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(correction.StatusCancelled), cancelled.Status)

	approved := f.request(t, ctx, record.ID, map[string]decimal.Decimal{"basic_salary": decimal.NewFromInt(3200)})
	_, err = f.service.Approve(ctx, approved.Correction.ID, correction.DecisionRequest{})
	require.NoError(t, err)
	cancelled, err = f.service.Cancel(ctx, approved.Correction.ID, correction.DecisionRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(correction.StatusCancelled), cancelled.Status)

	assert.EqualValues(t, 2, f.auditCount(t, ctx, audit.ActionCorrectionCancelled))

	// Cancelled corrections never touch the record.
	stored, err := f.records.GetByID(ctx, record.ID, testCompanyID)
	require.NoError(t, err)
	assert.True(t, stored.BasicSalary.Equal(decimal.NewFromInt(3000)))
}

func TestListByRecord(t *testing.T) {
	f := newFixture(t)
	ctx := claimsContext(t, testCompanyID, testUserID)
	record := f.seedRecord(t)

	f.request(t, ctx, record.ID, map[string]decimal.Decimal{"basic_salary": decimal.NewFromInt(3100)})
	f.request(t, ctx, record.ID, map[string]decimal.Decimal{"total_deductions": decimal.NewFromInt(50)})

	list, err := f.service.ListByRecord(ctx, record.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = f.service.Get(ctx, "77777777-7777-7777-7777-777777777777")
	assert.ErrorIs(t, err, correction.ErrCorrectionNotFound)
}
