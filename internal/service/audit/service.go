package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/look4dennis/stride-hr-sub001/internal/domain/audit"
)

type ServiceImpl struct {
	entries audit.Repository
}

func NewService(entries audit.Repository) audit.Service {
	return &ServiceImpl{entries: entries}
}

func getClaimsFromContext(ctx context.Context) (companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}

	return companyID, nil
}

func (s *ServiceImpl) List(ctx context.Context, filter audit.Filter) (audit.ListEntriesResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return audit.ListEntriesResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	entries, totalCount, err := s.entries.List(ctx, companyID, filter)
	if err != nil {
		return audit.ListEntriesResponse{}, err
	}

	data := make([]audit.EntryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, mapToEntryResponse(e))
	}

	return audit.ListEntriesResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func mapToEntryResponse(e audit.Entry) audit.EntryResponse {
	return audit.EntryResponse{
		ID:              e.ID,
		PayrollRecordID: e.PayrollRecordID,
		EmployeeID:      e.EmployeeID,
		Action:          string(e.Action),
		Description:     e.Description,
		UserID:          e.UserID,
		OldValues:       e.OldValues,
		NewValues:       e.NewValues,
		Reason:          e.Reason,
		Timestamp:       e.CreatedAt.Format(time.RFC3339),
	}
}
