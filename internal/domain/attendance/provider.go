package attendance

import (
	"context"
	"time"
)

// Provider supplies attendance facts for a period. Both bounds are inclusive.
type Provider interface {
	GetRange(ctx context.Context, employeeID string, start, end time.Time) ([]Day, error)
}
