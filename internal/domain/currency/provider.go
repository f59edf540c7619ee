package currency

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrRateUnavailable = errors.New("exchange rate unavailable")

// RateProvider sources a conversion rate between two currency codes. The
// calculator treats a returned rate as reporting metadata only; stored
// amounts are never converted.
type RateProvider interface {
	GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}
