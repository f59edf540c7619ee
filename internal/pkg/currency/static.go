package currency

import (
	"context"
	"fmt"
	"strings"

	"github.com/look4dennis/stride-hr-sub001/internal/domain/currency"
	"github.com/shopspring/decimal"
)

// StaticProvider resolves exchange rates from a fixed table loaded at startup.
// Rate sourcing from a live feed is a separate service; payroll only needs a
// lookup that can fail cleanly.
type StaticProvider struct {
	rates map[string]decimal.Decimal
}

// NewStaticProvider parses a rate table in the form
// "USD:IDR=15500;IDR:USD=0.0000645". An empty spec yields a provider with no
// rates; every lookup then reports ErrRateUnavailable.
func NewStaticProvider(spec string) (*StaticProvider, error) {
	rates := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(spec, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid rate %q: expected FROM:TO=RATE", pair)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid rate value in %q: %w", pair, err)
		}
		rates[normalizePair(key)] = rate
	}
	return &StaticProvider{rates: rates}, nil
}

func (p *StaticProvider) GetExchangeRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	if strings.EqualFold(from, to) {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := p.rates[normalizePair(from+":"+to)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s to %s", currency.ErrRateUnavailable, from, to)
	}
	return rate, nil
}

func normalizePair(key string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(key), " ", ""))
}
