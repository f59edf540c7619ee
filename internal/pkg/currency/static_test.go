package currency

import (
	"context"
	"testing"

	domain "github.com/look4dennis/stride-hr-sub001/internal/domain/currency"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStaticProvider(t *testing.T) {
	t.Run("parses multiple pairs", func(t *testing.T) {
		p, err := NewStaticProvider("USD:IDR=15500; idr:usd = 0.0000645")
		require.NoError(t, err)

		rate, err := p.GetExchangeRate(context.Background(), "USD", "IDR")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.NewFromInt(15500)))

		rate, err = p.GetExchangeRate(context.Background(), "IDR", "USD")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.NewFromFloat(0.0000645)))
	})

	t.Run("empty spec is a provider with no rates", func(t *testing.T) {
		p, err := NewStaticProvider("")
		require.NoError(t, err)

		_, err = p.GetExchangeRate(context.Background(), "USD", "IDR")
		assert.ErrorIs(t, err, domain.ErrRateUnavailable)
	})

	t.Run("malformed entries are rejected", func(t *testing.T) {
		_, err := NewStaticProvider("USD:IDR")
		assert.Error(t, err)

		_, err = NewStaticProvider("USD:IDR=abc")
		assert.Error(t, err)
	})
}

func TestGetExchangeRate(t *testing.T) {
	p, err := NewStaticProvider("USD:IDR=15500")
	require.NoError(t, err)

	t.Run("same currency is always one", func(t *testing.T) {
		rate, err := p.GetExchangeRate(context.Background(), "usd", "USD")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.NewFromInt(1)))
	})

	t.Run("unknown pair", func(t *testing.T) {
		_, err := p.GetExchangeRate(context.Background(), "USD", "CHF")
		assert.ErrorIs(t, err, domain.ErrRateUnavailable)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := p.GetExchangeRate(ctx, "USD", "IDR")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
