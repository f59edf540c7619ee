package memory

import (
	"context"
	"sync"

	"github.com/look4dennis/stride-hr-sub001/internal/domain/payroll"
)

type ctxKey string

const inTxKey ctxKey = "memory_tx"

// Transactor serializes transactional sections with a mutex. There is no
// rollback; callers that need failure isolation should use the PostgreSQL
// implementation.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() payroll.Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(inTxKey) != nil {
		return fn(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return fn(context.WithValue(ctx, inTxKey, true))
}
