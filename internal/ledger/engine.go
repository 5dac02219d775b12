// Package ledger moves money between accounts. Every balance change runs in
// a single unit of work on an injected Store, with per-account locks taken
// in ascending id order.
package ledger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 50 * time.Millisecond
)

// Auditor records the outcome of balance-changing operations.
type Auditor interface {
	LogTransfer(reference string, fromAccount, toAccount, amount int64, status string)
	LogOperation(reference string, accountID int64, operation string, amount int64)
	LogError(reference string, accountID int64, err error)
}

type nopAuditor struct{}

func (nopAuditor) LogTransfer(string, int64, int64, int64, string) {}
func (nopAuditor) LogOperation(string, int64, string, int64)       {}
func (nopAuditor) LogError(string, int64, error)                   {}

// Engine runs transfers, deposits and withdrawals against a Store.
type Engine struct {
	store        Store
	logger       *zap.Logger
	audit        Auditor
	maxRetries   int
	retryBackoff time.Duration
	now          func() time.Time
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithAuditor(a Auditor) Option {
	return func(e *Engine) {
		if a != nil {
			e.audit = a
		}
	}
}

// WithRetries sets how often a unit that hit ErrConflict is re-run and the
// base delay between attempts. The n-th retry waits n*backoff.
func WithRetries(maxRetries int, backoff time.Duration) Option {
	return func(e *Engine) {
		if maxRetries >= 0 {
			e.maxRetries = maxRetries
		}
		if backoff >= 0 {
			e.retryBackoff = backoff
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:        store,
		logger:       zap.NewNop(),
		audit:        nopAuditor{},
		maxRetries:   DefaultMaxRetries,
		retryBackoff: DefaultRetryBackoff,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// runInUnit runs fn in a fresh unit, re-running it from scratch while the
// store reports ErrConflict. Rejections pass through untouched; any other
// failure comes back as a *PersistenceError.
func (e *Engine) runInUnit(ctx context.Context, op string, fn func(uow UnitOfWork) error) error {
	var err error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			e.logger.Warn("retrying unit after conflict",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				return &PersistenceError{Op: op, Err: ctx.Err()}
			case <-time.After(time.Duration(attempt) * e.retryBackoff):
			}
		}

		err = e.store.RunInTx(ctx, fn)
		if err == nil {
			return nil
		}
		if IsRejection(err) {
			return err
		}
		if !errors.Is(err, ErrConflict) {
			break
		}
	}
	return &PersistenceError{Op: op, Err: err}
}

// wrapRead passes lookup misses through and wraps everything else.
func wrapRead(op string, err error) error {
	if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrTransactionNotFound) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
