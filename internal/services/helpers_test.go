package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/simplebank/backend/internal/idempotency"
	"github.com/simplebank/backend/internal/ledger"
	"github.com/simplebank/backend/internal/models"
	"github.com/simplebank/backend/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestEngine(t *testing.T, st ledger.Store) *ledger.Engine {
	t.Helper()
	if st == nil {
		st = store.NewMemoryStore()
	}
	return ledger.NewEngine(st,
		ledger.WithLogger(zaptest.NewLogger(t)),
		ledger.WithRetries(1, time.Millisecond),
	)
}

func newTestRouter(ts *TransactionService, as *AccountService) http.Handler {
	r := chi.NewRouter()
	r.Post("/transactions", ts.CreateTransaction)
	r.Get("/transactions", ts.ListTransactions)
	r.Get("/transactions/{txId}", ts.GetTransaction)
	r.Post("/accounts", as.OpenAccount)
	r.Get("/accounts", as.ListAccounts)
	r.Get("/accounts/{accountId}", as.GetAccount)
	r.Post("/accounts/{accountId}/deposit", as.Deposit)
	r.Post("/accounts/{accountId}/withdraw", as.Withdraw)
	return r
}

func seedAccount(t *testing.T, e *ledger.Engine, number string, balance int64) *models.Account {
	t.Helper()
	acct, err := e.OpenAccount(context.Background(), ledger.OpenAccountRequest{
		OwnerID:           1,
		BankName:          "Simple Bank",
		BankAccountNumber: number,
		Balance:           balance,
	})
	require.NoError(t, err)
	return acct
}

func balance(t *testing.T, e *ledger.Engine, id int64) int64 {
	t.Helper()
	acct, err := e.Account(context.Background(), id)
	require.NoError(t, err)
	return acct.Balance
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// memIdempotency is an in-process IdempotencyStore. Like go-redis, it
// refuses writes on a context that is already done.
type memIdempotency struct {
	mu       sync.Mutex
	records  map[string]*idempotency.Record
	pending  map[string]bool
	released []string
	beginErr error
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{
		records: make(map[string]*idempotency.Record),
		pending: make(map[string]bool),
	}
}

func (m *memIdempotency) Begin(ctx context.Context, key, fingerprint string) (*idempotency.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	if rec, ok := m.records[key]; ok {
		if rec.Fingerprint != fingerprint {
			return nil, idempotency.ErrKeyReused
		}
		return rec, nil
	}
	if m.pending[key] {
		return nil, idempotency.ErrInProgress
	}
	m.pending[key] = true
	return nil, nil
}

func (m *memIdempotency) Complete(ctx context.Context, key, fingerprint string, status int, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, key)
	m.records[key] = &idempotency.Record{Fingerprint: fingerprint, Status: status, Body: body}
	return nil
}

func (m *memIdempotency) Release(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, key)
	m.released = append(m.released, key)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*models.Transaction
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, tx *models.Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, tx)
	return nil
}
