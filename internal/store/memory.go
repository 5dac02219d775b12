package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/simplebank/backend/internal/ledger"
	"github.com/simplebank/backend/internal/models"
)

var (
	errNegativeBalance = errors.New("balance would become negative")
	errNotLocked       = errors.New("account is not locked by this unit")
	errLockOrder       = errors.New("accounts must be locked in ascending id order")
)

// MemoryStore is an in-process ledger.Store. Each account has its own mutex,
// so units touching disjoint accounts never wait on each other.
type MemoryStore struct {
	mu            sync.RWMutex // guards accounts, numbers, nextAccountID
	accounts      map[int64]*memAccount
	numbers       map[string]int64
	nextAccountID int64

	logMu    sync.RWMutex // guards log, nextTxID
	log      map[int64]models.Transaction
	nextTxID int64
}

type memAccount struct {
	mu   sync.Mutex
	data models.Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[int64]*memAccount),
		numbers:  make(map[string]int64),
		log:      make(map[int64]models.Transaction),
	}
}

func (s *MemoryStore) account(id int64) (*memAccount, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	return acct, ok
}

func (s *MemoryStore) RunInTx(ctx context.Context, fn func(uow ledger.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unit := &memUnit{store: s, held: make(map[int64]*memAccount)}
	err := fn(unit)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		unit.rollback()
		return err
	}
	unit.commit()
	return nil
}

func (s *MemoryStore) Accounts() ledger.AccountReader {
	return memAccounts{s}
}

func (s *MemoryStore) Transactions() ledger.TransactionReader {
	return memTransactions{s}
}

// memUnit holds account mutexes from LockAccounts until commit or rollback.
// Balance changes are applied in place and undone on rollback; appended
// transactions stay pending until commit.
type memUnit struct {
	store   *MemoryStore
	held    map[int64]*memAccount
	order   []int64
	undo    []func()
	pending []models.Transaction
}

func (u *memUnit) LockAccounts(ctx context.Context, ids ...int64) error {
	for _, id := range lockOrder(ids) {
		if _, ok := u.held[id]; ok {
			continue
		}
		if n := len(u.order); n > 0 && id < u.order[n-1] {
			return fmt.Errorf("lock account %d after %d: %w", id, u.order[n-1], errLockOrder)
		}

		acct, ok := u.store.account(id)
		if !ok {
			return fmt.Errorf("account %d: %w", id, ledger.ErrAccountNotFound)
		}
		acct.mu.Lock()
		u.held[id] = acct
		u.order = append(u.order, id)
	}
	return ctx.Err()
}

func (u *memUnit) GetBalance(ctx context.Context, id int64) (int64, error) {
	if acct, ok := u.held[id]; ok {
		return acct.data.Balance, nil
	}

	acct, ok := u.store.account(id)
	if !ok {
		return 0, fmt.Errorf("account %d: %w", id, ledger.ErrAccountNotFound)
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	return acct.data.Balance, nil
}

func (u *memUnit) ApplyDelta(ctx context.Context, id int64, delta int64) error {
	acct, ok := u.held[id]
	if !ok {
		if _, exists := u.store.account(id); !exists {
			return fmt.Errorf("account %d: %w", id, ledger.ErrAccountNotFound)
		}
		return fmt.Errorf("account %d: %w", id, errNotLocked)
	}
	if !ledger.CanCredit(acct.data.Balance, delta) {
		return fmt.Errorf("account %d: %w", id, ledger.ErrBalanceOverflow)
	}
	if acct.data.Balance+delta < 0 {
		return fmt.Errorf("account %d: %w", id, errNegativeBalance)
	}

	prev := acct.data
	u.undo = append(u.undo, func() { acct.data = prev })

	acct.data.Balance += delta
	acct.data.Version++
	acct.data.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *memUnit) Append(ctx context.Context, rec *models.Transaction) (int64, error) {
	u.store.logMu.Lock()
	u.store.nextTxID++
	id := u.store.nextTxID
	u.store.logMu.Unlock()

	entry := *rec
	entry.ID = id
	u.pending = append(u.pending, entry)
	return id, nil
}

func (u *memUnit) commit() {
	if len(u.pending) > 0 {
		u.store.logMu.Lock()
		for _, tx := range u.pending {
			u.store.log[tx.ID] = tx
		}
		u.store.logMu.Unlock()
	}
	u.release()
}

func (u *memUnit) rollback() {
	for i := len(u.undo) - 1; i >= 0; i-- {
		u.undo[i]()
	}
	u.pending = nil
	u.release()
}

func (u *memUnit) release() {
	for i := len(u.order) - 1; i >= 0; i-- {
		u.held[u.order[i]].mu.Unlock()
	}
	u.held = nil
	u.order = nil
	u.undo = nil
}

type memAccounts struct {
	s *MemoryStore
}

func (r memAccounts) Create(ctx context.Context, acct *models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.numbers[acct.BankAccountNumber]; taken {
		return ledger.ErrDuplicateAccount
	}

	r.s.nextAccountID++
	now := time.Now().UTC()
	acct.ID = r.s.nextAccountID
	acct.Version = 0
	acct.CreatedAt = now
	acct.UpdatedAt = now

	r.s.accounts[acct.ID] = &memAccount{data: *acct}
	r.s.numbers[acct.BankAccountNumber] = acct.ID
	return nil
}

func (r memAccounts) Get(ctx context.Context, id int64) (*models.Account, error) {
	acct, ok := r.s.account(id)
	if !ok {
		return nil, fmt.Errorf("account %d: %w", id, ledger.ErrAccountNotFound)
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	cp := acct.data
	return &cp, nil
}

// List returns a consistent snapshot: every account lock is held, in
// ascending id order like a unit takes them, while balances are copied.
func (r memAccounts) List(ctx context.Context) ([]models.Account, error) {
	r.s.mu.RLock()
	ids := make([]int64, 0, len(r.s.accounts))
	held := make([]*memAccount, 0, len(r.s.accounts))
	for id := range r.s.accounts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		held = append(held, r.s.accounts[id])
	}
	r.s.mu.RUnlock()

	for _, acct := range held {
		acct.mu.Lock()
	}
	accounts := make([]models.Account, 0, len(held))
	for _, acct := range held {
		accounts = append(accounts, acct.data)
	}
	for i := len(held) - 1; i >= 0; i-- {
		held[i].mu.Unlock()
	}
	return accounts, nil
}

type memTransactions struct {
	s *MemoryStore
}

func (r memTransactions) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	r.s.logMu.RLock()
	defer r.s.logMu.RUnlock()
	tx, ok := r.s.log[id]
	if !ok {
		return nil, fmt.Errorf("transaction %d: %w", id, ledger.ErrTransactionNotFound)
	}
	return &tx, nil
}

func (r memTransactions) List(ctx context.Context) ([]models.Transaction, error) {
	r.s.logMu.RLock()
	transactions := make([]models.Transaction, 0, len(r.s.log))
	for _, tx := range r.s.log {
		transactions = append(transactions, tx)
	}
	r.s.logMu.RUnlock()

	slices.SortFunc(transactions, func(a, b models.Transaction) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return transactions, nil
}
