package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/simplebank/backend/internal/ledger"
	"github.com/simplebank/backend/internal/models"
)

// Postgres error codes that mean the unit can be retried from scratch.
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqLockNotAvailable     = "55P03"
	pqUniqueViolation      = "23505"
	pqNumericOutOfRange    = "22003"
)

// PostgresStore keeps accounts and transactions in PostgreSQL. Units run in
// READ COMMITTED transactions and serialize on SELECT ... FOR UPDATE row
// locks.
type PostgresStore struct {
	db          *sql.DB
	lockTimeout time.Duration
}

func NewPostgresStore(db *sql.DB, lockTimeout time.Duration) *PostgresStore {
	return &PostgresStore{
		db:          db,
		lockTimeout: lockTimeout,
	}
}

func (s *PostgresStore) RunInTx(ctx context.Context, fn func(uow ledger.UnitOfWork) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("begin: %w", err))
	}
	defer tx.Rollback()

	if s.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return classify(fmt.Errorf("set lock timeout: %w", err))
		}
	}

	unit := &pgUnit{tx: tx, locked: make(map[int64]int64)}
	if err := fn(unit); err != nil {
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("commit: %w", err))
	}
	return nil
}

func (s *PostgresStore) Accounts() ledger.AccountReader {
	return &pgAccounts{db: s.db}
}

func (s *PostgresStore) Transactions() ledger.TransactionReader {
	return &pgTransactions{db: s.db}
}

// classify marks lock and serialization failures as ledger.ErrConflict.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqSerializationFailure, pqDeadlockDetected, pqLockNotAvailable:
			return fmt.Errorf("%w: %w", ledger.ErrConflict, err)
		case pqNumericOutOfRange:
			return fmt.Errorf("%w: %w", ledger.ErrBalanceOverflow, err)
		}
	}
	return err
}

// pgUnit is one database transaction. locked caches the balances of the
// rows this unit holds FOR UPDATE.
type pgUnit struct {
	tx     *sql.Tx
	locked map[int64]int64
}

func (u *pgUnit) LockAccounts(ctx context.Context, ids ...int64) error {
	for _, id := range lockOrder(ids) {
		if _, ok := u.locked[id]; ok {
			continue
		}

		var balance int64
		err := u.tx.QueryRowContext(ctx, `
			SELECT balance
			FROM accounts
			WHERE id = $1
			FOR UPDATE`, id).Scan(&balance)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("account %d: %w", id, ledger.ErrAccountNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock account %d: %w", id, err)
		}
		u.locked[id] = balance
	}
	return nil
}

func (u *pgUnit) GetBalance(ctx context.Context, id int64) (int64, error) {
	if balance, ok := u.locked[id]; ok {
		return balance, nil
	}

	var balance int64
	err := u.tx.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE id = $1`, id).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("account %d: %w", id, ledger.ErrAccountNotFound)
	}
	return balance, err
}

func (u *pgUnit) ApplyDelta(ctx context.Context, id int64, delta int64) error {
	var balance int64
	err := u.tx.QueryRowContext(ctx, `
		UPDATE accounts
		SET balance = balance + $1, version = version + 1, updated_at = $2
		WHERE id = $3
		RETURNING balance`,
		delta, time.Now().UTC(), id).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("account %d: %w", id, ledger.ErrAccountNotFound)
	}
	if err != nil {
		return err
	}

	if _, ok := u.locked[id]; ok {
		u.locked[id] = balance
	}
	return nil
}

func (u *pgUnit) Append(ctx context.Context, rec *models.Transaction) (int64, error) {
	var id int64
	err := u.tx.QueryRowContext(ctx, `
		INSERT INTO transactions (reference, source_account_id, destination_account_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		rec.Reference, rec.SourceAccountID, rec.DestinationAccountID, rec.Amount, rec.CreatedAt).Scan(&id)
	return id, err
}

type pgAccounts struct {
	db *sql.DB
}

const accountColumns = `id, owner_id, bank_name, bank_account_number, balance, version, created_at, updated_at`

func (r *pgAccounts) Create(ctx context.Context, acct *models.Account) error {
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (owner_id, bank_name, bank_account_number, balance, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, $5, $5)
		RETURNING id`,
		acct.OwnerID, acct.BankName, acct.BankAccountNumber, acct.Balance, now).Scan(&acct.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ledger.ErrDuplicateAccount
		}
		return err
	}
	acct.Version = 0
	acct.CreatedAt = now
	acct.UpdatedAt = now
	return nil
}

func (r *pgAccounts) Get(ctx context.Context, id int64) (*models.Account, error) {
	var acct models.Account
	err := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id).
		Scan(&acct.ID, &acct.OwnerID, &acct.BankName, &acct.BankAccountNumber,
			&acct.Balance, &acct.Version, &acct.CreatedAt, &acct.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, ledger.ErrAccountNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (r *pgAccounts) List(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var acct models.Account
		if err := rows.Scan(&acct.ID, &acct.OwnerID, &acct.BankName, &acct.BankAccountNumber,
			&acct.Balance, &acct.Version, &acct.CreatedAt, &acct.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

type pgTransactions struct {
	db *sql.DB
}

const transactionColumns = `id, reference, source_account_id, destination_account_id, amount, created_at`

func (r *pgTransactions) Get(ctx context.Context, id int64) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id).
		Scan(&tx.ID, &tx.Reference, &tx.SourceAccountID, &tx.DestinationAccountID, &tx.Amount, &tx.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %d: %w", id, ledger.ErrTransactionNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *pgTransactions) List(ctx context.Context) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.Reference, &tx.SourceAccountID, &tx.DestinationAccountID,
			&tx.Amount, &tx.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
