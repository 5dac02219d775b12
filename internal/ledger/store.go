package ledger

import (
	"context"

	"github.com/simplebank/backend/internal/models"
)

// AccountStore reads and changes balances inside a unit of work.
type AccountStore interface {
	// GetBalance returns ErrAccountNotFound for unknown ids.
	GetBalance(ctx context.Context, id int64) (int64, error)
	// ApplyDelta adds delta (possibly negative) to the balance of id.
	ApplyDelta(ctx context.Context, id int64, delta int64) error
}

// TransactionLog appends ledger entries inside a unit of work.
type TransactionLog interface {
	// Append stores rec and returns its assigned id.
	Append(ctx context.Context, rec *models.Transaction) (int64, error)
}

// UnitOfWork is one atomic unit: everything done through it is committed
// together or rolled back together.
type UnitOfWork interface {
	AccountStore
	TransactionLog

	// LockAccounts takes exclusive locks on the given accounts in ascending
	// id order, held until the unit ends. Unknown ids yield ErrAccountNotFound.
	LockAccounts(ctx context.Context, ids ...int64) error
}

// AccountReader serves account lookups outside of a transfer.
type AccountReader interface {
	Create(ctx context.Context, acct *models.Account) error
	Get(ctx context.Context, id int64) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
}

// TransactionReader serves ledger lookups.
type TransactionReader interface {
	// Get returns ErrTransactionNotFound for unknown ids.
	Get(ctx context.Context, id int64) (*models.Transaction, error)
	// List returns every transaction in ascending id order.
	List(ctx context.Context) ([]models.Transaction, error)
}

// Store is the storage the engine runs on.
type Store interface {
	// RunInTx runs fn in a new unit of work. The unit commits when fn returns
	// nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(uow UnitOfWork) error) error
	Accounts() AccountReader
	Transactions() TransactionReader
}
