package ledger

import (
	"context"

	"github.com/simplebank/backend/internal/models"
)

func (e *Engine) Account(ctx context.Context, id int64) (*models.Account, error) {
	acct, err := e.store.Accounts().Get(ctx, id)
	if err != nil {
		return nil, wrapRead("get account", err)
	}
	return acct, nil
}

// Accounts lists every account by ascending id.
func (e *Engine) Accounts(ctx context.Context) ([]models.Account, error) {
	accts, err := e.store.Accounts().List(ctx)
	if err != nil {
		return nil, wrapRead("list accounts", err)
	}
	return accts, nil
}

// Transaction returns one ledger entry with both of its accounts.
func (e *Engine) Transaction(ctx context.Context, id int64) (*models.TransactionDetail, error) {
	tx, err := e.store.Transactions().Get(ctx, id)
	if err != nil {
		return nil, wrapRead("get transaction", err)
	}

	detail := &models.TransactionDetail{Transaction: *tx}
	if detail.SourceAccount, err = e.store.Accounts().Get(ctx, tx.SourceAccountID); err != nil {
		return nil, wrapRead("get transaction", err)
	}
	if detail.DestinationAccount, err = e.store.Accounts().Get(ctx, tx.DestinationAccountID); err != nil {
		return nil, wrapRead("get transaction", err)
	}
	return detail, nil
}

// Transactions lists the whole ledger by ascending id.
func (e *Engine) Transactions(ctx context.Context) ([]models.Transaction, error) {
	txs, err := e.store.Transactions().List(ctx)
	if err != nil {
		return nil, wrapRead("list transactions", err)
	}
	return txs, nil
}
