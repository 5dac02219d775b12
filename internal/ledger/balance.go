package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/simplebank/backend/internal/models"
	"go.uber.org/zap"
)

// OpenAccountRequest opens an account with an initial balance.
type OpenAccountRequest struct {
	OwnerID           int64  `json:"owner_id" validate:"required,gt=0"`
	BankName          string `json:"bank_name" validate:"required,max=100"`
	BankAccountNumber string `json:"bank_account_number" validate:"required,max=34"`
	Balance           int64  `json:"balance" validate:"gte=0"`
}

// OpenAccount creates an account. The initial balance may be zero but not
// negative.
func (e *Engine) OpenAccount(ctx context.Context, req OpenAccountRequest) (*models.Account, error) {
	if req.Balance < 0 {
		return nil, ErrInvalidAmount
	}

	acct := &models.Account{
		OwnerID:           req.OwnerID,
		BankName:          req.BankName,
		BankAccountNumber: req.BankAccountNumber,
		Balance:           req.Balance,
	}
	if err := e.store.Accounts().Create(ctx, acct); err != nil {
		if errors.Is(err, ErrDuplicateAccount) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "open account", Err: err}
	}

	e.logger.Info("account opened", zap.Int64("account_id", acct.ID), zap.Int64("owner_id", acct.OwnerID))
	return acct, nil
}

// Deposit credits amount to the account.
func (e *Engine) Deposit(ctx context.Context, accountID, amount int64) (*models.Account, error) {
	return e.adjust(ctx, "deposit", accountID, amount, 1)
}

// Withdraw debits amount from the account. The balance never goes below zero.
func (e *Engine) Withdraw(ctx context.Context, accountID, amount int64) (*models.Account, error) {
	return e.adjust(ctx, "withdraw", accountID, amount, -1)
}

// adjust applies sign*amount to one account in its own unit.
func (e *Engine) adjust(ctx context.Context, op string, accountID, amount, sign int64) (*models.Account, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	delta := sign * amount

	err := e.runInUnit(ctx, op, func(uow UnitOfWork) error {
		if err := uow.LockAccounts(ctx, accountID); err != nil {
			return err
		}
		balance, err := uow.GetBalance(ctx, accountID)
		if err != nil {
			return err
		}
		if !CanCredit(balance, delta) {
			return fmt.Errorf("account %d: %w", accountID, ErrBalanceOverflow)
		}
		if balance+delta < 0 {
			return ErrInsufficientFunds
		}
		return uow.ApplyDelta(ctx, accountID, delta)
	})
	if err != nil {
		e.audit.LogError("", accountID, err)
		return nil, err
	}
	e.audit.LogOperation("", accountID, op, amount)

	acct, err := e.store.Accounts().Get(ctx, accountID)
	if err != nil {
		return nil, wrapRead(op, err)
	}
	return acct, nil
}
