package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/simplebank/backend/internal/models"
	"go.uber.org/zap"
)

// TransferRequest moves Amount minor units from the source to the
// destination account.
type TransferRequest struct {
	SourceAccountID      int64 `json:"source_account_id" validate:"required,gt=0"`
	DestinationAccountID int64 `json:"destination_account_id" validate:"required,gt=0"`
	Amount               int64 `json:"amount" validate:"required,gt=0"`
}

// Validate checks the request without touching storage.
func (r TransferRequest) Validate() error {
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	if r.SourceAccountID == r.DestinationAccountID {
		return ErrSameAccount
	}
	return nil
}

// Execute debits the source, credits the destination and appends one
// Transaction, all in one unit of work. On any error nothing is applied.
func (e *Engine) Execute(ctx context.Context, req TransferRequest) (*models.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reference := uuid.NewString()
	var created *models.Transaction

	err := e.runInUnit(ctx, "transfer", func(uow UnitOfWork) error {
		created = nil

		if err := uow.LockAccounts(ctx, req.SourceAccountID, req.DestinationAccountID); err != nil {
			return err
		}

		balance, err := uow.GetBalance(ctx, req.SourceAccountID)
		if err != nil {
			return err
		}
		if balance < req.Amount {
			return ErrInsufficientFunds
		}

		destBalance, err := uow.GetBalance(ctx, req.DestinationAccountID)
		if err != nil {
			return err
		}
		if !CanCredit(destBalance, req.Amount) {
			return fmt.Errorf("account %d: %w", req.DestinationAccountID, ErrBalanceOverflow)
		}

		if err := uow.ApplyDelta(ctx, req.SourceAccountID, -req.Amount); err != nil {
			return fmt.Errorf("debit account %d: %w", req.SourceAccountID, err)
		}
		if err := uow.ApplyDelta(ctx, req.DestinationAccountID, req.Amount); err != nil {
			return fmt.Errorf("credit account %d: %w", req.DestinationAccountID, err)
		}

		rec := &models.Transaction{
			Reference:            reference,
			SourceAccountID:      req.SourceAccountID,
			DestinationAccountID: req.DestinationAccountID,
			Amount:               req.Amount,
			CreatedAt:            e.now().UTC(),
		}
		id, err := uow.Append(ctx, rec)
		if err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
		rec.ID = id
		created = rec
		return nil
	})
	if err != nil {
		e.audit.LogError(reference, req.SourceAccountID, err)
		fields := []zap.Field{
			zap.String("reference", reference),
			zap.Int64("source_account_id", req.SourceAccountID),
			zap.Int64("destination_account_id", req.DestinationAccountID),
			zap.Int64("amount", req.Amount),
			zap.Error(err),
		}
		if IsRejection(err) {
			e.logger.Info("transfer rejected", fields...)
		} else {
			e.logger.Error("transfer failed", fields...)
		}
		return nil, err
	}

	e.audit.LogTransfer(reference, req.SourceAccountID, req.DestinationAccountID, req.Amount, "SUCCESS")
	e.logger.Info("transfer completed",
		zap.Int64("transaction_id", created.ID),
		zap.String("reference", reference),
		zap.Int64("source_account_id", req.SourceAccountID),
		zap.Int64("destination_account_id", req.DestinationAccountID),
		zap.Int64("amount", req.Amount),
	)
	return created, nil
}
