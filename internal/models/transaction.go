package models

import (
	"time"
)

// Transaction is one completed transfer between two accounts. Rows are
// append-only: they are written together with the balance changes they
// describe and never updated afterwards.
type Transaction struct {
	ID                   int64     `json:"id" db:"id" example:"1"`
	Reference            string    `json:"reference" db:"reference" example:"3f1c2a9e-8d4b-4c4e-9a51-0c7e1f2d3b4a"`
	SourceAccountID      int64     `json:"source_account_id" db:"source_account_id" example:"1"`
	DestinationAccountID int64     `json:"destination_account_id" db:"destination_account_id" example:"2"`
	Amount               int64     `json:"amount" db:"amount" example:"10000"` // in cents
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
}

// TransactionDetail is a Transaction together with the current state of
// both accounts it touched.
type TransactionDetail struct {
	Transaction
	SourceAccount      *Account `json:"source_account,omitempty"`
	DestinationAccount *Account `json:"destination_account,omitempty"`
}

// TransferEvent is published after a transfer commits.
type TransferEvent struct {
	TransactionID        int64     `json:"transaction_id"`
	Reference            string    `json:"reference"`
	SourceAccountID      int64     `json:"source_account_id"`
	DestinationAccountID int64     `json:"destination_account_id"`
	Amount               int64     `json:"amount"`
	CreatedAt            time.Time `json:"created_at"`
}

// NewTransferEvent builds the event for a committed transaction.
func NewTransferEvent(tx *Transaction) TransferEvent {
	return TransferEvent{
		TransactionID:        tx.ID,
		Reference:            tx.Reference,
		SourceAccountID:      tx.SourceAccountID,
		DestinationAccountID: tx.DestinationAccountID,
		Amount:               tx.Amount,
		CreatedAt:            tx.CreatedAt,
	}
}
