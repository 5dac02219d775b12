package models

import (
	"time"
)

// Account is a bank account whose balance is held in minor currency units.
type Account struct {
	ID                int64     `json:"id" db:"id" example:"1"`
	OwnerID           int64     `json:"owner_id" db:"owner_id" example:"7"`
	BankName          string    `json:"bank_name" db:"bank_name" example:"Simple Bank"`
	BankAccountNumber string    `json:"bank_account_number" db:"bank_account_number" example:"0123456789"`
	Balance           int64     `json:"balance" db:"balance" example:"20000"` // in cents
	Version           int64     `json:"version" db:"version"`                 // bumped on every balance change
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
