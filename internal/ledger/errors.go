package ledger

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInsufficientFunds   = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrSameAccount         = errors.New("source and destination accounts must differ")
	ErrDuplicateAccount    = errors.New("bank account number already exists")
	ErrBalanceOverflow     = errors.New("balance would exceed the maximum representable amount")

	// ErrPersistence is matched by every *PersistenceError.
	ErrPersistence = errors.New("persistence failure")

	// ErrConflict is returned by stores when a unit lost a lock or
	// serialization race and can be retried from scratch.
	ErrConflict = errors.New("concurrent update conflict")
)

// PersistenceError reports a storage failure after validation passed. The
// unit it happened in was rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrPersistence, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// IsRejection reports whether err is a business rejection the caller should
// not retry.
func IsRejection(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrSameAccount) ||
		errors.Is(err, ErrBalanceOverflow)
}

// CanCredit reports whether amount can be added to balance without
// overflowing int64.
func CanCredit(balance, amount int64) bool {
	return amount <= 0 || balance <= math.MaxInt64-amount
}
