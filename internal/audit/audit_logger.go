// Package audit writes one structured event per balance-changing operation.
package audit

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	EventTransfer = "TRANSFER"
	EventError    = "ERROR"
)

type AuditEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	EventType   string    `json:"event_type"`
	Reference   string    `json:"reference,omitempty"`
	AccountID   int64     `json:"account_id,omitempty"`
	FromAccount int64     `json:"from_account,omitempty"`
	ToAccount   int64     `json:"to_account,omitempty"`
	Amount      int64     `json:"amount,omitempty"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
}

// Logger emits audit events through zap under the "audit" logger name.
type Logger struct {
	log *zap.Logger
}

func NewLogger(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &Logger{log: l.Named("audit")}
}

func (a *Logger) LogTransfer(reference string, fromAccount, toAccount, amount int64, status string) {
	a.emit(AuditEvent{
		Timestamp:   time.Now().UTC(),
		EventType:   EventTransfer,
		Reference:   reference,
		FromAccount: fromAccount,
		ToAccount:   toAccount,
		Amount:      amount,
		Status:      status,
	})
}

// LogOperation records a single-account operation such as a deposit.
func (a *Logger) LogOperation(reference string, accountID int64, operation string, amount int64) {
	a.emit(AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: strings.ToUpper(operation),
		Reference: reference,
		AccountID: accountID,
		Amount:    amount,
		Status:    "SUCCESS",
	})
}

func (a *Logger) LogError(reference string, accountID int64, err error) {
	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: EventError,
		Reference: reference,
		AccountID: accountID,
		Status:    "FAILED",
	}
	if err != nil {
		event.Error = err.Error()
	}
	a.emit(event)
}

func (a *Logger) emit(event AuditEvent) {
	a.log.Info("AUDIT",
		zap.Time("timestamp", event.Timestamp),
		zap.String("event_type", event.EventType),
		zap.String("reference", event.Reference),
		zap.Int64("account_id", event.AccountID),
		zap.Int64("from_account", event.FromAccount),
		zap.Int64("to_account", event.ToAccount),
		zap.Int64("amount", event.Amount),
		zap.String("status", event.Status),
		zap.String("error", event.Error),
	)
}
