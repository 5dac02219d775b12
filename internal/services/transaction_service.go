package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/simplebank/backend/internal/idempotency"
	"github.com/simplebank/backend/internal/ledger"
	"github.com/simplebank/backend/internal/logger"
	"github.com/simplebank/backend/internal/models"
)

// afterCommitTimeout bounds the Redis writes made once the outcome of a
// transfer is known. They run even if the client has gone away.
const afterCommitTimeout = 5 * time.Second

// IdempotencyStore remembers responses by Idempotency-Key.
type IdempotencyStore interface {
	Begin(ctx context.Context, key, fingerprint string) (*idempotency.Record, error)
	Complete(ctx context.Context, key, fingerprint string, status int, body []byte) error
	Release(ctx context.Context, key string) error
}

// TransferPublisher announces committed transfers.
type TransferPublisher interface {
	Publish(ctx context.Context, tx *models.Transaction) error
}

type TransactionService struct {
	engine    *ledger.Engine
	idem      IdempotencyStore
	events    TransferPublisher
	validator *ValidationHelper
}

// TransferResponse is the body of a successful transfer.
type TransferResponse struct {
	Success bool                `json:"success" example:"true"`
	Message string              `json:"message" example:"Transaction successful"`
	Data    *models.Transaction `json:"data"`
}

// TransactionListResponse is the body of GET /transactions.
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
}

// NewTransactionService wires the HTTP transfer endpoints. idem and events
// may be nil.
func NewTransactionService(engine *ledger.Engine, idem IdempotencyStore, events TransferPublisher) *TransactionService {
	return &TransactionService{
		engine:    engine,
		idem:      idem,
		events:    events,
		validator: NewValidationHelper(),
	}
}

// CreateTransaction transfers funds between two accounts
// @Summary Transfer funds
// @Description Debit the source account, credit the destination account and record the transaction atomically
// @Tags transactions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the stored response for a repeated key"
// @Param transfer body ledger.TransferRequest true "Transfer data"
// @Success 201 {object} TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [post]
func (ts *TransactionService) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req ledger.TransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := ts.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	ctx := r.Context()

	var fingerprint string
	key := r.Header.Get(idempotency.HeaderKey)
	if key != "" && ts.idem != nil {
		if err := idempotency.ValidateKey(key); err != nil {
			SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
			return
		}

		var err error
		if fingerprint, err = idempotency.Fingerprint(req); err != nil {
			SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
			return
		}

		rec, err := ts.idem.Begin(ctx, key, fingerprint)
		switch {
		case errors.Is(err, idempotency.ErrInProgress):
			SendErrorResponse(w, err.Error(), http.StatusConflict, nil)
			return
		case errors.Is(err, idempotency.ErrKeyReused):
			SendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity, nil)
			return
		case err != nil:
			logger.Errorf("[TRANSACTION] idempotency lookup failed for key %s: %v", key, err)
			SendErrorResponse(w, "Idempotency store unavailable", http.StatusServiceUnavailable, nil)
			return
		case rec != nil:
			logger.Infof("[TRANSACTION] replaying response for idempotency key %s", key)
			w.Header().Set("Idempotent-Replayed", "true")
			sendRaw(w, rec.Status, rec.Body)
			return
		}
	} else {
		key = ""
	}

	tx, err := ts.engine.Execute(ctx, req)

	// The client may already be gone; the key must still be settled.
	after, cancel := context.WithTimeout(context.WithoutCancel(ctx), afterCommitTimeout)
	defer cancel()

	if err != nil {
		if key != "" {
			if relErr := ts.idem.Release(after, key); relErr != nil {
				logger.Warnf("[TRANSACTION] failed to release idempotency key %s: %v", key, relErr)
			}
		}
		sendLedgerError(w, err)
		return
	}

	body, err := json.Marshal(TransferResponse{
		Success: true,
		Message: "Transaction successful",
		Data:    tx,
	})
	if err != nil {
		if key != "" {
			_ = ts.idem.Release(after, key)
		}
		SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
		return
	}

	if key != "" {
		if err := ts.idem.Complete(after, key, fingerprint, http.StatusCreated, body); err != nil {
			logger.Warnf("[TRANSACTION] failed to store idempotency record %s: %v", key, err)
		}
	}

	// Publish after commit; the transfer stands even if this fails
	if ts.events != nil {
		if err := ts.events.Publish(after, tx); err != nil {
			logger.Warnf("[TRANSACTION] failed to queue transfer event: %v", err)
		}
	}

	sendRaw(w, http.StatusCreated, body)
}

// GetTransaction retrieves a specific transaction
// @Summary Get transaction by ID
// @Description Retrieve a transaction together with its source and destination accounts
// @Tags transactions
// @Produce json
// @Param txId path int true "Transaction ID"
// @Success 200 {object} models.TransactionDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/{txId} [get]
func (ts *TransactionService) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "txId")
	if !ok {
		SendErrorResponse(w, "Invalid transaction ID", http.StatusBadRequest, nil)
		return
	}

	detail, err := ts.engine.Transaction(r.Context(), id)
	if err != nil {
		sendLedgerError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, detail)
}

// ListTransactions retrieves all transactions
// @Summary List transactions
// @Description Get every recorded transaction, oldest first
// @Tags transactions
// @Produce json
// @Success 200 {object} TransactionListResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [get]
func (ts *TransactionService) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := ts.engine.Transactions(r.Context())
	if err != nil {
		sendLedgerError(w, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	sendJSON(w, http.StatusOK, TransactionListResponse{
		Transactions: transactions,
		Count:        len(transactions),
	})
}
