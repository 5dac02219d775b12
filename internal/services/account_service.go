package services

import (
	"context"
	"net/http"

	"github.com/simplebank/backend/internal/ledger"
	"github.com/simplebank/backend/internal/models"
)

type AccountService struct {
	engine    *ledger.Engine
	validator *ValidationHelper
}

// AmountRequest is the body of deposit and withdraw calls.
type AmountRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0" example:"5000"`
}

// AccountResponse wraps a single account.
type AccountResponse struct {
	Success bool            `json:"success" example:"true"`
	Message string          `json:"message,omitempty" example:"Account created"`
	Data    *models.Account `json:"data"`
}

// AccountListResponse is the body of GET /accounts.
type AccountListResponse struct {
	Accounts []models.Account `json:"accounts"`
	Count    int              `json:"count"`
}

func NewAccountService(engine *ledger.Engine) *AccountService {
	return &AccountService{
		engine:    engine,
		validator: NewValidationHelper(),
	}
}

// OpenAccount creates an account
// @Summary Open an account
// @Description Create an account with an optional non-negative opening balance
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body ledger.OpenAccountRequest true "Account data"
// @Success 201 {object} AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /accounts [post]
func (as *AccountService) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var req ledger.OpenAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := as.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	acct, err := as.engine.OpenAccount(r.Context(), req)
	if err != nil {
		sendLedgerError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, AccountResponse{Success: true, Message: "Account created", Data: acct})
}

// ListAccounts lists all accounts
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AccountListResponse
// @Failure 401 {string} string
// @Failure 500 {object} ErrorResponse
// @Router /accounts [get]
func (as *AccountService) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := as.engine.Accounts(r.Context())
	if err != nil {
		sendLedgerError(w, err)
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}

	sendJSON(w, http.StatusOK, AccountListResponse{Accounts: accounts, Count: len(accounts)})
}

// GetAccount retrieves one account
// @Summary Get account by ID
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param accountId path int true "Account ID"
// @Success 200 {object} models.Account
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{accountId} [get]
func (as *AccountService) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "accountId")
	if !ok {
		SendErrorResponse(w, "Invalid account ID", http.StatusBadRequest, nil)
		return
	}

	acct, err := as.engine.Account(r.Context(), id)
	if err != nil {
		sendLedgerError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, acct)
}

// Deposit credits an account
// @Summary Deposit funds
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param accountId path int true "Account ID"
// @Param deposit body AmountRequest true "Amount in minor units"
// @Success 200 {object} AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{accountId}/deposit [post]
func (as *AccountService) Deposit(w http.ResponseWriter, r *http.Request) {
	as.adjust(w, r, as.engine.Deposit)
}

// Withdraw debits an account
// @Summary Withdraw funds
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param accountId path int true "Account ID"
// @Param withdrawal body AmountRequest true "Amount in minor units"
// @Success 200 {object} AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{accountId}/withdraw [post]
func (as *AccountService) Withdraw(w http.ResponseWriter, r *http.Request) {
	as.adjust(w, r, as.engine.Withdraw)
}

func (as *AccountService) adjust(w http.ResponseWriter, r *http.Request,
	apply func(ctx context.Context, accountID, amount int64) (*models.Account, error)) {
	id, ok := pathID(r, "accountId")
	if !ok {
		SendErrorResponse(w, "Invalid account ID", http.StatusBadRequest, nil)
		return
	}

	var req AmountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := as.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	acct, err := apply(r.Context(), id, req.Amount)
	if err != nil {
		sendLedgerError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, AccountResponse{Success: true, Data: acct})
}
