package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/simplebank/backend/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAccountForm struct {
	BankName string `json:"bank_name" validate:"required,min=2"`
	Number   string `json:"bank_account_number" validate:"required,numeric"`
	OwnerID  int64  `validate:"required,gt=0"`
}

func TestValidationHelper_ValidateStruct(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("valid struct", func(t *testing.T) {
		valid := testAccountForm{
			BankName: "First Bank",
			Number:   "0123456789",
			OwnerID:  1,
		}

		assert.NoError(t, vh.ValidateStruct(&valid))
	})

	t.Run("invalid struct - missing required fields", func(t *testing.T) {
		invalid := testAccountForm{
			BankName: "F", // Too short
		}

		err := vh.ValidateStruct(&invalid)
		require.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Len(t, validationErrors, 3)
	})

	t.Run("reports json field names", func(t *testing.T) {
		invalid := testAccountForm{
			BankName: "First Bank",
			Number:   "12-34",
			OwnerID:  1,
		}

		err := vh.ValidateStruct(&invalid)
		require.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		require.Len(t, validationErrors, 1)
		assert.Equal(t, "bank_account_number", validationErrors[0].Field())
		assert.Equal(t, "numeric", validationErrors[0].Tag())
	})

	t.Run("transfer request tags", func(t *testing.T) {
		err := vh.ValidateStruct(&ledger.TransferRequest{SourceAccountID: 1, DestinationAccountID: 2, Amount: -5})
		require.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		require.Len(t, validationErrors, 1)
		assert.Equal(t, "amount", validationErrors[0].Field())
	})
}

func TestSendErrorResponse(t *testing.T) {
	t.Run("error response without validation errors", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "Something went wrong", http.StatusInternalServerError, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Something went wrong", response.Error)
		assert.Nil(t, response.Details)
	})

	t.Run("error response with validation errors", func(t *testing.T) {
		vh := NewValidationHelper()
		validationErr := vh.ValidateStruct(&testAccountForm{BankName: "F"})
		require.Error(t, validationErr)

		w := httptest.NewRecorder()
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, validationErr)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Validation failed", response.Error)
		assert.Contains(t, response.Details, "bank_name")
		assert.Contains(t, response.Details, "bank_account_number")
		assert.Contains(t, response.Details, "OwnerID")
	})

	t.Run("non-validation error carries no details", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, errors.New("boom"))

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Invalid request", response.Error)
		assert.Nil(t, response.Details)
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ledger.ErrAccountNotFound, http.StatusNotFound},
		{ledger.ErrTransactionNotFound, http.StatusNotFound},
		{ledger.ErrInsufficientFunds, http.StatusBadRequest},
		{ledger.ErrInvalidAmount, http.StatusBadRequest},
		{ledger.ErrSameAccount, http.StatusBadRequest},
		{ledger.ErrBalanceOverflow, http.StatusBadRequest},
		{ledger.ErrDuplicateAccount, http.StatusConflict},
		{&ledger.PersistenceError{Op: "transfer", Err: errors.New("disk full")}, http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
