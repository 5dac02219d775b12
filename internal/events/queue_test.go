package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/simplebank/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransaction() *models.Transaction {
	return &models.Transaction{
		ID:                   7,
		Reference:            "3f1c2a9e-8d4b-4c4e-9a51-0c7e1f2d3b4a",
		SourceAccountID:      1,
		DestinationAccountID: 2,
		Amount:               5000,
		CreatedAt:            time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestQueue_Publish(t *testing.T) {
	ctx := context.Background()
	tx := sampleTransaction()

	payload, err := json.Marshal(models.NewTransferEvent(tx))
	require.NoError(t, err)

	t.Run("pushes event", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		q := NewQueue(rdb, "")

		mock.ExpectRPush(DefaultQueue, string(payload)).SetVal(1)

		assert.NoError(t, q.Publish(ctx, tx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("custom queue name", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		q := NewQueue(rdb, "audit:transfers")

		mock.ExpectRPush("audit:transfers", string(payload)).SetVal(3)

		assert.NoError(t, q.Publish(ctx, tx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		q := NewQueue(rdb, "")

		mock.ExpectRPush(DefaultQueue, string(payload)).SetErr(errors.New("READONLY"))

		err := q.Publish(ctx, tx)
		assert.ErrorContains(t, err, "publish transfer "+tx.Reference)
		assert.ErrorContains(t, err, "READONLY")
	})

	t.Run("disabled without client", func(t *testing.T) {
		assert.NoError(t, NewQueue(nil, "").Publish(ctx, tx))
	})
}

func TestTransferEventPayload(t *testing.T) {
	payload, err := json.Marshal(models.NewTransferEvent(sampleTransaction()))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"transaction_id": 7,
		"reference": "3f1c2a9e-8d4b-4c4e-9a51-0c7e1f2d3b4a",
		"source_account_id": 1,
		"destination_account_id": 2,
		"amount": 5000,
		"created_at": "2025-01-02T03:04:05Z"
	}`, string(payload))
}
