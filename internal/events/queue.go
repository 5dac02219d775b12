// Package events publishes committed transfers to a Redis list so that
// downstream consumers (notifications, reconciliation) can pick them up.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/simplebank/backend/internal/models"
)

const DefaultQueue = "ledger:transfers"

type Queue struct {
	redis *redis.Client
	name  string
}

// NewQueue returns a queue writing to the Redis list name. A nil client
// yields a queue that drops every event.
func NewQueue(rdb *redis.Client, name string) *Queue {
	if name == "" {
		name = DefaultQueue
	}
	return &Queue{redis: rdb, name: name}
}

// Publish appends the event for a committed transfer to the queue.
func (q *Queue) Publish(ctx context.Context, tx *models.Transaction) error {
	if q == nil || q.redis == nil {
		return nil
	}

	data, err := json.Marshal(models.NewTransferEvent(tx))
	if err != nil {
		return err
	}

	if err := q.redis.RPush(ctx, q.name, string(data)).Err(); err != nil {
		return fmt.Errorf("publish transfer %s: %w", tx.Reference, err)
	}
	return nil
}
