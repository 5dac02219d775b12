// Package idempotency replays the stored response of a request that was
// already processed under the same Idempotency-Key header.
package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	HeaderKey = "Idempotency-Key"

	keyPrefix     = "idempotency:"
	pendingMarker = "pending"
	maxKeyLength  = 255
)

var (
	// ErrInProgress is returned while another request holds the key.
	ErrInProgress = errors.New("request with this idempotency key is in progress")
	ErrInvalidKey = errors.New("invalid idempotency key")
	// ErrKeyReused is returned when a key comes back with a different request.
	ErrKeyReused = errors.New("idempotency key was already used for a different request")
)

// Record is the response stored for a completed request.
type Record struct {
	Fingerprint string          `json:"fingerprint"`
	Status      int             `json:"status"`
	Body        json.RawMessage `json:"body"`
}

// Store keeps idempotency records in Redis. A nil *Store, or one built
// without a client, accepts every request and remembers nothing.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: rdb, ttl: ttl}
}

func (s *Store) enabled() bool {
	return s != nil && s.redis != nil
}

// ValidateKey checks the header value before it is used as a Redis key.
func ValidateKey(key string) error {
	if key == "" || len(key) > maxKeyLength {
		return ErrInvalidKey
	}
	return nil
}

// Fingerprint hashes the decoded request so a reused key can be told apart
// from a genuine retry.
func Fingerprint(req any) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Begin claims key for a new request. It returns (nil, nil) when the caller
// should process the request, the stored Record when the same request
// already completed, ErrKeyReused when it completed with a different
// fingerprint, and ErrInProgress when another request still holds the key.
func (s *Store) Begin(ctx context.Context, key, fingerprint string) (*Record, error) {
	if !s.enabled() {
		return nil, nil
	}

	rkey := keyPrefix + key
	claimed, err := s.redis.SetNX(ctx, rkey, pendingMarker, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if claimed {
		return nil, nil
	}

	val, err := s.redis.Get(ctx, rkey).Result()
	if err == redis.Nil {
		// expired between SETNX and GET
		return s.Begin(ctx, key, fingerprint)
	}
	if err != nil {
		return nil, fmt.Errorf("read idempotency key: %w", err)
	}
	if val == pendingMarker {
		return nil, ErrInProgress
	}

	var rec Record
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return nil, fmt.Errorf("decode idempotency record: %w", err)
	}
	if rec.Fingerprint != fingerprint {
		return nil, ErrKeyReused
	}
	return &rec, nil
}

// Complete stores the response for key so later requests replay it.
func (s *Store) Complete(ctx context.Context, key, fingerprint string, status int, body []byte) error {
	if !s.enabled() {
		return nil
	}

	data, err := json.Marshal(Record{Fingerprint: fingerprint, Status: status, Body: body})
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, keyPrefix+key, string(data), s.ttl).Err()
}

// Release frees key after a request that must be retryable, such as one
// that failed with a server error.
func (s *Store) Release(ctx context.Context, key string) error {
	if !s.enabled() {
		return nil
	}
	return s.redis.Del(ctx, keyPrefix+key).Err()
}
