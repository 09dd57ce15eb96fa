package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/storefront/config"
)

// ErrResultNotReady is returned when no result has arrived for a job yet
// (or its retention window has passed).
var ErrResultNotReady = errors.New("task result not available")

// ErrWaitTimeout is returned when Wait gives up before a result lands.
var ErrWaitTimeout = errors.New("timed out waiting for task result")

const resultKeyPrefix = "task_result:"

// resultPollInterval is how often Wait re-checks the backend.
const resultPollInterval = 200 * time.Millisecond

// ResultStore keeps task results retrievable by job id for a bounded time.
type ResultStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultStore connects to Redis and verifies the connection.
func NewResultStore(cfg *config.RedisConfig) (*ResultStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Println("Task result backend connected successfully")
	return &ResultStore{client: client, ttl: cfg.ResultTTL}, nil
}

// Save stores a result under its job id. Results expire after the
// configured TTL and are then discarded.
func (s *ResultStore) Save(ctx context.Context, jobID string, result Result) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := s.client.Set(ctx, resultKeyPrefix+jobID, body, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}
	return nil
}

// Get fetches the result for a job id, or ErrResultNotReady.
func (s *ResultStore) Get(ctx context.Context, jobID string) (*Result, error) {
	body, err := s.client.Get(ctx, resultKeyPrefix+jobID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotReady
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch result: %w", err)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &result, nil
}

// Wait polls for a result until it arrives or the timeout elapses. This is
// a diagnostic convenience; normal operation never waits on a task.
func (s *ResultStore) Wait(ctx context.Context, jobID string, timeout time.Duration) (*Result, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(resultPollInterval)
	defer ticker.Stop()

	for {
		result, err := s.Get(ctx, jobID)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, ErrResultNotReady) {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, ErrWaitTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close releases the Redis connection.
func (s *ResultStore) Close() error {
	return s.client.Close()
}
