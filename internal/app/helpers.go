package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"eats-backend/internal/repository"
)

// overridable in tests
var newPool = repository.NewPool

const connectAttemptTimeout = 3 * time.Second

// connectDbWithRetry dials postgres up to retries times, sleeping delay
// between attempts. Container orchestration often starts the database a
// few seconds after the service.
func connectDbWithRetry(ctx context.Context, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, connectAttemptTimeout)
		pool, err := newPool(attemptCtx, dsn)
		cancel()
		if err == nil {
			log.Printf("db connected on attempt %d", attempt)
			return pool, nil
		}

		lastErr = err
		log.Printf("db connect failed (attempt %d/%d): %v", attempt, retries, err)
		if attempt == retries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", retries, lastErr)
}
