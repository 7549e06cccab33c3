package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed login attempts per email in Redis.
// Key format: login_fail:<normalized email>, expiring after the cooldown so a
// quiet account unblocks itself.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	cooldown    time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client, maxAttempts int, cooldown time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, cooldown: cooldown}
}

// Allowed reports whether this email is still under the attempt limit.
func (t *LoginThrottle) Allowed(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < t.maxAttempts, nil
}

// RecordFailure counts one failed attempt and refreshes the cooldown window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, t.key(email))
	pipe.Expire(ctx, t.key(email), t.cooldown)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	return t.client.Del(ctx, t.key(email)).Err()
}

func (t *LoginThrottle) key(email string) string {
	return "login_fail:" + email
}
