package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	MaxLoginAttempts = 5
	LoginCooldown    = 5 * time.Minute
)

// LoginLimiter counts failed logins per username in Redis. A nil client disables it.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	cooldown    time.Duration
}

func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: MaxLoginAttempts, cooldown: LoginCooldown}
}

func attemptsKey(username string) string {
	return fmt.Sprintf("login_attempts:%s", username)
}

// Remaining returns how long the username is still locked out, zero when it is not.
func (l *LoginLimiter) Remaining(ctx context.Context, username string) (time.Duration, error) {
	if l == nil || l.client == nil {
		return 0, nil
	}
	n, err := l.client.Get(ctx, attemptsKey(username)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if n < l.maxAttempts {
		return 0, nil
	}
	ttl, err := l.client.TTL(ctx, attemptsKey(username)).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (l *LoginLimiter) Fail(ctx context.Context, username string) error {
	if l == nil || l.client == nil {
		return nil
	}
	key := attemptsKey(username)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.cooldown)
	_, err := pipe.Exec(ctx)
	return err
}

func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	if l == nil || l.client == nil {
		return nil
	}
	return l.client.Del(ctx, attemptsKey(username)).Err()
}
