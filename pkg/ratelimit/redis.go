package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/finds-lab/backend/pkg/crypto"
	"github.com/finds-lab/backend/pkg/xredis"
)

// RedisLimiter shares windows across server instances through a keyed
// counter. The window starts when the counter is created and ends when the
// key expires.
type RedisLimiter struct {
	limit  int
	window time.Duration
	client xredis.Client
}

func NewRedisLimiter(client xredis.Client, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &RedisLimiter{
		limit:  limit,
		window: window,
		client: client,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, credential string) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s", crypto.SHA256([]byte(credential)))

	count, err := l.client.Incr(ctx, key)
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window); err != nil {
			return false, err
		}
	}

	return count <= int64(l.limit), nil
}
