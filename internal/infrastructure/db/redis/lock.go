package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/siher/webpage-publisher/internal/core/domain"
)

const lockTTL = 30 * time.Second

// PublishLock serializes publish/update operations per user via a Redis
// SETNX lock. Key format: publish-lock:<user_id>. The TTL bounds how long a
// crashed request can block a user's next publish.
type PublishLock struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewPublishLock creates a PublishLock wrapping the given Redis client.
func NewPublishLock(client *redis.Client, log zerolog.Logger) *PublishLock {
	return &PublishLock{client: client, log: log}
}

// TryLock acquires the user's lock and returns its release function.
// Returns domain.ErrUpdateInProgress when another request holds the lock.
// When Redis itself is unavailable the operation proceeds unlocked; losing
// serialization beats failing every publish on a cache hiccup.
func (l *PublishLock) TryLock(ctx context.Context, userID string) (func(), error) {
	key := l.key(userID)

	ok, err := l.client.SetNX(ctx, key, "1", lockTTL).Result()
	if err != nil {
		l.log.Warn().Err(err).Str("user_id", userID).Msg("publish lock unavailable, proceeding unlocked")
		return func() {}, nil
	}
	if !ok {
		return nil, domain.ErrUpdateInProgress
	}

	return func() {
		// The request context may already be cancelled by the time the lock
		// is released.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := l.client.Del(releaseCtx, key).Err(); err != nil {
			l.log.Warn().Err(err).Str("user_id", userID).Msg("failed to release publish lock")
		}
	}, nil
}

func (l *PublishLock) key(userID string) string {
	return "publish-lock:" + userID
}
