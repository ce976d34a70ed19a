package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodsales/dashboard/internal/core/domain"
)

// IdentityCache memoises /accounts/users/current responses per session.
// Key format: identity:<session_id>
type IdentityCache struct {
	client redis.Cmdable
}

func NewIdentityCache(client redis.Cmdable) *IdentityCache {
	return &IdentityCache{client: client}
}

// Get returns (nil, nil) on a miss.
func (c *IdentityCache) Get(ctx context.Context, sessionID string) (*domain.Identity, error) {
	raw, err := c.client.Get(ctx, identityKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("identity cache get: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, fmt.Errorf("identity cache decode: %w", err)
	}
	return &identity, nil
}

func (c *IdentityCache) Set(ctx context.Context, sessionID string, identity *domain.Identity, ttl time.Duration) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("identity cache encode: %w", err)
	}
	return c.client.Set(ctx, identityKey(sessionID), raw, ttl).Err()
}

func (c *IdentityCache) Delete(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, identityKey(sessionID)).Err()
}

func identityKey(sessionID string) string {
	return "identity:" + sessionID
}
