package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Session TTLs: "remember me" keeps a session for 30 days, otherwise one day.
const (
	SessionTTLDefault  = 24 * time.Hour
	SessionTTLRemember = 30 * 24 * time.Hour
)

// SessionData is the payload stored per bearer token.
type SessionData struct {
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionCache stores account sessions in Redis under a TTL, so expiry needs
// no sweeper: an absent key is an expired session.
type SessionCache struct {
	redis *RedisClient
}

// NewSessionCache creates a new SessionCache.
func NewSessionCache(redis *RedisClient) *SessionCache {
	return &SessionCache{redis: redis}
}

func (c *SessionCache) key(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Set stores a session under the token with the given TTL.
func (c *SessionCache) Set(ctx context.Context, token string, data *SessionData, ttl time.Duration) error {
	data.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return c.redis.Set(ctx, c.key(token), string(payload), ttl)
}

// Get retrieves a session by token. A missing or expired token yields
// (nil, nil).
func (c *SessionCache) Get(ctx context.Context, token string) (*SessionData, error) {
	payload, err := c.redis.Get(ctx, c.key(token))
	if err != nil {
		if IsNil(err) {
			return nil, nil
		}
		return nil, err
	}

	var data SessionData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &data, nil
}

// Delete invalidates a session token.
func (c *SessionCache) Delete(ctx context.Context, token string) error {
	return c.redis.Delete(ctx, c.key(token))
}
