package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionPrefix = "session:"

// RedisDirectory implements Resolver on top of Redis. Each open session is a
// JSON principal stored under the token key with a TTL; closing a session
// deletes the key, so expiry and revocation look the same to Resolve.
type RedisDirectory struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisDirectory creates a session directory with the given client and session TTL.
func NewRedisDirectory(client *redis.Client, ttl time.Duration) *RedisDirectory {
	return &RedisDirectory{Client: client, TTL: ttl}
}

// Resolve maps a bearer token to its principal.
func (d *RedisDirectory) Resolve(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	data, err := d.Client.Get(ctx, sessionPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	var p Principal
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session principal: %w", err)
	}
	return &p, nil
}

// Open issues a fresh opaque token for the principal.
func (d *RedisDirectory) Open(ctx context.Context, p Principal) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session principal: %w", err)
	}
	token := uuid.New().String()
	if err := d.Client.Set(ctx, sessionPrefix+token, data, d.TTL).Err(); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}

// Close revokes a session token.
func (d *RedisDirectory) Close(ctx context.Context, token string) error {
	return d.Client.Del(ctx, sessionPrefix+token).Err()
}
