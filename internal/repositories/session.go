package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/monkeymesh/monkeymesh/internal/logger"
	"github.com/redis/go-redis/v9"
)

// sessionKey builds the Redis key for a session ID.
func sessionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// SessionReadRepository resolves live session IDs to usernames using Redis.
type SessionReadRepository struct {
	client *redis.Client
}

// NewSessionReadRepository creates a new repository instance.
func NewSessionReadRepository(client *redis.Client) *SessionReadRepository {
	return &SessionReadRepository{client: client}
}

// Get returns the username bound to the session, or an empty string when the
// session does not exist or has expired.
func (r *SessionReadRepository) Get(ctx context.Context, sessionID uuid.UUID) (string, error) {
	key := sessionKey(sessionID)

	val, err := r.client.Get(ctx, key).Result()

	logger.Log.Infow(
		"key", key,
		"result", val,
		"error", err,
	)

	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return val, nil
}

// SessionWriteRepository creates and destroys live sessions in Redis.
type SessionWriteRepository struct {
	client *redis.Client
	exp    time.Duration // session lifetime, matches the token expiration
}

// NewSessionWriteRepository creates a new repository instance with the given session lifetime.
func NewSessionWriteRepository(client *redis.Client, expiration time.Duration) *SessionWriteRepository {
	return &SessionWriteRepository{
		client: client,
		exp:    expiration,
	}
}

// Save binds a session ID to a username until the session expires.
func (r *SessionWriteRepository) Save(ctx context.Context, sessionID uuid.UUID, username string) error {
	key := sessionKey(sessionID)
	err := r.client.Set(ctx, key, username, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"username", username,
		"result", "ok",
		"error", err,
	)

	return err
}

// Delete destroys the session. A token presented after Delete is refused by
// the auth gate even though its signature is still valid.
func (r *SessionWriteRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	key := sessionKey(sessionID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "deleted",
		"error", err,
	)

	return err
}
