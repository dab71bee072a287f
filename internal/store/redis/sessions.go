// Package redis provides the Redis-backed session store.
package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/domain"
)

const sessionKeyPrefix = "apty:session:"

// Sessions stores login sessions in Redis with a TTL. Session IDs are random
// 256-bit values; the record is the authoritative copy of the principal's
// identity, so role changes take effect on next login at the latest.
type Sessions struct {
	client *redis.Client
}

var _ auth.SessionStore = (*Sessions)(nil)

// New connects to Redis and verifies the connection.
func New(ctx context.Context, addr, password string, db int) (*Sessions, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	err := client.Ping(ctx).Err()
	if err != nil {
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &Sessions{client: client}, nil
}

// Create stores the session under a fresh random ID and returns that ID.
func (s *Sessions) Create(ctx context.Context, sess *auth.Session, ttl time.Duration) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("redis.Sessions.Create: %w", err)
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("redis.Sessions.Create: marshal: %w", err)
	}

	err = s.client.Set(ctx, sessionKeyPrefix+id, payload, ttl).Err()
	if err != nil {
		return "", fmt.Errorf("redis.Sessions.Create: %w", err)
	}

	return id, nil
}

// Get returns the session for the given ID, or domain.ErrNotFound if it has
// expired or never existed.
func (s *Sessions) Get(ctx context.Context, id string) (*auth.Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis.Sessions.Get: %w", err)
	}

	var sess auth.Session
	err = json.Unmarshal(payload, &sess)
	if err != nil {
		return nil, fmt.Errorf("redis.Sessions.Get: unmarshal: %w", err)
	}

	return &sess, nil
}

// Delete removes the session. Deleting an absent session is not an error.
func (s *Sessions) Delete(ctx context.Context, id string) error {
	err := s.client.Del(ctx, sessionKeyPrefix+id).Err()
	if err != nil {
		return fmt.Errorf("redis.Sessions.Delete: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *Sessions) Close() error {
	return s.client.Close()
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	_, err := rand.Read(buf)
	if err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
