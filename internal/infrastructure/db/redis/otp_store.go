package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore holds pending OTP challenges for the local provider.
// Key format: otp:<phone>. One outstanding challenge per phone; a new request
// overwrites the previous code.
type CodeStore struct {
	client *redis.Client
}

// NewCodeStore creates a CodeStore wrapping the given Redis client.
func NewCodeStore(client *redis.Client) *CodeStore {
	return &CodeStore{client: client}
}

// Put stores value under the phone's challenge key, expiring after ttl.
func (s *CodeStore) Put(ctx context.Context, phone, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(phone), value, ttl).Err(); err != nil {
		return fmt.Errorf("otp store put: %w", err)
	}
	return nil
}

// Get returns the stored challenge value for phone, or "" when no challenge
// is pending (never issued, expired, or already consumed).
func (s *CodeStore) Get(ctx context.Context, phone string) (string, error) {
	v, err := s.client.Get(ctx, s.key(phone)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("otp store get: %w", err)
	}
	return v, nil
}

// Delete removes the phone's pending challenge.
func (s *CodeStore) Delete(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, s.key(phone)).Err(); err != nil {
		return fmt.Errorf("otp store delete: %w", err)
	}
	return nil
}

func (s *CodeStore) key(phone string) string {
	return "otp:" + phone
}
