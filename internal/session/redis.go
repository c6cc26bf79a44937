package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares sessions between processes. Entries carry no TTL; they
// live until revoked.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *RedisStore) Create(ctx context.Context, user User) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	byt, err := json.Marshal(user)
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, sessionKey(token), string(byt), 0).Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (s *RedisStore) Lookup(ctx context.Context, token string) (User, bool, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}

	var user User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return User{}, false, err
	}

	return user, true, nil
}

func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
