package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore guarda respuestas ya enviadas bajo la clave Idempotency-Key.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore construye el store.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

func idempotencyKey(key string) string { return "idempotency:" + key }

// Get devuelve la respuesta guardada. found es false si la clave no existe.
func (s *IdempotencyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, idempotencyKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set guarda la respuesta con vencimiento ttl.
func (s *IdempotencyStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyKey(key), data, ttl).Err()
}
