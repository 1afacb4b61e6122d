package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript borra la clave solo si sigue guardando el token de quien la tomó.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// LockStore maneja el lock de cierre de salidas en Redis (implementa trip.Locker).
type LockStore struct {
	client *redis.Client
}

// NewLockStore construye el LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// TripLockKey clave del lock de cierre de una salida.
func TripLockKey(tripID string) string { return "lock:trip:" + tripID }

// AcquireTripLock intenta tomar el lock con SETNX guardando un token aleatorio.
// ok es false si ya lo tiene otro.
func (s *LockStore) AcquireTripLock(ctx context.Context, tripID string, ttl time.Duration) (string, bool, error) {
	token := uuid.New().String()
	ok, err := s.client.SetNX(ctx, TripLockKey(tripID), token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

// ReleaseTripLock libera el lock solo si todavía es nuestro. Si expiró y lo tomó otra
// instancia, no se toca.
func (s *LockStore) ReleaseTripLock(ctx context.Context, tripID, token string) error {
	return releaseScript.Run(ctx, s.client, []string{TripLockKey(tripID)}, token).Err()
}
