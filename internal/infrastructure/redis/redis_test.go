package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuadrilla-api/pkg/config"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "lock:trip:abc", TripLockKey("abc"))
	assert.Equal(t, "idempotency:k1", idempotencyKey("k1"))
}

func TestLockStore_NoLiberaLockAjeno(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no configurado")
	}
	ctx := context.Background()
	client, err := NewClient(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer client.Close()

	locks := NewLockStore(client)
	tripID := "test-" + uuid.New().String()
	defer client.Del(ctx, TripLockKey(tripID))

	first, ok, err := locks.AcquireTripLock(ctx, tripID, 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = locks.AcquireTripLock(ctx, tripID, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// el primer lock expira y otra instancia toma el suyo
	time.Sleep(100 * time.Millisecond)
	second, ok, err := locks.AcquireTripLock(ctx, tripID, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, locks.ReleaseTripLock(ctx, tripID, first))
	held, err := client.Get(ctx, TripLockKey(tripID)).Result()
	require.NoError(t, err)
	assert.Equal(t, second, held)

	require.NoError(t, locks.ReleaseTripLock(ctx, tripID, second))
	assert.Zero(t, client.Exists(ctx, TripLockKey(tripID)).Val())
}
