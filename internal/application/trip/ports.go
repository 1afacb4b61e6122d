package trip

import (
	"context"
	"time"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de salidas.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Store) error) error
}

// Locker excluye cierres concurrentes de una misma salida entre instancias de la API.
// AcquireTripLock devuelve un token que identifica al dueño; ReleaseTripLock solo libera
// el lock si sigue perteneciendo a ese token.
type Locker interface {
	AcquireTripLock(ctx context.Context, tripID string, ttl time.Duration) (token string, ok bool, err error)
	ReleaseTripLock(ctx context.Context, tripID, token string) error
}

// NopLocker siempre concede el lock (sin Redis configurado).
type NopLocker struct{}

func (NopLocker) AcquireTripLock(context.Context, string, time.Duration) (string, bool, error) {
	return "", true, nil
}

func (NopLocker) ReleaseTripLock(context.Context, string, string) error { return nil }
