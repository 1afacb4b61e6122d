package inventory

import (
	"context"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad entre el stock y el libro contable.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Store) error) error
}
