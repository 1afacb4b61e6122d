package payroll

import (
	"context"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Store) error) error
}
