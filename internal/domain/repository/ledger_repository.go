package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
)

// TransactionRepository define el puerto del libro contable.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	// List ordena por fecha descendente.
	List(ctx context.Context, limit, offset int) ([]*entity.Transaction, error)
	// ListBetween devuelve los movimientos con fecha en [from, to), con nombre de categoría.
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error)
	// Delete devuelve domain.ErrNotFound si el movimiento no existe.
	Delete(ctx context.Context, id string) error
}

// ExpenseDocumentRepository define el puerto de persistencia para comprobantes de gastos.
type ExpenseDocumentRepository interface {
	Create(ctx context.Context, doc *entity.ExpenseDocument) error
	// List devuelve todos los comprobantes por fecha descendente.
	List(ctx context.Context) ([]*entity.ExpenseDocument, error)
	// ListBetween devuelve los comprobantes con fecha en [from, to), fecha descendente.
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.ExpenseDocument, error)
}

// CategoryRepository define el puerto de persistencia para categorías contables.
type CategoryRepository interface {
	// Ensure devuelve la categoría por nombre y la crea con el tipo indicado si no existe.
	Ensure(ctx context.Context, name, txType string) (*entity.Category, error)
	// Create devuelve domain.ErrDuplicate si ya existe una categoría con ese nombre.
	Create(ctx context.Context, c *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
}
