package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia para ítems de stock.
// Usado dentro de transacciones para garantizar consistencia.
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error)
	// UpdateQuantity persiste cantidad y estado.
	UpdateQuantity(ctx context.Context, item *entity.StockItem) error
	// List ordena por fecha de compra descendente.
	List(ctx context.Context) ([]*entity.StockItem, error)
}

// MaterialUsageRepository persiste retiros directos de material.
type MaterialUsageRepository interface {
	Create(ctx context.Context, u *entity.MaterialUsage) error
	ListByEmployee(ctx context.Context, employeeID string) ([]*entity.MaterialUsage, error)
	// SumSince suma cantidades por ítem de stock desde since.
	SumSince(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error)
}
