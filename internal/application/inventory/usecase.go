package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// StockUseCase registra compras, retiros y ventas de material de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) sobre el ítem y Commit/Rollback.
type StockUseCase struct {
	repos repository.Store
	tx    TxRunner
	now   func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repos repository.Store, tx TxRunner) *StockUseCase {
	return &StockUseCase{repos: repos, tx: tx, now: time.Now}
}

// Create da de alta un lote comprado: costo unitario = costo total / cantidad, y registra
// el egreso en "Insumos / Materiales".
func (uc *StockUseCase) Create(ctx context.Context, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !in.InitialQuantity.IsPositive() || in.CostAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	date := uc.now()
	if in.PurchaseDate != nil {
		date = *in.PurchaseDate
	}

	var resp *dto.StockItemResponse
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		cat, err := s.Categories.Ensure(ctx, entity.CategoryMaterials, entity.TxTypeExpense)
		if err != nil {
			return err
		}
		tx := &entity.Transaction{
			ID:          uuid.New().String(),
			Date:        date,
			Amount:      in.CostAmount,
			Description: fmt.Sprintf("Compra Stock: %s (%su)", name, in.InitialQuantity.String()),
			Type:        entity.TxTypeExpense,
			CategoryID:  cat.ID,
		}
		if err := s.Transactions.Create(ctx, tx); err != nil {
			return err
		}
		item := &entity.StockItem{
			ID:              uuid.New().String(),
			Name:            name,
			CostAmount:      in.CostAmount,
			InitialQuantity: in.InitialQuantity,
			Quantity:        in.InitialQuantity,
			UnitCost:        entity.UnitCostFor(in.CostAmount, in.InitialQuantity),
			PurchaseDate:    date,
			Status:          entity.StockStatusAvailable,
			PurchaseTxID:    &tx.ID,
		}
		if err := s.StockItems.Create(ctx, item); err != nil {
			return err
		}
		resp = toStockItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List devuelve el stock por fecha de compra descendente.
func (uc *StockUseCase) List(ctx context.Context) ([]dto.StockItemResponse, error) {
	items, err := uc.repos.StockItems.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toStockItemResponse(it))
	}
	return out, nil
}

func toStockItemResponse(it *entity.StockItem) *dto.StockItemResponse {
	return &dto.StockItemResponse{
		ID:              it.ID,
		Name:            it.Name,
		CostAmount:      it.CostAmount,
		InitialQuantity: it.InitialQuantity,
		Quantity:        it.Quantity,
		UnitCost:        it.UnitCost,
		PurchaseDate:    it.PurchaseDate,
		Status:          it.Status,
		PurchaseTxID:    it.PurchaseTxID,
	}
}

func toUsageResponse(u *entity.MaterialUsage) *dto.MaterialUsageResponse {
	return &dto.MaterialUsageResponse{
		ID:             u.ID,
		StockItemID:    u.StockItemID,
		EmployeeID:     u.EmployeeID,
		Quantity:       u.Quantity,
		Date:           u.Date,
		Description:    u.Description,
		SalePriceTotal: u.SalePriceTotal,
	}
}

// withdraw bloquea el ítem y descuenta quantity. A diferencia de una salida, aquí el
// stock insuficiente es un error.
func withdraw(ctx context.Context, s repository.Store, itemID string, quantity decimal.Decimal) (*entity.StockItem, error) {
	item, err := s.StockItems.GetForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("ítem de stock %s: %w", itemID, domain.ErrNotFound)
	}
	if item.Quantity.LessThan(quantity) {
		return nil, fmt.Errorf("%s: disponible %s, pedido %s: %w",
			item.Name, item.Quantity.String(), quantity.String(), domain.ErrInsufficientStock)
	}
	item.ApplyDelta(quantity.Neg())
	if err := s.StockItems.UpdateQuantity(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
