package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// Use registra un retiro de material por personal (fuera de una salida).
func (uc *StockUseCase) Use(ctx context.Context, itemID string, in dto.StockUsageRequest) (*dto.MaterialUsageResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.EmployeeID != nil && *in.EmployeeID == "" {
		in.EmployeeID = nil
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = "Retirado por personal"
	}

	var resp *dto.MaterialUsageResponse
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if in.EmployeeID != nil {
			emp, err := s.Employees.GetByID(ctx, *in.EmployeeID)
			if err != nil {
				return err
			}
			if emp == nil {
				return fmt.Errorf("empleado %s: %w", *in.EmployeeID, domain.ErrNotFound)
			}
		}
		if _, err := withdraw(ctx, s, itemID, in.Quantity); err != nil {
			return err
		}
		usage := &entity.MaterialUsage{
			ID:          uuid.New().String(),
			StockItemID: itemID,
			EmployeeID:  in.EmployeeID,
			Quantity:    in.Quantity,
			Date:        uc.now(),
			Description: desc,
		}
		if err := s.Usages.Create(ctx, usage); err != nil {
			return err
		}
		resp = toUsageResponse(usage)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Sell vende material a un cliente: descuenta stock y registra el ingreso en "Venta de Productos".
func (uc *StockUseCase) Sell(ctx context.Context, itemID string, in dto.StockSaleRequest) (*dto.StockItemResponse, error) {
	if !in.Quantity.IsPositive() || in.SalePriceUnit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	work := strings.TrimSpace(in.WorkDescription)

	var resp *dto.StockItemResponse
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		item, err := withdraw(ctx, s, itemID, in.Quantity)
		if err != nil {
			return err
		}
		total := in.Quantity.Mul(in.SalePriceUnit)
		now := uc.now()

		cat, err := s.Categories.Ensure(ctx, entity.CategorySales, entity.TxTypeIncome)
		if err != nil {
			return err
		}
		tx := &entity.Transaction{
			ID:          uuid.New().String(),
			Date:        now,
			Amount:      total,
			Description: fmt.Sprintf("Venta Stock: %s (%su) - %s", item.Name, in.Quantity.String(), work),
			Type:        entity.TxTypeIncome,
			CategoryID:  cat.ID,
		}
		if err := s.Transactions.Create(ctx, tx); err != nil {
			return err
		}
		usage := &entity.MaterialUsage{
			ID:             uuid.New().String(),
			StockItemID:    itemID,
			Quantity:       in.Quantity,
			Date:           now,
			Description:    work,
			SalePriceTotal: &total,
			SaleTxID:       &tx.ID,
		}
		if err := s.Usages.Create(ctx, usage); err != nil {
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
