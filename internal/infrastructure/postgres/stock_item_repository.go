package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

var (
	_ repository.StockItemRepository     = (*StockItemRepo)(nil)
	_ repository.MaterialUsageRepository = (*MaterialUsageRepo)(nil)
)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, name, cost_amount, initial_quantity, quantity, unit_cost, purchase_date, status, purchase_tx_id`

func scanStockItem(s scanner) (*entity.StockItem, error) {
	var it entity.StockItem
	if err := s.Scan(&it.ID, &it.Name, &it.CostAmount, &it.InitialQuantity, &it.Quantity,
		&it.UnitCost, &it.PurchaseDate, &it.Status, &it.PurchaseTxID); err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un ítem de stock.
func (r *StockItemRepo) Create(ctx context.Context, it *entity.StockItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_items (`+stockItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		it.ID, it.Name, it.CostAmount, it.InitialQuantity, it.Quantity,
		it.UnitCost, it.PurchaseDate, it.Status, it.PurchaseTxID)
	if err != nil {
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

func (r *StockItemRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	it, err := scanStockItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return it, nil
}

// GetByID obtiene un ítem por ID.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el ítem y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.get(ctx, id, true)
}

// UpdateQuantity persiste cantidad y estado.
func (r *StockItemRepo) UpdateQuantity(ctx context.Context, it *entity.StockItem) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_items SET quantity = $2, status = $3 WHERE id = $1`,
		it.ID, it.Quantity, it.Status)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el stock por fecha de compra descendente.
func (r *StockItemRepo) List(ctx context.Context) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockItemColumns+` FROM stock_items ORDER BY purchase_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// MaterialUsageRepo implementación de MaterialUsageRepository sobre PostgreSQL.
type MaterialUsageRepo struct {
	q Querier
}

// NewMaterialUsageRepository construye el adaptador de retiros directos.
func NewMaterialUsageRepository(q Querier) *MaterialUsageRepo {
	return &MaterialUsageRepo{q: q}
}

// Create persiste un retiro.
func (r *MaterialUsageRepo) Create(ctx context.Context, u *entity.MaterialUsage) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO material_usages (id, stock_item_id, employee_id, quantity, date, description, sale_price_total, sale_tx_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.StockItemID, u.EmployeeID, u.Quantity, u.Date, u.Description, u.SalePriceTotal, u.SaleTxID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert material usage: %w", err)
	}
	return nil
}

// ListByEmployee lista los retiros de un empleado, del más reciente al más antiguo.
func (r *MaterialUsageRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.MaterialUsage, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, stock_item_id, employee_id, quantity, date, description, sale_price_total, sale_tx_id
		FROM material_usages WHERE employee_id = $1 ORDER BY date DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list usages: %w", err)
	}
	defer rows.Close()
	var out []*entity.MaterialUsage
	for rows.Next() {
		var u entity.MaterialUsage
		if err := rows.Scan(&u.ID, &u.StockItemID, &u.EmployeeID, &u.Quantity, &u.Date,
			&u.Description, &u.SalePriceTotal, &u.SaleTxID); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// SumSince suma cantidades retiradas por ítem desde since.
func (r *MaterialUsageRepo) SumSince(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT stock_item_id, SUM(quantity) FROM material_usages
		WHERE date >= $1 GROUP BY stock_item_id`, since)
	if err != nil {
		return nil, fmt.Errorf("sum usages: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var id string
		var qty decimal.Decimal
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, fmt.Errorf("scan usage sum: %w", err)
		}
		out[id] = qty
	}
	return out, rows.Err()
}
