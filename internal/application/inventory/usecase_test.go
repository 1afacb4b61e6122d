package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/application/inventory"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newStock(t *testing.T) (context.Context, repository.Store, *inventory.StockUseCase) {
	t.Helper()
	db := memory.New()
	return context.Background(), db.Repos(), inventory.NewStockUseCase(db.Repos(), db)
}

func TestStock_CreateRegistraEgreso(t *testing.T) {
	ctx, repos, uc := newStock(t)

	item, err := uc.Create(ctx, dto.CreateStockItemRequest{Name: "Cable UTP", CostAmount: d("1000"), InitialQuantity: d("4")})
	require.NoError(t, err)
	assert.Equal(t, "250", item.UnitCost.String())
	assert.Equal(t, "4", item.Quantity.String())
	assert.Equal(t, entity.StockStatusAvailable, item.Status)
	require.NotNil(t, item.PurchaseTxID)

	txs, err := repos.Transactions.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, *item.PurchaseTxID, txs[0].ID)
	assert.Equal(t, entity.CategoryMaterials, txs[0].CategoryName)
	assert.Equal(t, "Compra Stock: Cable UTP (4u)", txs[0].Description)
	assert.Equal(t, "1000", txs[0].Amount.String())

	_, err = uc.Create(ctx, dto.CreateStockItemRequest{Name: "x", CostAmount: d("10"), InitialQuantity: d("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStock_UseDescuentaYAgota(t *testing.T) {
	ctx, repos, uc := newStock(t)
	require.NoError(t, repos.Employees.Create(ctx, &entity.Employee{ID: "e1", Name: "Juan"}))
	item, err := uc.Create(ctx, dto.CreateStockItemRequest{Name: "Grampas", CostAmount: d("50"), InitialQuantity: d("5")})
	require.NoError(t, err)
	emp := "e1"

	usage, err := uc.Use(ctx, item.ID, dto.StockUsageRequest{EmployeeID: &emp, Quantity: d("5")})
	require.NoError(t, err)
	assert.Equal(t, "Retirado por personal", usage.Description)

	got, err := repos.StockItems.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.IsZero())
	assert.Equal(t, entity.StockStatusDepleted, got.Status)

	_, err = uc.Use(ctx, item.ID, dto.StockUsageRequest{Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.Use(ctx, "nada", dto.StockUsageRequest{Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	other := "e9"
	_, err = uc.Use(ctx, item.ID, dto.StockUsageRequest{EmployeeID: &other, Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStock_SellRegistraIngreso(t *testing.T) {
	ctx, repos, uc := newStock(t)
	item, err := uc.Create(ctx, dto.CreateStockItemRequest{Name: "Caño", CostAmount: d("100"), InitialQuantity: d("10")})
	require.NoError(t, err)

	sold, err := uc.Sell(ctx, item.ID, dto.StockSaleRequest{Quantity: d("3"), SalePriceUnit: d("25"), WorkDescription: "Obra Pérez"})
	require.NoError(t, err)
	assert.Equal(t, "7", sold.Quantity.String())

	txs, err := repos.Transactions.List(ctx, 10, 0)
	require.NoError(t, err)
	var income *entity.Transaction
	for _, tx := range txs {
		if tx.Type == entity.TxTypeIncome {
			income = tx
		}
	}
	require.NotNil(t, income)
	assert.Equal(t, "75", income.Amount.String())
	assert.Equal(t, entity.CategorySales, income.CategoryName)

	_, err = uc.Sell(ctx, item.ID, dto.StockSaleRequest{Quantity: d("8"), SalePriceUnit: d("1")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestReplenishment_SugiereSegunConsumo(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	now := time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)
	closedAt := now.Add(-48 * time.Hour)

	require.NoError(t, repos.StockItems.Create(ctx, &entity.StockItem{ID: "cable", Name: "Cable", Quantity: d("20"), UnitCost: d("2")}))
	require.NoError(t, repos.StockItems.Create(ctx, &entity.StockItem{ID: "grampa", Name: "Grampa", Quantity: d("3"), UnitCost: d("1")}))
	require.NoError(t, repos.StockItems.Create(ctx, &entity.StockItem{ID: "quieto", Name: "Sin uso", Quantity: d("0")}))

	require.NoError(t, repos.Trips.Create(ctx, &entity.WorkTrip{ID: "t1", Status: entity.TripStatusClosed, Date: closedAt, ClosedAt: &closedAt}))
	require.NoError(t, repos.Trips.CreateMaterial(ctx, &entity.TripMaterial{ID: "m1", TripID: "t1", StockItemID: "cable", QuantityUsed: d("50")}))
	require.NoError(t, repos.Usages.Create(ctx, &entity.MaterialUsage{ID: "u1", StockItemID: "cable", Quantity: d("10"), Date: now.Add(-time.Hour)}))
	require.NoError(t, repos.Usages.Create(ctx, &entity.MaterialUsage{ID: "u2", StockItemID: "grampa", Quantity: d("10"), Date: now.Add(-time.Hour)}))
	require.NoError(t, repos.Usages.Create(ctx, &entity.MaterialUsage{ID: "old", StockItemID: "grampa", Quantity: d("999"), Date: now.AddDate(0, -2, 0)}))

	uc := inventory.NewReplenishmentUseCase(repos, 7).WithClock(func() time.Time { return now })
	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	cable := list[0]
	assert.Equal(t, "cable", cable.StockItemID)
	assert.Equal(t, 1, cable.Priority)
	assert.Equal(t, "60", cable.MonthlyUsage.String())
	assert.Equal(t, "26", cable.ReorderPoint.String())
	assert.Equal(t, "52", cable.SuggestedOrderQty.String())
	assert.Equal(t, "104", cable.EstimatedOrderCost.String())

	grampa := list[1]
	assert.Equal(t, "grampa", grampa.StockItemID)
	assert.Equal(t, "4", grampa.ReorderPoint.String())
	assert.Equal(t, "9", grampa.SuggestedOrderQty.String())
}

func TestReplenishment_SinStock(t *testing.T) {
	uc := inventory.NewReplenishmentUseCase(memory.New().Repos(), 7)
	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
