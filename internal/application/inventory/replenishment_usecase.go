package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/inventory"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// usageWindow ventana de consumo usada como "consumo mensual".
const usageWindow = 30 * 24 * time.Hour

// ReplenishmentUseCase genera la lista de compra de material.
// Combina el stock disponible con el consumo real (salidas cerradas y retiros) del último mes.
type ReplenishmentUseCase struct {
	repos    repository.Store
	leadDays int
	now      func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición. leadDays son los días de
// entrega del proveedor.
func NewReplenishmentUseCase(repos repository.Store, leadDays int) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{repos: repos, leadDays: leadDays, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReplenishmentUseCase) WithClock(now func() time.Time) *ReplenishmentUseCase {
	uc.now = now
	return uc
}

// GenerateReplenishmentList devuelve los ítems en o bajo su punto de reorden con la cantidad
// sugerida de compra, ordenados por urgencia.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, err := uc.repos.StockItems.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	since := uc.now().Add(-usageWindow)
	usedInTrips, err := uc.repos.Trips.UsedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	withdrawn, err := uc.repos.Usages.SumSince(ctx, since)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, item := range items {
		monthly := zeroIfNil(usedInTrips, item.ID).Add(zeroIfNil(withdrawn, item.ID))
		plan := inventory.PurchaseNeed(monthly, uc.leadDays, item.Quantity)
		if !plan.OrderQty.IsPositive() {
			continue
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			StockItemID:        item.ID,
			Name:               item.Name,
			CurrentStock:       item.Quantity,
			MonthlyUsage:       monthly,
			SafetyStock:        plan.SafetyStock,
			ReorderPoint:       plan.ReorderPoint,
			SuggestedOrderQty:  plan.OrderQty,
			UnitCost:           item.UnitCost,
			EstimatedOrderCost: plan.OrderQty.Mul(item.UnitCost),
		})
	}

	// Primero el mayor déficit bajo el punto de reorden, luego el mayor consumo.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.ReorderPoint.Sub(a.CurrentStock)
		defB := b.ReorderPoint.Sub(b.CurrentStock)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		return a.MonthlyUsage.GreaterThan(b.MonthlyUsage)
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// zeroIfNil evita decimales sin inicializar en respuestas JSON.
func zeroIfNil(m map[string]decimal.Decimal, id string) decimal.Decimal {
	if v, ok := m[id]; ok {
		return v
	}
	return decimal.Zero
}
