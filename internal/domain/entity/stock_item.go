package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un ítem de stock, derivados de la cantidad disponible.
const (
	StockStatusAvailable = "AVAILABLE"
	StockStatusDepleted  = "DEPLETED"
)

// StockItem representa un lote de material comprado (cantidad disponible y costo).
// Quantity puede quedar negativa: una salida puede llevar material antes de reponerlo.
type StockItem struct {
	ID              string
	Name            string
	CostAmount      decimal.Decimal // costo total del lote
	InitialQuantity decimal.Decimal
	Quantity        decimal.Decimal // disponible
	UnitCost        decimal.Decimal
	PurchaseDate    time.Time
	Status          string
	PurchaseTxID    *string
}

// ApplyDelta suma delta a la cantidad disponible y ajusta el estado:
// <= 0 es DEPLETED, > 0 vuelve a AVAILABLE.
func (s *StockItem) ApplyDelta(delta decimal.Decimal) {
	s.Quantity = s.Quantity.Add(delta)
	if s.Quantity.GreaterThan(decimal.Zero) {
		s.Status = StockStatusAvailable
	} else {
		s.Status = StockStatusDepleted
	}
}

// UnitCostFor calcula el costo unitario de un lote (0 si la cantidad no es positiva).
func UnitCostFor(costAmount, quantity decimal.Decimal) decimal.Decimal {
	if !quantity.IsPositive() {
		return decimal.Zero
	}
	return costAmount.Div(quantity)
}

// MaterialUsage es un retiro directo de stock (fuera de una salida), opcionalmente por un empleado.
// Una venta de material también es un retiro, con su importe y el ingreso asociado.
type MaterialUsage struct {
	ID             string
	StockItemID    string
	EmployeeID     *string
	Quantity       decimal.Decimal
	Date           time.Time
	Description    string
	SalePriceTotal *decimal.Decimal
	SaleTxID       *string
}
