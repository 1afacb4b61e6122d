package inventory

import "github.com/shopspring/decimal"

var (
	daysPerMonth = decimal.NewFromInt(30)
	safetyRatio  = decimal.RequireFromString("0.20")
)

// ReorderPlan resultado del cálculo de reposición de un ítem.
type ReorderPlan struct {
	DailyUsage   decimal.Decimal
	SafetyStock  decimal.Decimal
	ReorderPoint decimal.Decimal
	OrderQty     decimal.Decimal // 0 si no hace falta comprar
}

// PurchaseNeed calcula cuánto comprar de un ítem (servicio de dominio).
//
//	consumo diario  = consumo mensual / 30
//	stock seguridad = piso(consumo mensual * 0.20)
//	punto reorden   = piso(consumo diario * días de entrega) + stock seguridad
//
// Si el stock actual está en o por debajo del punto de reorden se pide lo necesario
// para cubrir el mes más la seguridad, descontando lo disponible.
func PurchaseNeed(monthlyUsage decimal.Decimal, leadDays int, stock decimal.Decimal) ReorderPlan {
	if monthlyUsage.IsNegative() {
		monthlyUsage = decimal.Zero
	}
	if leadDays < 0 {
		leadDays = 0
	}
	daily := monthlyUsage.Div(daysPerMonth)
	safety := monthlyUsage.Mul(safetyRatio).Floor()
	point := daily.Mul(decimal.NewFromInt(int64(leadDays))).Floor().Add(safety)

	plan := ReorderPlan{DailyUsage: daily, SafetyStock: safety, ReorderPoint: point, OrderQty: decimal.Zero}
	if stock.LessThanOrEqual(point) {
		plan.OrderQty = decimal.Max(decimal.Zero, monthlyUsage.Add(safety).Sub(stock))
	}
	return plan
}
