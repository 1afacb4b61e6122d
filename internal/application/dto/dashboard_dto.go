package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Contiene los totales del mes en curso y la serie diaria para el gráfico.
type DashboardSummaryDTO struct {
	Income    decimal.Decimal `json:"income"`     // ingresos del mes
	Expenses  decimal.Decimal `json:"expenses"`   // todos los egresos del libro del mes
	Balance   decimal.Decimal `json:"balance"`    // income - expenses
	LaborCost decimal.Decimal `json:"labor_cost"` // producción de salidas cerradas del mes

	ChartData []DailyPointDTO `json:"chart_data"`

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Marzo 2026"
}

// DailyPointDTO ingresos y egresos de un día del mes.
type DailyPointDTO struct {
	Day     int             `json:"day"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
