package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockItemRequest body para POST /api/stock (compra de un lote).
type CreateStockItemRequest struct {
	Name            string          `json:"name"`
	CostAmount      decimal.Decimal `json:"cost_amount"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	PurchaseDate    *time.Time      `json:"purchase_date,omitempty"`
}

// StockItemResponse ítem de stock.
type StockItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	CostAmount      decimal.Decimal `json:"cost_amount"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	PurchaseDate    time.Time       `json:"purchase_date"`
	Status          string          `json:"status"`
	PurchaseTxID    *string         `json:"purchase_tx_id,omitempty"`
}

// StockUsageRequest body para POST /api/stock/:id/use.
type StockUsageRequest struct {
	EmployeeID  *string         `json:"employee_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description,omitempty"`
}

// StockSaleRequest body para POST /api/stock/:id/sell.
type StockSaleRequest struct {
	Quantity        decimal.Decimal `json:"quantity"`
	SalePriceUnit   decimal.Decimal `json:"sale_price_unit"`
	WorkDescription string          `json:"work_description"`
}

// MaterialUsageResponse retiro de material.
type MaterialUsageResponse struct {
	ID             string           `json:"id"`
	StockItemID    string           `json:"stock_item_id"`
	EmployeeID     *string          `json:"employee_id,omitempty"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Date           time.Time        `json:"date"`
	Description    string           `json:"description"`
	SalePriceTotal *decimal.Decimal `json:"sale_price_total,omitempty"`
}

// ReplenishmentSuggestionDTO sugerencia de compra para un ítem bajo su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	StockItemID        string          `json:"stock_item_id"`
	Name               string          `json:"name"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MonthlyUsage       decimal.Decimal `json:"monthly_usage"`  // salidas cerradas + retiros, últimos 30 días
	SafetyStock        decimal.Decimal `json:"safety_stock"`   // 20% del consumo mensual
	ReorderPoint       decimal.Decimal `json:"reorder_point"`  // consumo diario x días de entrega + seguridad
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}
