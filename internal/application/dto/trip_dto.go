package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripEmployeeInput empleado asignado al crear una salida.
type TripEmployeeInput struct {
	EmployeeID string `json:"employee_id"`
	IsPresent  *bool  `json:"is_present,omitempty"` // por defecto true
}

// TripMaterialInput material que sale con la cuadrilla.
type TripMaterialInput struct {
	StockItemID string          `json:"stock_item_id"`
	QuantityOut decimal.Decimal `json:"quantity_out"`
}

// CreateTripRequest body para POST /api/trips.
type CreateTripRequest struct {
	Date           *time.Time          `json:"date,omitempty"`
	Description    string              `json:"description"`
	VehicleID      *string             `json:"vehicle_id,omitempty"`
	DestinationLat *float64            `json:"destination_lat,omitempty"`
	DestinationLng *float64            `json:"destination_lng,omitempty"`
	Employees      []TripEmployeeInput `json:"employees"`
	Materials      []TripMaterialInput `json:"materials"`
}

// AssignmentMeters metros de una asignación (avance o cierre).
type AssignmentMeters struct {
	ID         string          `json:"id"`
	MetersDone decimal.Decimal `json:"meters_done"`
}

// MaterialReturn cantidad devuelta de un material de la salida.
type MaterialReturn struct {
	ID               string          `json:"id"`
	QuantityReturned decimal.Decimal `json:"quantity_returned"`
}

// UpdateProgressRequest body para PUT /api/trips/:id/progress.
type UpdateProgressRequest struct {
	Employees []AssignmentMeters `json:"employees"`
}

// CloseTripRequest body para POST /api/trips/:id/close.
type CloseTripRequest struct {
	Employees []AssignmentMeters `json:"employees"`
	Materials []MaterialReturn   `json:"materials"`
}

// TripAssignmentResponse producción de un empleado en la salida.
type TripAssignmentResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	IsPresent       bool            `json:"is_present"`
	MetersDone      decimal.Decimal `json:"meters_done"`
	HistoricalPrice decimal.Decimal `json:"historical_price"`
	TotalEarned     decimal.Decimal `json:"total_earned"`
	Settled         bool            `json:"settled"`
}

// TripMaterialResponse logística de un material en la salida.
type TripMaterialResponse struct {
	ID               string          `json:"id"`
	StockItemID      string          `json:"stock_item_id"`
	QuantityOut      decimal.Decimal `json:"quantity_out"`
	QuantityReturned decimal.Decimal `json:"quantity_returned"`
	QuantityUsed     decimal.Decimal `json:"quantity_used"`
}

// StockWarning aviso de stock negativo tras despachar material.
type StockWarning struct {
	StockItemID string          `json:"stock_item_id"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// TripResponse salida con asignaciones y materiales.
type TripResponse struct {
	ID             string                   `json:"id"`
	Date           time.Time                `json:"date"`
	Description    string                   `json:"description"`
	Status         string                   `json:"status"`
	VehicleID      *string                  `json:"vehicle_id,omitempty"`
	DestinationLat *float64                 `json:"destination_lat,omitempty"`
	DestinationLng *float64                 `json:"destination_lng,omitempty"`
	ClosedAt       *time.Time               `json:"closed_at,omitempty"`
	Employees      []TripAssignmentResponse `json:"employees"`
	Materials      []TripMaterialResponse   `json:"materials"`
	StockWarnings  []StockWarning           `json:"stock_warnings,omitempty"`
	VehicleWarning string                   `json:"vehicle_warning,omitempty"`
}

// TripListResponse lista paginada de salidas (sin hijos).
type TripListResponse struct {
	Items []TripResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CalendarEventProps totales de la salida que muestra el calendario.
type CalendarEventProps struct {
	Meters         decimal.Decimal `json:"meters"`
	DriverCount    int             `json:"driver_count"`
	MaterialsCount int             `json:"materials_count"`
}

// CalendarEventDTO salida cerrada como evento de calendario (fechas YYYY-MM-DD).
type CalendarEventDTO struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Start         string             `json:"start"`
	End           string             `json:"end"`
	AllDay        bool               `json:"allDay"`
	ExtendedProps CalendarEventProps `json:"extendedProps"`
}
