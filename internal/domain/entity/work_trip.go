package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/domain"
)

// Estados de una salida. La transición es única: OPEN -> CLOSED.
const (
	TripStatusOpen   = "OPEN"
	TripStatusClosed = "CLOSED"
)

// WorkTrip representa una salida (jornada de trabajo en campo): cuadrilla, vehículo y materiales.
// Assignments y Materials se cargan con consultas explícitas por trip_id.
type WorkTrip struct {
	ID             string
	Date           time.Time
	Description    string
	Status         string
	VehicleID      *string
	DestinationLat *float64
	DestinationLng *float64
	ClosedAt       *time.Time
	CreatedAt      time.Time

	Assignments []*TripAssignment
	Materials   []*TripMaterial
}

// IsClosed indica si la salida ya fue cerrada.
func (t *WorkTrip) IsClosed() bool { return t.Status == TripStatusClosed }

// TripAssignment es la producción de un empleado dentro de una salida.
//
// Mientras la salida está abierta HistoricalPrice es el precio tomado al crearla y
// TotalEarned una estimación al precio vigente. Al cerrar, Settle fija ambos con el
// precio del cierre y marca SettledAt; desde ahí los valores son definitivos.
type TripAssignment struct {
	ID              string
	TripID          string
	EmployeeID      string
	IsPresent       bool
	MetersDone      decimal.Decimal
	HistoricalPrice decimal.Decimal
	TotalEarned     decimal.Decimal
	SettledAt       *time.Time
}

// Estimate actualiza los metros y la ganancia estimada con el precio vigente.
func (a *TripAssignment) Estimate(meters, currentPrice decimal.Decimal) {
	a.MetersDone = meters
	a.TotalEarned = meters.Mul(currentPrice)
}

// Settle liquida la asignación con el precio del cierre.
func (a *TripAssignment) Settle(meters, closePrice decimal.Decimal, at time.Time) {
	a.MetersDone = meters
	a.HistoricalPrice = closePrice
	a.TotalEarned = meters.Mul(closePrice)
	a.SettledAt = &at
}

// IsSettled indica si la asignación ya tiene valores definitivos.
func (a *TripAssignment) IsSettled() bool { return a.SettledAt != nil }

// TripMaterial registra la logística de un ítem de stock en la salida (llevado / devuelto / usado).
type TripMaterial struct {
	ID               string
	TripID           string
	StockItemID      string
	QuantityOut      decimal.Decimal
	QuantityReturned decimal.Decimal
	QuantityUsed     decimal.Decimal
}

// RegisterReturn fija la cantidad devuelta y recalcula lo usado.
// La devolución no puede ser negativa ni superar lo llevado.
func (m *TripMaterial) RegisterReturn(returned decimal.Decimal) error {
	if returned.IsNegative() || returned.GreaterThan(m.QuantityOut) {
		return domain.ErrInvalidInput
	}
	m.QuantityReturned = returned
	m.QuantityUsed = decimal.Max(decimal.Zero, m.QuantityOut.Sub(returned))
	return nil
}
