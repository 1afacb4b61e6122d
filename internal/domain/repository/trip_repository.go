package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
)

// EmployeeProduction producción liquidada de un empleado en un período.
type EmployeeProduction struct {
	EmployeeID   string
	EmployeeName string
	Meters       decimal.Decimal
	Earned       decimal.Decimal
}

// EmployeeTrip participación de un empleado en una salida cerrada.
type EmployeeTrip struct {
	TripID          string
	Date            time.Time
	Description     string
	MetersDone      decimal.Decimal
	HistoricalPrice decimal.Decimal
	TotalEarned     decimal.Decimal
}

// TripRepository define el puerto de persistencia para salidas, asignaciones y materiales (DIP).
// GetByID / GetForUpdate devuelven solo la fila de la salida (sin hijos) o nil si no existe.
type TripRepository interface {
	Create(ctx context.Context, trip *entity.WorkTrip) error
	GetByID(ctx context.Context, id string) (*entity.WorkTrip, error)
	// GetForUpdate bloquea la fila de la salida (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.WorkTrip, error)
	List(ctx context.Context, limit, offset int) ([]*entity.WorkTrip, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.WorkTrip, error)
	// MarkClosed pasa la salida a CLOSED solo si sigue OPEN. false si no cambió ninguna fila.
	MarkClosed(ctx context.Context, id string, at time.Time) (bool, error)

	CreateAssignment(ctx context.Context, a *entity.TripAssignment) error
	UpdateAssignment(ctx context.Context, a *entity.TripAssignment) error
	ListAssignments(ctx context.Context, tripID string) ([]*entity.TripAssignment, error)

	CreateMaterial(ctx context.Context, m *entity.TripMaterial) error
	UpdateMaterial(ctx context.Context, m *entity.TripMaterial) error
	ListMaterials(ctx context.Context, tripID string) ([]*entity.TripMaterial, error)

	// ListByEmployee devuelve las asignaciones del empleado en salidas CLOSED, fecha descendente.
	ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeTrip, error)

	// LaborBetween suma total_earned de las salidas CLOSED con fecha en [from, to).
	LaborBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	// ProductionBetween agrupa por empleado los metros y lo ganado en salidas CLOSED con fecha
	// en [from, to), ordenado por nombre.
	ProductionBetween(ctx context.Context, from, to time.Time) ([]EmployeeProduction, error)
	// UsedSince suma quantity_used por ítem de stock en salidas cerradas desde since.
	UsedSince(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error)
}
