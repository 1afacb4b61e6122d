package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
)

// VehicleRepository define el puerto de persistencia para la flota.
type VehicleRepository interface {
	Create(ctx context.Context, v *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	Update(ctx context.Context, v *entity.Vehicle) error
	List(ctx context.Context) ([]*entity.Vehicle, error)
}

// AttendanceRepository define el puerto de asistencia diaria (una fila por empleado y día).
type AttendanceRepository interface {
	Upsert(ctx context.Context, a *entity.DailyAttendance) error
	ListByDate(ctx context.Context, day time.Time) ([]*entity.DailyAttendance, error)
	// ListByEmployee devuelve los últimos limit días registrados del empleado, fecha descendente.
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]*entity.DailyAttendance, error)
}
