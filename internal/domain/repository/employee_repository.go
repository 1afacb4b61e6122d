package repository

import (
	"context"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para empleados (DIP).
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	List(ctx context.Context) ([]*entity.Employee, error)
	// Delete borra el empleado y en cascada adelantos, jornales, asistencias y retiros.
	// Devuelve domain.ErrNotFound si no existía.
	Delete(ctx context.Context, id string) error
}

// EmployeeGroupRepository define el puerto de persistencia para cuadrillas.
type EmployeeGroupRepository interface {
	Create(ctx context.Context, g *entity.EmployeeGroup) error
	GetByID(ctx context.Context, id string) (*entity.EmployeeGroup, error)
	List(ctx context.Context) ([]*entity.EmployeeGroup, error)
	// Delete borra la cuadrilla y sus empleados.
	Delete(ctx context.Context, id string) error
}
