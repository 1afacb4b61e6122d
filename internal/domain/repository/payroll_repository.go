package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
)

// AdvanceRepository define el puerto de persistencia para adelantos.
type AdvanceRepository interface {
	Create(ctx context.Context, a *entity.Advance) error
	// ListPendingForUpdate devuelve los adelantos no saldados del empleado, por fecha ascendente,
	// bloqueando sus filas (SELECT FOR UPDATE).
	ListPendingForUpdate(ctx context.Context, employeeID string) ([]*entity.Advance, error)
	MarkSettled(ctx context.Context, ids []string) error
	ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Advance, error)
}

// PayrollRepository define el puerto de persistencia para jornales.
type PayrollRepository interface {
	Create(ctx context.Context, r *entity.PayrollRecord) error
	ListByEmployee(ctx context.Context, employeeID string) ([]*entity.PayrollRecord, error)
	// ListBetween devuelve los jornales con fecha en [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.PayrollRecord, error)
}
