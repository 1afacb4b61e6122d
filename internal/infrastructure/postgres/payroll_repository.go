package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

var (
	_ repository.AdvanceRepository = (*AdvanceRepo)(nil)
	_ repository.PayrollRepository = (*PayrollRepo)(nil)
)

// AdvanceRepo implementación de AdvanceRepository sobre PostgreSQL (usable con pool o tx).
type AdvanceRepo struct {
	q Querier
}

// NewAdvanceRepository construye el adaptador de adelantos.
func NewAdvanceRepository(q Querier) *AdvanceRepo {
	return &AdvanceRepo{q: q}
}

const advanceColumns = `id, employee_id, amount, date, description, is_settled, transaction_id`

// Create persiste un adelanto.
func (r *AdvanceRepo) Create(ctx context.Context, a *entity.Advance) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO advances (`+advanceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.EmployeeID, a.Amount, a.Date, a.Description, a.IsSettled, a.TransactionID)
	if err != nil {
		return fmt.Errorf("insert advance: %w", err)
	}
	return nil
}

func (r *AdvanceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Advance, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list advances: %w", err)
	}
	defer rows.Close()
	var out []*entity.Advance
	for rows.Next() {
		var a entity.Advance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Amount, &a.Date, &a.Description,
			&a.IsSettled, &a.TransactionID); err != nil {
			return nil, fmt.Errorf("scan advance: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// ListPendingForUpdate devuelve los adelantos sin saldar por fecha ascendente y bloquea sus filas.
func (r *AdvanceRepo) ListPendingForUpdate(ctx context.Context, employeeID string) ([]*entity.Advance, error) {
	return r.list(ctx, `
		SELECT `+advanceColumns+` FROM advances
		WHERE employee_id = $1 AND NOT is_settled
		ORDER BY date, id
		FOR UPDATE`, employeeID)
}

// MarkSettled marca los adelantos como saldados.
func (r *AdvanceRepo) MarkSettled(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `UPDATE advances SET is_settled = true WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("settle advances: %w", err)
	}
	return nil
}

// ListByEmployee lista todos los adelantos del empleado, del más reciente al más antiguo.
func (r *AdvanceRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Advance, error) {
	return r.list(ctx, `SELECT `+advanceColumns+` FROM advances WHERE employee_id = $1 ORDER BY date DESC`, employeeID)
}

// PayrollRepo implementación de PayrollRepository sobre PostgreSQL.
type PayrollRepo struct {
	q Querier
}

// NewPayrollRepository construye el adaptador de jornales.
func NewPayrollRepository(q Querier) *PayrollRepo {
	return &PayrollRepo{q: q}
}

const payrollColumns = `id, employee_id, date, meters, total_amount, is_paid, transaction_id`

// Create persiste un jornal.
func (r *PayrollRepo) Create(ctx context.Context, p *entity.PayrollRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payroll_records (`+payrollColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.EmployeeID, p.Date, p.Meters, p.TotalAmount, p.IsPaid, p.TransactionID)
	if err != nil {
		return fmt.Errorf("insert payroll record: %w", err)
	}
	return nil
}

func (r *PayrollRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PayrollRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payroll: %w", err)
	}
	defer rows.Close()
	var out []*entity.PayrollRecord
	for rows.Next() {
		var p entity.PayrollRecord
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Date, &p.Meters, &p.TotalAmount,
			&p.IsPaid, &p.TransactionID); err != nil {
			return nil, fmt.Errorf("scan payroll record: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// ListByEmployee lista los jornales del empleado, del más reciente al más antiguo.
func (r *PayrollRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.PayrollRecord, error) {
	return r.list(ctx, `SELECT `+payrollColumns+` FROM payroll_records WHERE employee_id = $1 ORDER BY date DESC`, employeeID)
}

// ListBetween lista jornales con fecha en [from, to).
func (r *PayrollRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.PayrollRecord, error) {
	return r.list(ctx, `SELECT `+payrollColumns+` FROM payroll_records WHERE date >= $1 AND date < $2 ORDER BY date`, from, to)
}
