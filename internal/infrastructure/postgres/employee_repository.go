package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

var (
	_ repository.EmployeeRepository      = (*EmployeeRepo)(nil)
	_ repository.EmployeeGroupRepository = (*EmployeeGroupRepo)(nil)
)

var errEmployeeInTrips = fmt.Errorf("el empleado tiene salidas registradas: %w", domain.ErrConflict)

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de empleados. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO employees (id, name, group_id, created_at) VALUES ($1, $2, $3, $4)`,
		e.ID, e.Name, e.GroupID, e.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("cuadrilla inexistente: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	var e entity.Employee
	err := r.q.QueryRow(ctx,
		`SELECT id, name, group_id, created_at FROM employees WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.GroupID, &e.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// List lista empleados por nombre.
func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, group_id, created_at FROM employees ORDER BY lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var out []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.GroupID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Delete borra el empleado; adelantos, jornales, asistencias y retiros caen por ON DELETE CASCADE.
// Las asignaciones a salidas lo impiden (RESTRICT).
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		switch {
		case noRows(err):
			return domain.ErrNotFound
		case isForeignKeyViolation(err):
			return errEmployeeInTrips
		}
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EmployeeGroupRepo implementación de EmployeeGroupRepository sobre PostgreSQL.
type EmployeeGroupRepo struct {
	q Querier
}

// NewEmployeeGroupRepository construye el adaptador de cuadrillas.
func NewEmployeeGroupRepository(q Querier) *EmployeeGroupRepo {
	return &EmployeeGroupRepo{q: q}
}

// Create persiste una cuadrilla. Nombre único sin distinguir mayúsculas.
func (r *EmployeeGroupRepo) Create(ctx context.Context, g *entity.EmployeeGroup) error {
	_, err := r.q.Exec(ctx, `INSERT INTO employee_groups (id, name) VALUES ($1, $2)`, g.ID, g.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee group: %w", err)
	}
	return nil
}

// GetByID obtiene una cuadrilla por ID.
func (r *EmployeeGroupRepo) GetByID(ctx context.Context, id string) (*entity.EmployeeGroup, error) {
	var g entity.EmployeeGroup
	err := r.q.QueryRow(ctx, `SELECT id, name FROM employee_groups WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee group: %w", err)
	}
	return &g, nil
}

// List lista las cuadrillas por nombre.
func (r *EmployeeGroupRepo) List(ctx context.Context) ([]*entity.EmployeeGroup, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM employee_groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list employee groups: %w", err)
	}
	defer rows.Close()
	var out []*entity.EmployeeGroup
	for rows.Next() {
		var g entity.EmployeeGroup
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan employee group: %w", err)
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}

// Delete borra la cuadrilla; sus empleados caen en cascada.
func (r *EmployeeGroupRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM employee_groups WHERE id = $1`, id)
	if err != nil {
		switch {
		case noRows(err):
			return domain.ErrNotFound
		case isForeignKeyViolation(err):
			return errEmployeeInTrips
		}
		return fmt.Errorf("delete employee group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
