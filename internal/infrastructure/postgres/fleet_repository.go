package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

var (
	_ repository.VehicleRepository    = (*VehicleRepo)(nil)
	_ repository.AttendanceRepository = (*AttendanceRepo)(nil)
)

// VehicleRepo implementación de VehicleRepository sobre PostgreSQL (usable con pool o tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador de flota.
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

const vehicleColumns = `id, name, plate, type, status, last_service_date, next_service_km, current_km`

func scanVehicle(s scanner) (*entity.Vehicle, error) {
	var v entity.Vehicle
	if err := s.Scan(&v.ID, &v.Name, &v.Plate, &v.Type, &v.Status,
		&v.LastServiceDate, &v.NextServiceKm, &v.CurrentKm); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste un vehículo. Patente única.
func (r *VehicleRepo) Create(ctx context.Context, v *entity.Vehicle) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO vehicles (`+vehicleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.Name, v.Plate, v.Type, v.Status, v.LastServiceDate, v.NextServiceKm, v.CurrentKm)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID.
func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	v, err := scanVehicle(r.q.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

// Update persiste todos los campos editables del vehículo.
func (r *VehicleRepo) Update(ctx context.Context, v *entity.Vehicle) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE vehicles
		SET name = $2, plate = $3, type = $4, status = $5, last_service_date = $6, next_service_km = $7, current_km = $8
		WHERE id = $1`,
		v.ID, v.Name, v.Plate, v.Type, v.Status, v.LastServiceDate, v.NextServiceKm, v.CurrentKm)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista la flota por nombre.
func (r *VehicleRepo) List(ctx context.Context) ([]*entity.Vehicle, error) {
	rows, err := r.q.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var out []*entity.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// AttendanceRepo implementación de AttendanceRepository sobre PostgreSQL.
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador de asistencia.
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

// Upsert registra la asistencia; una fila por empleado y día. Devuelve en a.ID el id efectivo.
func (r *AttendanceRepo) Upsert(ctx context.Context, a *entity.DailyAttendance) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO daily_attendance (id, employee_id, date, is_present) VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date) DO UPDATE SET is_present = EXCLUDED.is_present
		RETURNING id`,
		a.ID, a.EmployeeID, a.Date, a.IsPresent).Scan(&a.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("empleado %s: %w", a.EmployeeID, domain.ErrNotFound)
		}
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// ListByDate lista la asistencia del día.
func (r *AttendanceRepo) ListByDate(ctx context.Context, day time.Time) ([]*entity.DailyAttendance, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, employee_id, date, is_present FROM daily_attendance WHERE date = $1 ORDER BY employee_id`, day)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()
	var out []*entity.DailyAttendance
	for rows.Next() {
		var a entity.DailyAttendance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.IsPresent); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// ListByEmployee devuelve los últimos limit días registrados del empleado.
func (r *AttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]*entity.DailyAttendance, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, employee_id, date, is_present FROM daily_attendance
		WHERE employee_id = $1 ORDER BY date DESC LIMIT $2`, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list employee attendance: %w", err)
	}
	defer rows.Close()
	var out []*entity.DailyAttendance
	for rows.Next() {
		var a entity.DailyAttendance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.IsPresent); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
