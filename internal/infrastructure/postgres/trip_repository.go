package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

var _ repository.TripRepository = (*TripRepo)(nil)

// TripRepo implementación de TripRepository sobre PostgreSQL (usable con pool o tx).
type TripRepo struct {
	q Querier
}

// NewTripRepository construye el adaptador de salidas. Pasar pool o tx (Querier).
func NewTripRepository(q Querier) *TripRepo {
	return &TripRepo{q: q}
}

const tripColumns = `id, date, description, status, vehicle_id, destination_lat, destination_lng, closed_at, created_at`

func scanTrip(s scanner) (*entity.WorkTrip, error) {
	var t entity.WorkTrip
	err := s.Scan(&t.ID, &t.Date, &t.Description, &t.Status, &t.VehicleID,
		&t.DestinationLat, &t.DestinationLng, &t.ClosedAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste la fila de la salida (sin hijos).
func (r *TripRepo) Create(ctx context.Context, t *entity.WorkTrip) error {
	query := `
		INSERT INTO work_trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, t.ID, t.Date, t.Description, t.Status, t.VehicleID,
		t.DestinationLat, t.DestinationLng, t.ClosedAt, t.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("vehículo inexistente: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

func (r *TripRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.WorkTrip, error) {
	query := `SELECT ` + tripColumns + ` FROM work_trips WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	t, err := scanTrip(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trip: %w", err)
	}
	return t, nil
}

// GetByID obtiene la salida por ID.
func (r *TripRepo) GetByID(ctx context.Context, id string) (*entity.WorkTrip, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene la salida y bloquea la fila (SELECT FOR UPDATE).
func (r *TripRepo) GetForUpdate(ctx context.Context, id string) (*entity.WorkTrip, error) {
	return r.get(ctx, id, true)
}

func (r *TripRepo) list(ctx context.Context, query string, args ...any) ([]*entity.WorkTrip, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()
	var out []*entity.WorkTrip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// List lista salidas por fecha descendente.
func (r *TripRepo) List(ctx context.Context, limit, offset int) ([]*entity.WorkTrip, error) {
	return r.list(ctx, `SELECT `+tripColumns+` FROM work_trips ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// ListBetween lista salidas con fecha en [from, to) por fecha ascendente.
func (r *TripRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.WorkTrip, error) {
	return r.list(ctx, `SELECT `+tripColumns+` FROM work_trips WHERE date >= $1 AND date < $2 ORDER BY date`,
		from, to)
}

// MarkClosed es un UPDATE condicional: solo cierra si la salida sigue OPEN.
func (r *TripRepo) MarkClosed(ctx context.Context, id string, at time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE work_trips SET status = $2, closed_at = $3 WHERE id = $1 AND status = $4`,
		id, entity.TripStatusClosed, at, entity.TripStatusOpen)
	if err != nil {
		return false, fmt.Errorf("close trip: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ── Asignaciones ──────────────────────────────────────────────────────────────

const assignmentColumns = `id, trip_id, employee_id, is_present, meters_done, historical_price, total_earned, settled_at`

// CreateAssignment persiste la asignación de un empleado a la salida.
func (r *TripRepo) CreateAssignment(ctx context.Context, a *entity.TripAssignment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO trip_assignments (`+assignmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.TripID, a.EmployeeID, a.IsPresent, a.MetersDone, a.HistoricalPrice, a.TotalEarned, a.SettledAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("empleado repetido en la salida: %w", domain.ErrInvalidInput)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("empleado %s: %w", a.EmployeeID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// UpdateAssignment persiste metros, precio, ganancia y liquidación.
func (r *TripRepo) UpdateAssignment(ctx context.Context, a *entity.TripAssignment) error {
	_, err := r.q.Exec(ctx, `
		UPDATE trip_assignments
		SET meters_done = $2, historical_price = $3, total_earned = $4, settled_at = $5
		WHERE id = $1`,
		a.ID, a.MetersDone, a.HistoricalPrice, a.TotalEarned, a.SettledAt)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// ListAssignments lista las asignaciones de la salida.
func (r *TripRepo) ListAssignments(ctx context.Context, tripID string) ([]*entity.TripAssignment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+assignmentColumns+` FROM trip_assignments WHERE trip_id = $1 ORDER BY id`, tripID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var out []*entity.TripAssignment
	for rows.Next() {
		var a entity.TripAssignment
		if err := rows.Scan(&a.ID, &a.TripID, &a.EmployeeID, &a.IsPresent, &a.MetersDone,
			&a.HistoricalPrice, &a.TotalEarned, &a.SettledAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// ── Materiales ────────────────────────────────────────────────────────────────

const materialColumns = `id, trip_id, stock_item_id, quantity_out, quantity_returned, quantity_used`

// CreateMaterial persiste un material llevado en la salida.
func (r *TripRepo) CreateMaterial(ctx context.Context, m *entity.TripMaterial) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO trip_materials (`+materialColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.TripID, m.StockItemID, m.QuantityOut, m.QuantityReturned, m.QuantityUsed)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("material repetido en la salida: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert trip material: %w", err)
	}
	return nil
}

// UpdateMaterial persiste devuelto y usado.
func (r *TripRepo) UpdateMaterial(ctx context.Context, m *entity.TripMaterial) error {
	_, err := r.q.Exec(ctx,
		`UPDATE trip_materials SET quantity_returned = $2, quantity_used = $3 WHERE id = $1`,
		m.ID, m.QuantityReturned, m.QuantityUsed)
	if err != nil {
		return fmt.Errorf("update trip material: %w", err)
	}
	return nil
}

// ListMaterials lista los materiales de la salida.
func (r *TripRepo) ListMaterials(ctx context.Context, tripID string) ([]*entity.TripMaterial, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+materialColumns+` FROM trip_materials WHERE trip_id = $1 ORDER BY id`, tripID)
	if err != nil {
		return nil, fmt.Errorf("list trip materials: %w", err)
	}
	defer rows.Close()
	var out []*entity.TripMaterial
	for rows.Next() {
		var m entity.TripMaterial
		if err := rows.Scan(&m.ID, &m.TripID, &m.StockItemID, &m.QuantityOut,
			&m.QuantityReturned, &m.QuantityUsed); err != nil {
			return nil, fmt.Errorf("scan trip material: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// ListByEmployee lista lo producido por el empleado en salidas cerradas, más recientes primero.
func (r *TripRepo) ListByEmployee(ctx context.Context, employeeID string) ([]repository.EmployeeTrip, error) {
	rows, err := r.q.Query(ctx, `
		SELECT t.id, t.date, t.description, a.meters_done, a.historical_price, a.total_earned
		FROM trip_assignments a
		JOIN work_trips t ON t.id = a.trip_id
		WHERE a.employee_id = $1 AND t.status = $2
		ORDER BY t.date DESC`,
		employeeID, entity.TripStatusClosed)
	if err != nil {
		return nil, fmt.Errorf("list employee trips: %w", err)
	}
	defer rows.Close()
	var out []repository.EmployeeTrip
	for rows.Next() {
		var e repository.EmployeeTrip
		if err := rows.Scan(&e.TripID, &e.Date, &e.Description, &e.MetersDone, &e.HistoricalPrice, &e.TotalEarned); err != nil {
			return nil, fmt.Errorf("scan employee trip: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ── Agregados (reportes / reposición) ─────────────────────────────────────────

// LaborBetween suma lo ganado en salidas cerradas con fecha en [from, to).
func (r *TripRepo) LaborBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(a.total_earned), 0)
		FROM trip_assignments a
		JOIN work_trips t ON t.id = a.trip_id
		WHERE t.status = $1 AND t.date >= $2 AND t.date < $3`,
		entity.TripStatusClosed, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("labor between: %w", err)
	}
	return total, nil
}

// ProductionBetween agrupa metros y ganancia por empleado en salidas cerradas de [from, to).
func (r *TripRepo) ProductionBetween(ctx context.Context, from, to time.Time) ([]repository.EmployeeProduction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT e.id, e.name, COALESCE(SUM(a.meters_done), 0), COALESCE(SUM(a.total_earned), 0)
		FROM trip_assignments a
		JOIN work_trips t ON t.id = a.trip_id
		JOIN employees e ON e.id = a.employee_id
		WHERE t.status = $1 AND t.date >= $2 AND t.date < $3
		GROUP BY e.id, e.name
		ORDER BY e.name`,
		entity.TripStatusClosed, from, to)
	if err != nil {
		return nil, fmt.Errorf("production between: %w", err)
	}
	defer rows.Close()
	var out []repository.EmployeeProduction
	for rows.Next() {
		var p repository.EmployeeProduction
		if err := rows.Scan(&p.EmployeeID, &p.EmployeeName, &p.Meters, &p.Earned); err != nil {
			return nil, fmt.Errorf("scan production: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UsedSince suma quantity_used por ítem en salidas cerradas desde since.
func (r *TripRepo) UsedSince(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT m.stock_item_id, COALESCE(SUM(m.quantity_used), 0)
		FROM trip_materials m
		JOIN work_trips t ON t.id = m.trip_id
		WHERE t.closed_at >= $1
		GROUP BY m.stock_item_id`, since)
	if err != nil {
		return nil, fmt.Errorf("used since: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var id string
		var qty decimal.Decimal
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, fmt.Errorf("scan used: %w", err)
		}
		out[id] = qty
	}
	return out, rows.Err()
}
