package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

var _ repository.TripRepository = (*tripRepo)(nil)

type tripRepo struct{ c conn }

func (r *tripRepo) Create(_ context.Context, trip *entity.WorkTrip) error {
	return r.c.read(func(st *state) error {
		row := *trip
		row.Assignments, row.Materials = nil, nil
		st.trips.put(trip.ID, row)
		return nil
	})
}

func (r *tripRepo) GetByID(_ context.Context, id string) (*entity.WorkTrip, error) {
	var out *entity.WorkTrip
	err := r.c.read(func(st *state) error {
		if t, ok := st.trips.get(id); ok {
			out = &t
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: las transacciones en memoria ya están serializadas.
func (r *tripRepo) GetForUpdate(ctx context.Context, id string) (*entity.WorkTrip, error) {
	return r.GetByID(ctx, id)
}

func (r *tripRepo) List(_ context.Context, limit, offset int) ([]*entity.WorkTrip, error) {
	var out []*entity.WorkTrip
	err := r.c.read(func(st *state) error {
		rows := st.trips.all()
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
		for i := offset; i < len(rows) && (limit <= 0 || len(out) < limit); i++ {
			t := rows[i]
			out = append(out, &t)
		}
		return nil
	})
	return out, err
}

func (r *tripRepo) ListBetween(_ context.Context, from, to time.Time) ([]*entity.WorkTrip, error) {
	var out []*entity.WorkTrip
	err := r.c.read(func(st *state) error {
		for _, t := range st.trips.all() {
			if inRange(t.Date, from, to) {
				t := t
				out = append(out, &t)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
		return nil
	})
	return out, err
}

func (r *tripRepo) MarkClosed(_ context.Context, id string, at time.Time) (bool, error) {
	var changed bool
	err := r.c.read(func(st *state) error {
		t, ok := st.trips.get(id)
		if !ok || t.Status != entity.TripStatusOpen {
			return nil
		}
		t.Status = entity.TripStatusClosed
		t.ClosedAt = &at
		st.trips.put(id, t)
		changed = true
		return nil
	})
	return changed, err
}

func (r *tripRepo) CreateAssignment(_ context.Context, a *entity.TripAssignment) error {
	return r.c.read(func(st *state) error {
		st.assignments.put(a.ID, *a)
		return nil
	})
}

func (r *tripRepo) UpdateAssignment(_ context.Context, a *entity.TripAssignment) error {
	return r.c.read(func(st *state) error {
		st.assignments.put(a.ID, *a)
		return nil
	})
}

func (r *tripRepo) ListAssignments(_ context.Context, tripID string) ([]*entity.TripAssignment, error) {
	var out []*entity.TripAssignment
	err := r.c.read(func(st *state) error {
		for _, a := range st.assignments.all() {
			if a.TripID == tripID {
				a := a
				out = append(out, &a)
			}
		}
		return nil
	})
	return out, err
}

func (r *tripRepo) CreateMaterial(_ context.Context, m *entity.TripMaterial) error {
	return r.c.read(func(st *state) error {
		st.materials.put(m.ID, *m)
		return nil
	})
}

func (r *tripRepo) UpdateMaterial(_ context.Context, m *entity.TripMaterial) error {
	return r.c.read(func(st *state) error {
		st.materials.put(m.ID, *m)
		return nil
	})
}

func (r *tripRepo) ListMaterials(_ context.Context, tripID string) ([]*entity.TripMaterial, error) {
	var out []*entity.TripMaterial
	err := r.c.read(func(st *state) error {
		for _, m := range st.materials.all() {
			if m.TripID == tripID {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}

func (r *tripRepo) ListByEmployee(_ context.Context, employeeID string) ([]repository.EmployeeTrip, error) {
	var out []repository.EmployeeTrip
	err := r.c.read(func(st *state) error {
		for _, a := range st.assignments.all() {
			if a.EmployeeID != employeeID {
				continue
			}
			t, ok := st.trips.get(a.TripID)
			if !ok || t.Status != entity.TripStatusClosed {
				continue
			}
			out = append(out, repository.EmployeeTrip{
				TripID:          t.ID,
				Date:            t.Date,
				Description:     t.Description,
				MetersDone:      a.MetersDone,
				HistoricalPrice: a.HistoricalPrice,
				TotalEarned:     a.TotalEarned,
			})
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
		return nil
	})
	return out, err
}

func (r *tripRepo) LaborBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.c.read(func(st *state) error {
		closed := make(map[string]bool)
		for _, t := range st.trips.all() {
			if t.Status == entity.TripStatusClosed && inRange(t.Date, from, to) {
				closed[t.ID] = true
			}
		}
		for _, a := range st.assignments.all() {
			if closed[a.TripID] {
				total = total.Add(a.TotalEarned)
			}
		}
		return nil
	})
	return total, err
}

func (r *tripRepo) ProductionBetween(_ context.Context, from, to time.Time) ([]repository.EmployeeProduction, error) {
	var out []repository.EmployeeProduction
	err := r.c.read(func(st *state) error {
		closed := make(map[string]bool)
		for _, t := range st.trips.all() {
			if t.Status == entity.TripStatusClosed && inRange(t.Date, from, to) {
				closed[t.ID] = true
			}
		}
		byEmp := make(map[string]*repository.EmployeeProduction)
		for _, a := range st.assignments.all() {
			if !closed[a.TripID] {
				continue
			}
			p, ok := byEmp[a.EmployeeID]
			if !ok {
				p = &repository.EmployeeProduction{EmployeeID: a.EmployeeID, Meters: decimal.Zero, Earned: decimal.Zero}
				if e, found := st.employees.get(a.EmployeeID); found {
					p.EmployeeName = e.Name
				}
				byEmp[a.EmployeeID] = p
			}
			p.Meters = p.Meters.Add(a.MetersDone)
			p.Earned = p.Earned.Add(a.TotalEarned)
		}
		for _, p := range byEmp {
			out = append(out, *p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].EmployeeName < out[j].EmployeeName })
		return nil
	})
	return out, err
}

func (r *tripRepo) UsedSince(_ context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	err := r.c.read(func(st *state) error {
		closed := make(map[string]bool)
		for _, t := range st.trips.all() {
			if t.ClosedAt != nil && !t.ClosedAt.Before(since) {
				closed[t.ID] = true
			}
		}
		for _, m := range st.materials.all() {
			if closed[m.TripID] {
				out[m.StockItemID] = out[m.StockItemID].Add(m.QuantityUsed)
			}
		}
		return nil
	})
	return out, err
}

// inRange indica si t cae en [from, to).
func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
