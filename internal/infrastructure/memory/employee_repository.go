package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

var (
	_ repository.EmployeeRepository      = (*employeeRepo)(nil)
	_ repository.EmployeeGroupRepository = (*groupRepo)(nil)
	_ repository.AdvanceRepository       = (*advanceRepo)(nil)
	_ repository.PayrollRepository       = (*payrollRepo)(nil)
	_ repository.AttendanceRepository    = (*attendanceRepo)(nil)
)

var errEmployeeInTrips = fmt.Errorf("el empleado tiene salidas registradas: %w", domain.ErrConflict)

type employeeRepo struct{ c conn }

func (r *employeeRepo) Create(_ context.Context, e *entity.Employee) error {
	return r.c.read(func(st *state) error {
		st.employees.put(e.ID, *e)
		return nil
	})
}

func (r *employeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.c.read(func(st *state) error {
		if e, ok := st.employees.get(id); ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *employeeRepo) List(_ context.Context) ([]*entity.Employee, error) {
	var out []*entity.Employee
	err := r.c.read(func(st *state) error {
		for _, e := range st.employees.all() {
			e := e
			out = append(out, &e)
		}
		sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
		return nil
	})
	return out, err
}

func (r *employeeRepo) Delete(_ context.Context, id string) error {
	return r.c.read(func(st *state) error {
		if _, ok := st.employees.get(id); !ok {
			return domain.ErrNotFound
		}
		return st.deleteEmployee(id)
	})
}

type groupRepo struct{ c conn }

func (r *groupRepo) Create(_ context.Context, g *entity.EmployeeGroup) error {
	return r.c.read(func(st *state) error {
		for _, other := range st.groups.all() {
			if strings.EqualFold(other.Name, g.Name) {
				return domain.ErrDuplicate
			}
		}
		st.groups.put(g.ID, *g)
		return nil
	})
}

func (r *groupRepo) GetByID(_ context.Context, id string) (*entity.EmployeeGroup, error) {
	var out *entity.EmployeeGroup
	err := r.c.read(func(st *state) error {
		if g, ok := st.groups.get(id); ok {
			out = &g
		}
		return nil
	})
	return out, err
}

func (r *groupRepo) List(_ context.Context) ([]*entity.EmployeeGroup, error) {
	var out []*entity.EmployeeGroup
	err := r.c.read(func(st *state) error {
		for _, g := range st.groups.all() {
			g := g
			out = append(out, &g)
		}
		return nil
	})
	return out, err
}

// Delete borra la cuadrilla y sus empleados. Como en Postgres, si un empleado no puede
// borrarse no se borra nada.
func (r *groupRepo) Delete(_ context.Context, id string) error {
	return r.c.read(func(st *state) error {
		if _, ok := st.groups.get(id); !ok {
			return domain.ErrNotFound
		}
		work := st.clone()
		for _, e := range work.employees.all() {
			if e.GroupID != nil && *e.GroupID == id {
				if err := work.deleteEmployee(e.ID); err != nil {
					return err
				}
			}
		}
		work.groups.del(id)
		*st = *work
		return nil
	})
}

type advanceRepo struct{ c conn }

func (r *advanceRepo) Create(_ context.Context, a *entity.Advance) error {
	return r.c.read(func(st *state) error {
		st.advances.put(a.ID, *a)
		return nil
	})
}

func (r *advanceRepo) ListPendingForUpdate(_ context.Context, employeeID string) ([]*entity.Advance, error) {
	var out []*entity.Advance
	err := r.c.read(func(st *state) error {
		for _, a := range st.advances.all() {
			if a.EmployeeID == employeeID && !a.IsSettled {
				a := a
				out = append(out, &a)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
		return nil
	})
	return out, err
}

func (r *advanceRepo) MarkSettled(_ context.Context, ids []string) error {
	return r.c.read(func(st *state) error {
		for _, id := range ids {
			if a, ok := st.advances.get(id); ok {
				a.IsSettled = true
				st.advances.put(id, a)
			}
		}
		return nil
	})
}

func (r *advanceRepo) ListByEmployee(_ context.Context, employeeID string) ([]*entity.Advance, error) {
	var out []*entity.Advance
	err := r.c.read(func(st *state) error {
		for _, a := range st.advances.all() {
			if a.EmployeeID == employeeID {
				a := a
				out = append(out, &a)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
		return nil
	})
	return out, err
}

type payrollRepo struct{ c conn }

func (r *payrollRepo) Create(_ context.Context, p *entity.PayrollRecord) error {
	return r.c.read(func(st *state) error {
		st.payroll.put(p.ID, *p)
		return nil
	})
}

func (r *payrollRepo) ListByEmployee(_ context.Context, employeeID string) ([]*entity.PayrollRecord, error) {
	var out []*entity.PayrollRecord
	err := r.c.read(func(st *state) error {
		for _, p := range st.payroll.all() {
			if p.EmployeeID == employeeID {
				p := p
				out = append(out, &p)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
		return nil
	})
	return out, err
}

func (r *payrollRepo) ListBetween(_ context.Context, from, to time.Time) ([]*entity.PayrollRecord, error) {
	var out []*entity.PayrollRecord
	err := r.c.read(func(st *state) error {
		for _, p := range st.payroll.all() {
			if inRange(p.Date, from, to) {
				p := p
				out = append(out, &p)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
		return nil
	})
	return out, err
}

type attendanceRepo struct{ c conn }

func (r *attendanceRepo) Upsert(_ context.Context, a *entity.DailyAttendance) error {
	return r.c.read(func(st *state) error {
		for _, cur := range st.attendance.all() {
			if cur.EmployeeID == a.EmployeeID && sameDay(cur.Date, a.Date) {
				cur.IsPresent = a.IsPresent
				st.attendance.put(cur.ID, cur)
				a.ID = cur.ID
				return nil
			}
		}
		st.attendance.put(a.ID, *a)
		return nil
	})
}

func (r *attendanceRepo) ListByDate(_ context.Context, day time.Time) ([]*entity.DailyAttendance, error) {
	var out []*entity.DailyAttendance
	err := r.c.read(func(st *state) error {
		for _, a := range st.attendance.all() {
			if sameDay(a.Date, day) {
				a := a
				out = append(out, &a)
			}
		}
		return nil
	})
	return out, err
}

func (r *attendanceRepo) ListByEmployee(_ context.Context, employeeID string, limit int) ([]*entity.DailyAttendance, error) {
	var out []*entity.DailyAttendance
	err := r.c.read(func(st *state) error {
		for _, a := range st.attendance.all() {
			if a.EmployeeID == employeeID {
				a := a
				out = append(out, &a)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
