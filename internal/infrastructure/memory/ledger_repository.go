package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

var (
	_ repository.TransactionRepository     = (*transactionRepo)(nil)
	_ repository.ExpenseDocumentRepository = (*expenseRepo)(nil)
	_ repository.CategoryRepository        = (*categoryRepo)(nil)
	_ repository.ConfigRepository          = (*configRepo)(nil)
	_ repository.VehicleRepository         = (*vehicleRepo)(nil)
)

type transactionRepo struct{ c conn }

func (r *transactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	return r.c.read(func(st *state) error {
		st.transactions.put(tx.ID, *tx)
		return nil
	})
}

func (r *transactionRepo) List(_ context.Context, limit, offset int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	err := r.c.read(func(st *state) error {
		rows := st.transactions.all()
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
		for i := offset; i < len(rows) && (limit <= 0 || len(out) < limit); i++ {
			t := withCategory(st, rows[i])
			out = append(out, &t)
		}
		return nil
	})
	return out, err
}

func (r *transactionRepo) ListBetween(_ context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	err := r.c.read(func(st *state) error {
		for _, t := range st.transactions.all() {
			if inRange(t.Date, from, to) {
				t := withCategory(st, t)
				out = append(out, &t)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
		return nil
	})
	return out, err
}

func (r *transactionRepo) Delete(_ context.Context, id string) error {
	return r.c.read(func(st *state) error {
		if _, ok := st.transactions.get(id); !ok {
			return domain.ErrNotFound
		}
		st.transactions.del(id)
		return nil
	})
}

func withCategory(st *state, t entity.Transaction) entity.Transaction {
	if c, ok := st.categories.get(t.CategoryID); ok {
		t.CategoryName = c.Name
	}
	return t
}

type expenseRepo struct{ c conn }

func (r *expenseRepo) Create(_ context.Context, doc *entity.ExpenseDocument) error {
	return r.c.read(func(st *state) error {
		st.expenses.put(doc.ID, *doc)
		return nil
	})
}

func (r *expenseRepo) List(_ context.Context) ([]*entity.ExpenseDocument, error) {
	return r.filter(func(entity.ExpenseDocument) bool { return true })
}

func (r *expenseRepo) ListBetween(_ context.Context, from, to time.Time) ([]*entity.ExpenseDocument, error) {
	return r.filter(func(doc entity.ExpenseDocument) bool { return inRange(doc.Date, from, to) })
}

func (r *expenseRepo) filter(keep func(entity.ExpenseDocument) bool) ([]*entity.ExpenseDocument, error) {
	var out []*entity.ExpenseDocument
	err := r.c.read(func(st *state) error {
		for _, doc := range st.expenses.all() {
			if keep(doc) {
				doc := doc
				out = append(out, &doc)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
		return nil
	})
	return out, err
}

type categoryRepo struct{ c conn }

func (r *categoryRepo) Ensure(_ context.Context, name, txType string) (*entity.Category, error) {
	var out *entity.Category
	err := r.c.read(func(st *state) error {
		for _, c := range st.categories.all() {
			if strings.EqualFold(c.Name, name) {
				c := c
				out = &c
				return nil
			}
		}
		c := entity.Category{ID: uuid.New().String(), Name: name, Type: txType}
		st.categories.put(c.ID, c)
		out = &c
		return nil
	})
	return out, err
}

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.c.read(func(st *state) error {
		for _, other := range st.categories.all() {
			if strings.EqualFold(other.Name, c.Name) {
				return domain.ErrDuplicate
			}
		}
		st.categories.put(c.ID, *c)
		return nil
	})
}

func (r *categoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.c.read(func(st *state) error {
		for _, c := range st.categories.all() {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

type configRepo struct{ c conn }

func (r *configRepo) Get(_ context.Context, key string) (*entity.SystemConfig, error) {
	var out *entity.SystemConfig
	err := r.c.read(func(st *state) error {
		if cfg, ok := st.config.get(key); ok {
			out = &cfg
		}
		return nil
	})
	return out, err
}

func (r *configRepo) Set(_ context.Context, cfg *entity.SystemConfig) error {
	return r.c.read(func(st *state) error {
		st.config.put(cfg.Key, *cfg)
		return nil
	})
}

type vehicleRepo struct{ c conn }

func (r *vehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	return r.c.read(func(st *state) error {
		for _, other := range st.vehicles.all() {
			if strings.EqualFold(other.Plate, v.Plate) {
				return domain.ErrDuplicate
			}
		}
		st.vehicles.put(v.ID, *v)
		return nil
	})
}

func (r *vehicleRepo) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	var out *entity.Vehicle
	err := r.c.read(func(st *state) error {
		if v, ok := st.vehicles.get(id); ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *vehicleRepo) Update(_ context.Context, v *entity.Vehicle) error {
	return r.c.read(func(st *state) error {
		if _, ok := st.vehicles.get(v.ID); !ok {
			return domain.ErrNotFound
		}
		for _, other := range st.vehicles.all() {
			if other.ID != v.ID && strings.EqualFold(other.Plate, v.Plate) {
				return domain.ErrDuplicate
			}
		}
		st.vehicles.put(v.ID, *v)
		return nil
	})
}

func (r *vehicleRepo) List(_ context.Context) ([]*entity.Vehicle, error) {
	var out []*entity.Vehicle
	err := r.c.read(func(st *state) error {
		for _, v := range st.vehicles.all() {
			v := v
			out = append(out, &v)
		}
		return nil
	})
	return out, err
}
