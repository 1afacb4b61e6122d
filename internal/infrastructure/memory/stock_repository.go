package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

var (
	_ repository.StockItemRepository     = (*stockItemRepo)(nil)
	_ repository.MaterialUsageRepository = (*usageRepo)(nil)
)

type stockItemRepo struct{ c conn }

func (r *stockItemRepo) Create(_ context.Context, item *entity.StockItem) error {
	return r.c.read(func(st *state) error {
		st.stock.put(item.ID, *item)
		return nil
	})
}

func (r *stockItemRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	var out *entity.StockItem
	err := r.c.read(func(st *state) error {
		if s, ok := st.stock.get(id); ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *stockItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.GetByID(ctx, id)
}

func (r *stockItemRepo) UpdateQuantity(_ context.Context, item *entity.StockItem) error {
	return r.c.read(func(st *state) error {
		s, ok := st.stock.get(item.ID)
		if !ok {
			return nil
		}
		s.Quantity = item.Quantity
		s.Status = item.Status
		st.stock.put(s.ID, s)
		return nil
	})
}

func (r *stockItemRepo) List(_ context.Context) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	err := r.c.read(func(st *state) error {
		for _, s := range st.stock.all() {
			s := s
			out = append(out, &s)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].PurchaseDate.After(out[j].PurchaseDate) })
		return nil
	})
	return out, err
}

type usageRepo struct{ c conn }

func (r *usageRepo) Create(_ context.Context, u *entity.MaterialUsage) error {
	return r.c.read(func(st *state) error {
		st.usages.put(u.ID, *u)
		return nil
	})
}

func (r *usageRepo) ListByEmployee(_ context.Context, employeeID string) ([]*entity.MaterialUsage, error) {
	var out []*entity.MaterialUsage
	err := r.c.read(func(st *state) error {
		for _, u := range st.usages.all() {
			if u.EmployeeID != nil && *u.EmployeeID == employeeID {
				u := u
				out = append(out, &u)
			}
		}
		return nil
	})
	return out, err
}

func (r *usageRepo) SumSince(_ context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	err := r.c.read(func(st *state) error {
		for _, u := range st.usages.all() {
			if !u.Date.Before(since) {
				out[u.StockItemID] = out[u.StockItemID].Add(u.Quantity)
			}
		}
		return nil
	})
	return out, err
}
