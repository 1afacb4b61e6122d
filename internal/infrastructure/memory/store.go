// Package memory implementa los repositorios en memoria (APP_STORE=memory y tests).
// Las transacciones trabajan sobre una copia del estado que solo se publica si fn no falla.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// table guarda filas por id conservando el orden de inserción.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) del(id string) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
}

// all devuelve las filas en orden de inserción.
func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{rows: make(map[string]T, len(t.rows)), order: append([]string(nil), t.order...)}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

// Store es la base en memoria. El cero no es usable: construir con New.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea una base vacía.
func New() *Store {
	return &Store{st: newState()}
}

// Repos devuelve repositorios fuera de transacción; cada llamada toma el lock de la base.
func (s *Store) Repos() repository.Store {
	return bind(conn{lock: &s.mu, state: func() *state { return s.st }})
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn termina sin error.
// Las transacciones se serializan: dentro de fn no se deben usar los repos de Repos().
func (s *Store) Run(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(bind(conn{state: func() *state { return work }})); err != nil {
		return err
	}
	s.st = work
	return nil
}

// conn resuelve el estado sobre el que opera un repositorio y si debe tomar el lock.
type conn struct {
	lock  sync.Locker
	state func() *state
}

func (c conn) read(fn func(st *state) error) error {
	if c.lock != nil {
		c.lock.Lock()
		defer c.lock.Unlock()
	}
	return fn(c.state())
}

func bind(c conn) repository.Store {
	return repository.Store{
		Trips:        &tripRepo{c},
		StockItems:   &stockItemRepo{c},
		Usages:       &usageRepo{c},
		Employees:    &employeeRepo{c},
		Groups:       &groupRepo{c},
		Advances:     &advanceRepo{c},
		Payroll:      &payrollRepo{c},
		Transactions: &transactionRepo{c},
		Expenses:     &expenseRepo{c},
		Categories:   &categoryRepo{c},
		Config:       &configRepo{c},
		Vehicles:     &vehicleRepo{c},
		Attendance:   &attendanceRepo{c},
	}
}
