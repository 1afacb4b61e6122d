package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Cuadrilla-api/internal/application/finance"
	"github.com/jhoicas/Cuadrilla-api/internal/application/inventory"
	"github.com/jhoicas/Cuadrilla-api/internal/application/payroll"
	"github.com/jhoicas/Cuadrilla-api/internal/application/trip"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// Ensure TxRunner implements the TxRunner ports of every application package.
var (
	_ trip.TxRunner      = (*TxRunner)(nil)
	_ payroll.TxRunner   = (*TxRunner)(nil)
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ finance.TxRunner   = (*TxRunner)(nil)
)

// NewStore construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewStore(q Querier) repository.Store {
	return repository.Store{
		Trips:        NewTripRepository(q),
		StockItems:   NewStockItemRepository(q),
		Usages:       NewMaterialUsageRepository(q),
		Employees:    NewEmployeeRepository(q),
		Groups:       NewEmployeeGroupRepository(q),
		Advances:     NewAdvanceRepository(q),
		Payroll:      NewPayrollRepository(q),
		Transactions: NewTransactionRepository(q),
		Expenses:     NewExpenseDocumentRepository(q),
		Categories:   NewCategoryRepository(q),
		Config:       NewConfigRepository(q),
		Vehicles:     NewVehicleRepository(q),
		Attendance:   NewAttendanceRepository(q),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Store) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
