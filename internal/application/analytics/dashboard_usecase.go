// Package analytics contiene el caso de uso del Dashboard: caja del mes en curso y serie diaria.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/application/finance"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del mes en curso.
//
// Fuentes: el libro contable (ingresos/egresos) y la producción de salidas cerradas.
type DashboardUseCase struct {
	transactions repository.TransactionRepository
	trips        repository.TripRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(transactions repository.TransactionRepository, trips repository.TripRepository) *DashboardUseCase {
	return &DashboardUseCase{transactions: transactions, trips: trips, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO del mes en curso.
//
// Dos consultas en paralelo:
//  1. ListBetween(mes)   → ingresos, egresos y serie diaria
//  2. LaborBetween(mes)  → mano de obra de salidas cerradas
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	from, to := finance.MonthRange(now.Year(), int(now.Month()), now.Location())

	var (
		txs   []*entity.Transaction
		labor decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if txs, err = uc.transactions.ListBetween(gctx, from, to); err != nil {
			return fmt.Errorf("dashboard: movimientos del mes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if labor, err = uc.trips.LaborBetween(gctx, from, to); err != nil {
			return fmt.Errorf("dashboard: mano de obra: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Un punto por día del mes, incluso sin movimientos.
	days := to.AddDate(0, 0, -1).Day()
	chart := make([]dto.DailyPointDTO, days)
	for i := range chart {
		chart[i] = dto.DailyPointDTO{Day: i + 1, Income: decimal.Zero, Expense: decimal.Zero}
	}

	income, expenses := decimal.Zero, decimal.Zero
	for _, t := range txs {
		p := &chart[t.Date.In(now.Location()).Day()-1]
		if t.Type == entity.TxTypeIncome {
			income = income.Add(t.Amount)
			p.Income = p.Income.Add(t.Amount)
		} else {
			expenses = expenses.Add(t.Amount)
			p.Expense = p.Expense.Add(t.Amount)
		}
	}

	return &dto.DashboardSummaryDTO{
		Income:    income.Round(2),
		Expenses:  expenses.Round(2),
		Balance:   income.Sub(expenses).Round(2),
		LaborCost: labor.Round(2),
		ChartData: chart,
		DateLabel: finance.MonthLabel(now.Year(), int(now.Month())),
	}, nil
}
