package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/memory"
)

func TestRun_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	repos := db.Repos()
	require.NoError(t, repos.StockItems.Create(ctx, &entity.StockItem{ID: "s1", Quantity: decimal.NewFromInt(10)}))

	boom := errors.New("boom")
	err := db.Run(ctx, func(s repository.Store) error {
		item, err := s.StockItems.GetForUpdate(ctx, "s1")
		require.NoError(t, err)
		item.ApplyDelta(decimal.NewFromInt(-4))
		require.NoError(t, s.StockItems.UpdateQuantity(ctx, item))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	item, err := repos.StockItems.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "10", item.Quantity.String())
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	db := memory.New()

	err := db.Run(ctx, func(s repository.Store) error {
		return s.Config.Set(ctx, &entity.SystemConfig{Key: entity.KeyMeterPrice, Value: "1000"})
	})
	require.NoError(t, err)

	cfg, err := db.Repos().Config.Get(ctx, entity.KeyMeterPrice)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "1000", cfg.Value)
}

func TestTrips_MarkClosedSoloDesdeOpen(t *testing.T) {
	ctx := context.Background()
	trips := memory.New().Repos().Trips
	require.NoError(t, trips.Create(ctx, &entity.WorkTrip{ID: "t1", Status: entity.TripStatusOpen, Date: time.Now()}))

	ok, err := trips.MarkClosed(ctx, "t1", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = trips.MarkClosed(ctx, "t1", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = trips.MarkClosed(ctx, "missing", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmployees_DeleteEnCascada(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	require.NoError(t, repos.Employees.Create(ctx, &entity.Employee{ID: "e1", Name: "Juan"}))
	require.NoError(t, repos.Advances.Create(ctx, &entity.Advance{ID: "a1", EmployeeID: "e1", Amount: decimal.NewFromInt(10)}))
	require.NoError(t, repos.Payroll.Create(ctx, &entity.PayrollRecord{ID: "p1", EmployeeID: "e1"}))

	require.NoError(t, repos.Employees.Delete(ctx, "e1"))

	advances, err := repos.Advances.ListByEmployee(ctx, "e1")
	require.NoError(t, err)
	assert.Empty(t, advances)
	records, err := repos.Payroll.ListByEmployee(ctx, "e1")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.ErrorIs(t, repos.Employees.Delete(ctx, "e1"), domain.ErrNotFound)
}

func TestEmployees_DeleteConSalidasEsConflicto(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	require.NoError(t, repos.Employees.Create(ctx, &entity.Employee{ID: "e1", Name: "Juan"}))
	require.NoError(t, repos.Trips.CreateAssignment(ctx, &entity.TripAssignment{ID: "as1", TripID: "t1", EmployeeID: "e1"}))

	assert.ErrorIs(t, repos.Employees.Delete(ctx, "e1"), domain.ErrConflict)
}

func TestAttendance_UpsertPorDia(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repos.Attendance.Upsert(ctx, &entity.DailyAttendance{ID: "x1", EmployeeID: "e1", Date: day, IsPresent: true}))
	require.NoError(t, repos.Attendance.Upsert(ctx, &entity.DailyAttendance{ID: "x2", EmployeeID: "e1", Date: day.Add(3 * time.Hour), IsPresent: false}))

	rows, err := repos.Attendance.ListByDate(ctx, day)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "x1", rows[0].ID)
	assert.False(t, rows[0].IsPresent)
}

func TestCategories_EnsureEsIdempotente(t *testing.T) {
	ctx := context.Background()
	cats := memory.New().Repos().Categories

	a, err := cats.Ensure(ctx, entity.CategoryPayroll, entity.TxTypeExpense)
	require.NoError(t, err)
	b, err := cats.Ensure(ctx, entity.CategoryPayroll, entity.TxTypeExpense)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	all, err := cats.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
