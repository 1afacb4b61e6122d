package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStockItem_ApplyDelta_CambiaEstado(t *testing.T) {
	item := &entity.StockItem{Quantity: d("10"), Status: entity.StockStatusAvailable}

	item.ApplyDelta(d("-10"))
	assert.True(t, item.Quantity.IsZero())
	assert.Equal(t, entity.StockStatusDepleted, item.Status)

	item.ApplyDelta(d("-2"))
	assert.Equal(t, "-2", item.Quantity.String())
	assert.Equal(t, entity.StockStatusDepleted, item.Status)

	item.ApplyDelta(d("3"))
	assert.Equal(t, "1", item.Quantity.String())
	assert.Equal(t, entity.StockStatusAvailable, item.Status, "una devolución que deja stock positivo repone AVAILABLE")
}

func TestUnitCostFor(t *testing.T) {
	assert.Equal(t, "250", entity.UnitCostFor(d("1000"), d("4")).String())
	assert.True(t, entity.UnitCostFor(d("1000"), decimal.Zero).IsZero())
}

func TestTripAssignment_EstimateNoTocaPrecioHistorico(t *testing.T) {
	a := &entity.TripAssignment{HistoricalPrice: d("1000")}

	a.Estimate(d("5"), d("1100"))

	assert.Equal(t, "5500", a.TotalEarned.String())
	assert.Equal(t, "1000", a.HistoricalPrice.String())
	assert.False(t, a.IsSettled())
}

func TestTripAssignment_SettleFijaPrecioDeCierre(t *testing.T) {
	a := &entity.TripAssignment{HistoricalPrice: d("1000")}
	at := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	a.Settle(d("8"), d("1200"), at)

	assert.Equal(t, "1200", a.HistoricalPrice.String())
	assert.Equal(t, "9600", a.TotalEarned.String())
	require.True(t, a.IsSettled())
	assert.Equal(t, at, *a.SettledAt)
}

func TestTripMaterial_RegisterReturn(t *testing.T) {
	m := &entity.TripMaterial{QuantityOut: d("10")}

	require.NoError(t, m.RegisterReturn(d("3")))
	assert.Equal(t, "7", m.QuantityUsed.String())

	require.NoError(t, m.RegisterReturn(d("10")))
	assert.True(t, m.QuantityUsed.IsZero())

	assert.ErrorIs(t, m.RegisterReturn(d("11")), domain.ErrInvalidInput)
	assert.ErrorIs(t, m.RegisterReturn(d("-1")), domain.ErrInvalidInput)
	assert.Equal(t, "10", m.QuantityReturned.String(), "un retorno inválido no modifica el material")
}

func TestPriceFrom(t *testing.T) {
	assert.True(t, entity.PriceFrom(nil).IsZero())
	assert.True(t, entity.PriceFrom(&entity.SystemConfig{Value: ""}).IsZero())
	assert.True(t, entity.PriceFrom(&entity.SystemConfig{Value: "abc"}).IsZero())
	assert.Equal(t, "1500.5", entity.PriceFrom(&entity.SystemConfig{Value: " 1500.5 "}).String())
}

func TestVehicle_RegisterService(t *testing.T) {
	v := &entity.Vehicle{CurrentKm: 52000, Status: entity.VehicleStatusMaintenance}
	at := time.Now()

	v.RegisterService(at)

	require.NotNil(t, v.NextServiceKm)
	assert.Equal(t, 62000.0, *v.NextServiceKm)
	assert.Equal(t, entity.VehicleStatusOperational, v.Status)
	assert.True(t, entity.ValidVehicleStatus(entity.VehicleStatusOutOfService))
	assert.False(t, entity.ValidVehicleStatus("BROKEN"))
}
