package settlement_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/settlement"
)

var day1 = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func adv(id string, amount int64, day int) *entity.Advance {
	return &entity.Advance{ID: id, Amount: decimal.NewFromInt(amount), Date: day1.AddDate(0, 0, day-1)}
}

func TestSettleAdvances_FIFOSinSaldoParcial(t *testing.T) {
	res := settlement.SettleAdvances(decimal.NewFromInt(120), []*entity.Advance{
		adv("a100", 100, 1),
		adv("a50", 50, 2),
	})

	assert.Equal(t, []string{"a100"}, res.SettledIDs, "solo el adelanto de 100 queda saldado")
	assert.Equal(t, "150", res.TotalPending.String())
	assert.Equal(t, "0", res.Net.String())
	assert.Equal(t, "20", res.Remaining.String())
}

func TestSettleAdvances_OrdenaPorFecha(t *testing.T) {
	// llegan desordenados: el del día 1 debe procesarse primero
	res := settlement.SettleAdvances(decimal.NewFromInt(120), []*entity.Advance{
		adv("a50", 50, 2),
		adv("a100", 100, 1),
	})

	assert.Equal(t, []string{"a100"}, res.SettledIDs)
}

func TestSettleAdvances_NoSaltaAUnoPosteriorMasChico(t *testing.T) {
	res := settlement.SettleAdvances(decimal.NewFromInt(60), []*entity.Advance{
		adv("a100", 100, 1),
		adv("a10", 10, 2),
	})

	assert.Empty(t, res.SettledIDs)
	assert.Equal(t, "60", res.Remaining.String())
	assert.True(t, res.Net.IsZero())
}

func TestSettleAdvances_NetoContraTotalPendiente(t *testing.T) {
	res := settlement.SettleAdvances(decimal.NewFromInt(500), []*entity.Advance{
		adv("a100", 100, 1),
		adv("a50", 50, 2),
	})

	assert.Equal(t, []string{"a100", "a50"}, res.SettledIDs)
	assert.Equal(t, "350", res.Net.String())
}

func TestSettleAdvances_SinAdelantos(t *testing.T) {
	res := settlement.SettleAdvances(decimal.NewFromInt(800), nil)

	assert.Empty(t, res.SettledIDs)
	assert.Equal(t, "800", res.Net.String())
	assert.True(t, res.TotalPending.IsZero())
}

func TestSettleAdvances_IgnoraSaldados(t *testing.T) {
	settled := adv("old", 1000, 1)
	settled.IsSettled = true

	res := settlement.SettleAdvances(decimal.NewFromInt(100), []*entity.Advance{settled, adv("a40", 40, 3)})

	assert.Equal(t, []string{"a40"}, res.SettledIDs)
	assert.Equal(t, "60", res.Net.String())
}
