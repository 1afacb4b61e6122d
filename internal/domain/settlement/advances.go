// Package settlement liquida adelantos de efectivo contra la producción de un jornal.
package settlement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
)

// Result es el resultado de compensar adelantos contra un bruto.
type Result struct {
	Gross        decimal.Decimal
	TotalPending decimal.Decimal // suma de todos los adelantos pendientes al momento del jornal
	Net          decimal.Decimal // efectivo a pagar: max(0, bruto - TotalPending)
	SettledIDs   []string        // adelantos cubiertos por el recorrido FIFO
	Remaining    decimal.Decimal // bruto sin consumir tras el recorrido
}

// SettleAdvances recorre los adelantos pendientes del más antiguo al más nuevo y marca como
// saldado cada uno que el bruto restante cubra por completo. Se detiene en el primero que no
// alcanza a cubrir: no hay saldo parcial ni se salta a uno posterior más chico.
//
// Net se calcula contra el total pendiente, no contra lo saldado por el recorrido; ambos
// criterios pueden diferir (ver DESIGN.md).
func SettleAdvances(gross decimal.Decimal, pending []*entity.Advance) Result {
	ordered := make([]*entity.Advance, 0, len(pending))
	for _, a := range pending {
		if a != nil && !a.IsSettled {
			ordered = append(ordered, a)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	total := decimal.Zero
	for _, a := range ordered {
		total = total.Add(a.Amount)
	}

	res := Result{
		Gross:        gross,
		TotalPending: total,
		Net:          decimal.Max(decimal.Zero, gross.Sub(total)),
		SettledIDs:   []string{},
	}

	running := gross
	for _, a := range ordered {
		if running.LessThan(a.Amount) {
			break
		}
		running = running.Sub(a.Amount)
		res.SettledIDs = append(res.SettledIDs, a.ID)
	}
	res.Remaining = running
	return res
}
