package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuadrilla-api/internal/application/finance"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAccountingReport_GeneraPDF(t *testing.T) {
	g := NewMarotoReportGenerator("Cuadrilla")

	out, err := g.AccountingReport(context.Background(), &finance.AccountingReport{
		Year: 2026, Month: 3,
		Production: []repository.EmployeeProduction{
			{EmployeeName: "Juan", Meters: d("8"), Earned: d("9600")},
		},
		Expenses: []*entity.Transaction{
			{Date: time.Now(), Description: "Compra Stock: Cable UTP (100u)", Amount: d("500"), Type: entity.TxTypeExpense},
		},
		TotalPayroll: d("9600"), TotalExpenses: d("500"), Total: d("10100"),
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestAccountingReport_SinActividad(t *testing.T) {
	g := NewMarotoReportGenerator("Cuadrilla")

	out, err := g.AccountingReport(context.Background(), &finance.AccountingReport{Year: 2026, Month: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestTripSheet_GeneraPDF(t *testing.T) {
	g := NewMarotoReportGenerator("Cuadrilla")
	lat, lng := -34.6037, -58.3816

	out, err := g.TripSheet(context.Background(), &finance.TripSheet{
		Trip: &entity.WorkTrip{
			Date: time.Now(), Description: "Tendido fibra", Status: entity.TripStatusOpen,
			DestinationLat: &lat, DestinationLng: &lng,
		},
		VehicleName: "Hilux (AB123CD)",
		Crew: []finance.TripSheetLine{
			{EmployeeName: "Juan", IsPresent: true, Meters: d("5"), Price: d("1000"), Earned: d("5000")},
		},
		Materials:   []finance.TripSheetMaterial{{Name: "Cable UTP", Out: d("10"), Returned: d("3"), Used: d("7")}},
		TotalMeters: d("5"), TotalEarned: d("5000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestMonthlyReport_GeneraPDF(t *testing.T) {
	g := NewMarotoReportGenerator("Cuadrilla")

	out, err := g.MonthlyReport(context.Background(), &finance.MonthlyReport{
		Label: "Marzo 2026", Income: d("1000"), Expenses: d("1500"), Balance: d("-500"),
		Transactions: []*entity.Transaction{
			{Date: time.Now(), Amount: d("1000"), Type: entity.TxTypeIncome, CategoryName: "Honorarios / Servicios"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Compañ", truncate("Compañía", 6))
	assert.Equal(t, "abc", truncate("abc", 10))
}
