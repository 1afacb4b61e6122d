package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Cuadrilla-api/internal/application/finance"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/excel"
)

func TestTripsSheet(t *testing.T) {
	d := decimal.RequireFromString
	rows := []finance.TripRow{
		{Date: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC), Description: "Barrio norte", Status: entity.TripStatusClosed,
			Vehicle: "Hilux (AB123CD)", Crew: 2, Meters: d("10"), Earned: d("12000"), MaterialsUsed: d("7")},
		{Date: time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC), Description: "Centro", Status: entity.TripStatusOpen,
			Crew: 1, Meters: d("4.5"), Earned: d("4500"), MaterialsUsed: decimal.Zero},
	}

	out, err := excel.NewExporter().TripsSheet(context.Background(), rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{excel.TripsSheetName}, f.GetSheetList())

	get := func(cell string) string {
		v, err := f.GetCellValue(excel.TripsSheetName, cell)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Fecha", get("A1"))
	assert.Equal(t, "05/03/2026", get("A2"))
	assert.Equal(t, "Cerrada", get("C2"))
	assert.Equal(t, "Hilux (AB123CD)", get("D2"))
	assert.Equal(t, "Abierta", get("C3"))
	assert.Equal(t, "TOTAL", get("A4"))
	assert.Equal(t, "14.5", get("F4"))
	assert.Equal(t, "16500", get("G4"))
}

func TestTripsSheet_Vacia(t *testing.T) {
	out, err := excel.NewExporter().TripsSheet(context.Background(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(excel.TripsSheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", v)
}
