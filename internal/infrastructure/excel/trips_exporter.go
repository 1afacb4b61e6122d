// Package excel exporta planillas XLSX con excelize.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Cuadrilla-api/internal/application/finance"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
)

// TripsSheetName nombre de la hoja con las salidas.
const TripsSheetName = "Salidas"

var tripHeaders = []string{"Fecha", "Descripción", "Estado", "Vehículo", "Cuadrilla", "Metros", "Producción", "Material usado"}

// Exporter implementa finance.SpreadsheetExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

var _ finance.SpreadsheetExporter = (*Exporter)(nil)

// TripsSheet arma la planilla de salidas: una fila por salida y una fila final de totales.
func (e *Exporter) TripsSheet(_ context.Context, rows []finance.TripRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(TripsSheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	// NewFile crea Sheet1 por defecto
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: borrar hoja por defecto: %w", err)
	}
	f.SetActiveSheet(index)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	for i, header := range tripHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(TripsSheetName, cell, header); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(tripHeaders), 1)
	if err := f.SetCellStyle(TripsSheetName, "A1", last, bold); err != nil {
		return nil, err
	}

	var meters, earned, used float64
	rowIndex := 2
	for _, r := range rows {
		values := []any{
			r.Date.Format("02/01/2006"),
			r.Description,
			statusLabel(r.Status),
			r.Vehicle,
			r.Crew,
			r.Meters.InexactFloat64(),
			r.Earned.InexactFloat64(),
			r.MaterialsUsed.InexactFloat64(),
		}
		if err := setRow(f, rowIndex, values); err != nil {
			return nil, err
		}
		meters += r.Meters.InexactFloat64()
		earned += r.Earned.InexactFloat64()
		used += r.MaterialsUsed.InexactFloat64()
		rowIndex++
	}

	if err := setRow(f, rowIndex, []any{"TOTAL", "", "", "", "", meters, earned, used}); err != nil {
		return nil, err
	}
	totalEnd, _ := excelize.CoordinatesToCellName(len(tripHeaders), rowIndex)
	if err := f.SetCellStyle(TripsSheetName, fmt.Sprintf("A%d", rowIndex), totalEnd, bold); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(TripsSheetName, "B", "B", 40); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(TripsSheetName, "D", "D", 24); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir planilla: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, rowIndex int, values []any) error {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowIndex)
		if err := f.SetCellValue(TripsSheetName, cell, v); err != nil {
			return fmt.Errorf("excel: celda %s: %w", cell, err)
		}
	}
	return nil
}

func statusLabel(s string) string {
	if s == entity.TripStatusClosed {
		return "Cerrada"
	}
	return "Abierta"
}
