package finance

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Store) error) error
}

// DocumentStorage guarda los archivos de comprobantes (disco local en infrastructure/storage).
type DocumentStorage interface {
	// Save guarda el archivo bajo el año y mes de date y devuelve la ruta final.
	Save(ctx context.Context, date time.Time, filename string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}

// ReportGenerator define el puerto para generar los reportes PDF.
// La implementación concreta (Maroto v2) vive en infrastructure/pdf.
type ReportGenerator interface {
	AccountingReport(ctx context.Context, r *AccountingReport) ([]byte, error)
	MonthlyReport(ctx context.Context, r *MonthlyReport) ([]byte, error)
	TripSheet(ctx context.Context, s *TripSheet) ([]byte, error)
}

// SpreadsheetExporter define el puerto para exportar planillas (excelize en infrastructure/excel).
type SpreadsheetExporter interface {
	TripsSheet(ctx context.Context, rows []TripRow) ([]byte, error)
}

// AccountingReport datos del reporte contable mensual: nómina por producción y gastos operativos.
type AccountingReport struct {
	Year          int
	Month         int
	Production    []repository.EmployeeProduction
	Expenses      []*entity.Transaction
	ReceiptCount  int // gastos del período respaldados por un comprobante subido
	TotalPayroll  decimal.Decimal
	TotalExpenses decimal.Decimal
	Total         decimal.Decimal
}

// MonthlyReport resumen de caja del mes con el detalle de movimientos.
type MonthlyReport struct {
	Label        string // "Marzo 2026"
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	Balance      decimal.Decimal
	Transactions []*entity.Transaction
}

// TripSheet hoja de una salida: cuadrilla con su producción y materiales.
type TripSheet struct {
	Trip        *entity.WorkTrip
	VehicleName string
	Crew        []TripSheetLine
	Materials   []TripSheetMaterial
	TotalMeters decimal.Decimal
	TotalEarned decimal.Decimal
}

// TripSheetLine producción de un empleado en la hoja de salida.
type TripSheetLine struct {
	EmployeeName string
	IsPresent    bool
	Meters       decimal.Decimal
	Price        decimal.Decimal
	Earned       decimal.Decimal
	Settled      bool
}

// TripSheetMaterial logística de un material en la hoja de salida.
type TripSheetMaterial struct {
	Name     string
	Out      decimal.Decimal
	Returned decimal.Decimal
	Used     decimal.Decimal
}

// TripRow una fila de la planilla de salidas.
type TripRow struct {
	Date          time.Time
	Description   string
	Status        string
	Vehicle       string
	Crew          int
	Meters        decimal.Decimal
	Earned        decimal.Decimal
	MaterialsUsed decimal.Decimal
}
