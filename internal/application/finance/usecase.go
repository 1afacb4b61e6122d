// Package finance agrupa el libro contable, el resumen mensual de costos y los reportes exportables.
package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthLabel devuelve el período en castellano, ej. "Marzo 2026".
func MonthLabel(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d/%d", month, year)
	}
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}

// MonthRange devuelve [primer día del mes, primer día del mes siguiente).
func MonthRange(year, month int, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

// UseCase casos de uso financieros.
type UseCase struct {
	repos   repository.Store
	tx      TxRunner
	reports ReportGenerator
	sheets  SpreadsheetExporter
	docs    DocumentStorage
	now     func() time.Time
}

// NewUseCase construye el caso de uso inyectando generadores de PDF y planillas y el
// almacenamiento de comprobantes.
func NewUseCase(repos repository.Store, tx TxRunner, reports ReportGenerator, sheets SpreadsheetExporter, docs DocumentStorage) *UseCase {
	return &UseCase{repos: repos, tx: tx, reports: reports, sheets: sheets, docs: docs, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// resolvePeriod aplica el mes en curso cuando year o month vienen en cero.
func (uc *UseCase) resolvePeriod(year, month int) (int, int, error) {
	if year == 0 || month == 0 {
		n := uc.now()
		return n.Year(), int(n.Month()), nil
	}
	if month < 1 || month > 12 || year < 1 {
		return 0, 0, fmt.Errorf("período %d/%d: %w", month, year, domain.ErrInvalidInput)
	}
	return year, month, nil
}

// CreateTransaction registra un movimiento manual en el libro.
func (uc *UseCase) CreateTransaction(ctx context.Context, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("monto debe ser mayor a 0: %w", domain.ErrInvalidInput)
	}
	txType := strings.ToUpper(strings.TrimSpace(in.Type))
	if txType != entity.TxTypeIncome && txType != entity.TxTypeExpense {
		return nil, fmt.Errorf("tipo %q: %w", in.Type, domain.ErrInvalidInput)
	}
	cat, err := uc.findCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	date := uc.now()
	if in.Date != nil {
		date = *in.Date
	}
	tx := &entity.Transaction{
		ID:           uuid.New().String(),
		Date:         date,
		Amount:       in.Amount,
		Description:  strings.TrimSpace(in.Description),
		Type:         txType,
		IsInvoiced:   in.IsInvoiced,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
	}
	if err := uc.repos.Transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("finance: crear movimiento: %w", err)
	}
	out := toTransactionResponse(tx)
	return &out, nil
}

func (uc *UseCase) findCategory(ctx context.Context, id string) (*entity.Category, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("category_id requerido: %w", domain.ErrInvalidInput)
	}
	cats, err := uc.repos.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("categoría %s: %w", id, domain.ErrNotFound)
}

// ListTransactions lista el libro por fecha descendente.
func (uc *UseCase) ListTransactions(ctx context.Context, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	page.DefaultPage()
	txs, err := uc.repos.Transactions.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		items = append(items, toTransactionResponse(t))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// DeleteTransaction borra un movimiento del libro.
func (uc *UseCase) DeleteTransaction(ctx context.Context, id string) error {
	return uc.repos.Transactions.Delete(ctx, id)
}

// CreateCategory crea una categoría contable con nombre único.
func (uc *UseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	txType := strings.ToUpper(strings.TrimSpace(in.Type))
	if name == "" {
		return nil, fmt.Errorf("nombre requerido: %w", domain.ErrInvalidInput)
	}
	if txType != entity.TxTypeIncome && txType != entity.TxTypeExpense {
		return nil, fmt.Errorf("tipo %q: %w", in.Type, domain.ErrInvalidInput)
	}
	c := &entity.Category{ID: uuid.New().String(), Name: name, Type: txType}
	if err := uc.repos.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Type: c.Type}, nil
}

// ListCategories lista las categorías contables.
func (uc *UseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := uc.repos.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Type: c.Type})
	}
	return out, nil
}

// SeedCategories crea las categorías por defecto que falten. Se llama al iniciar.
func (uc *UseCase) SeedCategories(ctx context.Context) error {
	for _, c := range entity.DefaultCategories {
		if _, err := uc.repos.Categories.Ensure(ctx, c.Name, c.Type); err != nil {
			return fmt.Errorf("finance: sembrar %q: %w", c.Name, err)
		}
	}
	return nil
}

// IsOperatingExpense indica si un movimiento cuenta como gasto operativo.
// Jornales y adelantos no cuentan: la mano de obra se mide por la producción de las salidas.
func IsOperatingExpense(t *entity.Transaction) bool {
	if t.Type != entity.TxTypeExpense {
		return false
	}
	return t.CategoryName != entity.CategoryPayroll && t.CategoryName != entity.CategoryAdvances
}

// Summary calcula mano de obra, gastos operativos e ingresos del mes.
func (uc *UseCase) Summary(ctx context.Context, year, month int) (*dto.FinanceSummaryResponse, error) {
	year, month, err := uc.resolvePeriod(year, month)
	if err != nil {
		return nil, err
	}
	from, to := MonthRange(year, month, uc.now().Location())

	labor, err := uc.repos.Trips.LaborBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("finance: mano de obra: %w", err)
	}
	txs, err := uc.repos.Transactions.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("finance: movimientos: %w", err)
	}
	expenses, receipts, income := decimal.Zero, decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch {
		case t.Type == entity.TxTypeIncome:
			income = income.Add(t.Amount)
		case IsOperatingExpense(t):
			expenses = expenses.Add(t.Amount)
			if t.CategoryName == entity.CategoryReceipts {
				receipts = receipts.Add(t.Amount)
			}
		}
	}
	total := labor.Add(expenses)
	return &dto.FinanceSummaryResponse{
		Period:       fmt.Sprintf("%d/%d", month, year),
		LaborCost:    labor,
		ExpenseCost:  expenses,
		ReceiptsCost: receipts,
		TotalCost:    total,
		Income:       income,
		Balance:      income.Sub(total),
	}, nil
}

// AccountingPDF genera el reporte contable del mes: producción por empleado y gastos operativos.
func (uc *UseCase) AccountingPDF(ctx context.Context, year, month int) ([]byte, string, error) {
	year, month, err := uc.resolvePeriod(year, month)
	if err != nil {
		return nil, "", err
	}
	from, to := MonthRange(year, month, uc.now().Location())

	prod, err := uc.repos.Trips.ProductionBetween(ctx, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("finance: producción: %w", err)
	}
	txs, err := uc.repos.Transactions.ListBetween(ctx, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("finance: movimientos: %w", err)
	}

	rep := &AccountingReport{Year: year, Month: month, TotalPayroll: decimal.Zero, TotalExpenses: decimal.Zero}
	for _, p := range prod {
		if !p.Earned.IsPositive() {
			continue
		}
		rep.Production = append(rep.Production, p)
		rep.TotalPayroll = rep.TotalPayroll.Add(p.Earned)
	}
	for _, t := range txs {
		if IsOperatingExpense(t) {
			rep.Expenses = append(rep.Expenses, t)
			rep.TotalExpenses = rep.TotalExpenses.Add(t.Amount)
			if t.CategoryName == entity.CategoryReceipts {
				rep.ReceiptCount++
			}
		}
	}
	rep.Total = rep.TotalPayroll.Add(rep.TotalExpenses)

	pdf, err := uc.reports.AccountingReport(ctx, rep)
	if err != nil {
		return nil, "", fmt.Errorf("finance: generar reporte contable: %w", err)
	}
	return pdf, fmt.Sprintf("Reporte_Contable_%d_%d.pdf", year, month), nil
}

// MonthlyPDF genera el resumen de caja del mes con todos sus movimientos.
func (uc *UseCase) MonthlyPDF(ctx context.Context, year, month int) ([]byte, string, error) {
	year, month, err := uc.resolvePeriod(year, month)
	if err != nil {
		return nil, "", err
	}
	from, to := MonthRange(year, month, uc.now().Location())
	txs, err := uc.repos.Transactions.ListBetween(ctx, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("finance: movimientos: %w", err)
	}
	rep := &MonthlyReport{Label: MonthLabel(year, month), Income: decimal.Zero, Expenses: decimal.Zero, Transactions: txs}
	for _, t := range txs {
		if t.Type == entity.TxTypeIncome {
			rep.Income = rep.Income.Add(t.Amount)
		} else {
			rep.Expenses = rep.Expenses.Add(t.Amount)
		}
	}
	rep.Balance = rep.Income.Sub(rep.Expenses)

	pdf, err := uc.reports.MonthlyReport(ctx, rep)
	if err != nil {
		return nil, "", fmt.Errorf("finance: generar reporte mensual: %w", err)
	}
	return pdf, fmt.Sprintf("Reporte_%d_%d.pdf", month, year), nil
}

// TripsXLSX exporta las salidas con fecha en [from, to) a una planilla.
func (uc *UseCase) TripsXLSX(ctx context.Context, from, to time.Time) ([]byte, string, error) {
	if !from.Before(to) {
		return nil, "", fmt.Errorf("rango de fechas vacío: %w", domain.ErrInvalidInput)
	}
	trips, err := uc.repos.Trips.ListBetween(ctx, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("finance: salidas: %w", err)
	}
	vehicles := map[string]string{}
	rows := make([]TripRow, 0, len(trips))
	for _, t := range trips {
		row := TripRow{Date: t.Date, Description: t.Description, Status: t.Status,
			Meters: decimal.Zero, Earned: decimal.Zero, MaterialsUsed: decimal.Zero}
		if t.VehicleID != nil {
			name, ok := vehicles[*t.VehicleID]
			if !ok {
				v, err := uc.repos.Vehicles.GetByID(ctx, *t.VehicleID)
				if err != nil {
					return nil, "", err
				}
				if v != nil {
					name = v.Name + " (" + v.Plate + ")"
				}
				vehicles[*t.VehicleID] = name
			}
			row.Vehicle = name
		}
		assignments, err := uc.repos.Trips.ListAssignments(ctx, t.ID)
		if err != nil {
			return nil, "", err
		}
		row.Crew = len(assignments)
		for _, a := range assignments {
			row.Meters = row.Meters.Add(a.MetersDone)
			row.Earned = row.Earned.Add(a.TotalEarned)
		}
		materials, err := uc.repos.Trips.ListMaterials(ctx, t.ID)
		if err != nil {
			return nil, "", err
		}
		for _, m := range materials {
			row.MaterialsUsed = row.MaterialsUsed.Add(m.QuantityUsed)
		}
		rows = append(rows, row)
	}

	xlsx, err := uc.sheets.TripsSheet(ctx, rows)
	if err != nil {
		return nil, "", fmt.Errorf("finance: generar planilla: %w", err)
	}
	name := fmt.Sprintf("Salidas_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	return xlsx, name, nil
}

// TripSheetPDF genera la hoja de una salida con su cuadrilla y materiales.
func (uc *UseCase) TripSheetPDF(ctx context.Context, tripID string) ([]byte, string, error) {
	t, err := uc.repos.Trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, "", fmt.Errorf("finance: obtener salida: %w", err)
	}
	if t == nil {
		return nil, "", fmt.Errorf("salida %s: %w", tripID, domain.ErrNotFound)
	}
	sheet := &TripSheet{Trip: t, TotalMeters: decimal.Zero, TotalEarned: decimal.Zero}
	if t.VehicleID != nil {
		v, err := uc.repos.Vehicles.GetByID(ctx, *t.VehicleID)
		if err != nil {
			return nil, "", err
		}
		if v != nil {
			sheet.VehicleName = v.Name + " (" + v.Plate + ")"
		}
	}

	assignments, err := uc.repos.Trips.ListAssignments(ctx, t.ID)
	if err != nil {
		return nil, "", err
	}
	for _, a := range assignments {
		name := "Empleado " + a.EmployeeID
		if e, eErr := uc.repos.Employees.GetByID(ctx, a.EmployeeID); eErr == nil && e != nil {
			name = e.Name
		}
		sheet.Crew = append(sheet.Crew, TripSheetLine{
			EmployeeName: name,
			IsPresent:    a.IsPresent,
			Meters:       a.MetersDone,
			Price:        a.HistoricalPrice,
			Earned:       a.TotalEarned,
			Settled:      a.IsSettled(),
		})
		sheet.TotalMeters = sheet.TotalMeters.Add(a.MetersDone)
		sheet.TotalEarned = sheet.TotalEarned.Add(a.TotalEarned)
	}

	materials, err := uc.repos.Trips.ListMaterials(ctx, t.ID)
	if err != nil {
		return nil, "", err
	}
	for _, m := range materials {
		name := "Material " + m.StockItemID
		if item, iErr := uc.repos.StockItems.GetByID(ctx, m.StockItemID); iErr == nil && item != nil {
			name = item.Name
		}
		sheet.Materials = append(sheet.Materials, TripSheetMaterial{
			Name: name, Out: m.QuantityOut, Returned: m.QuantityReturned, Used: m.QuantityUsed,
		})
	}

	pdf, err := uc.reports.TripSheet(ctx, sheet)
	if err != nil {
		return nil, "", fmt.Errorf("finance: generar hoja de salida: %w", err)
	}
	return pdf, fmt.Sprintf("Salida_%s_%s.pdf", t.Date.Format("20060102"), shortID(t.ID)), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:           t.ID,
		Date:         t.Date,
		Amount:       t.Amount,
		Description:  t.Description,
		Type:         t.Type,
		IsInvoiced:   t.IsInvoiced,
		CategoryID:   t.CategoryID,
		CategoryName: t.CategoryName,
	}
}
