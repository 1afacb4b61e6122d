package finance_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/application/finance"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeReports captura lo que recibe el generador.
type fakeReports struct {
	accounting *finance.AccountingReport
	monthly    *finance.MonthlyReport
	sheet      *finance.TripSheet
	rows       []finance.TripRow
}

func (f *fakeReports) AccountingReport(_ context.Context, r *finance.AccountingReport) ([]byte, error) {
	f.accounting = r
	return []byte("%PDF-acc"), nil
}

func (f *fakeReports) MonthlyReport(_ context.Context, r *finance.MonthlyReport) ([]byte, error) {
	f.monthly = r
	return []byte("%PDF-month"), nil
}

func (f *fakeReports) TripSheet(_ context.Context, s *finance.TripSheet) ([]byte, error) {
	f.sheet = s
	return []byte("%PDF-trip"), nil
}

func (f *fakeReports) TripsSheet(_ context.Context, rows []finance.TripRow) ([]byte, error) {
	f.rows = rows
	return []byte("PK"), nil
}

// fakeDocs guarda los comprobantes en memoria.
type fakeDocs struct {
	saved   map[string]string
	removed []string
}

func (f *fakeDocs) Save(_ context.Context, date time.Time, filename string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	path := date.Format("2006/01/") + filename
	f.saved[path] = string(b)
	return path, nil
}

func (f *fakeDocs) Remove(_ context.Context, path string) error {
	f.removed = append(f.removed, path)
	delete(f.saved, path)
	return nil
}

func march(day int) time.Time { return time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC) }

type env struct {
	ctx   context.Context
	repos repository.Store
	fake  *fakeReports
	docs  *fakeDocs
	uc    *finance.UseCase
	cats  map[string]*entity.Category
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	repos := db.Repos()
	fake := &fakeReports{}
	docs := &fakeDocs{saved: map[string]string{}}
	e := &env{
		ctx: ctx, repos: repos, fake: fake, docs: docs, cats: map[string]*entity.Category{},
		uc: finance.NewUseCase(repos, db, fake, fake, docs).WithClock(func() time.Time { return march(20) }),
	}
	for _, c := range entity.DefaultCategories {
		cat, err := repos.Categories.Ensure(ctx, c.Name, c.Type)
		require.NoError(t, err)
		e.cats[c.Name] = cat
	}

	require.NoError(t, repos.Employees.Create(ctx, &entity.Employee{ID: "e1", Name: "Juan"}))
	require.NoError(t, repos.Employees.Create(ctx, &entity.Employee{ID: "e2", Name: "Ana"}))
	require.NoError(t, repos.Vehicles.Create(ctx, &entity.Vehicle{ID: "v1", Name: "Hilux", Plate: "AB123CD", Status: entity.VehicleStatusOperational}))
	require.NoError(t, repos.StockItems.Create(ctx, &entity.StockItem{ID: "s1", Name: "Cable UTP", Quantity: d("10")}))

	settled := march(5)
	vid := "v1"
	e.trip(t, &entity.WorkTrip{ID: "t1", Date: march(5), Description: "Barrio norte", Status: entity.TripStatusClosed, VehicleID: &vid},
		&entity.TripAssignment{ID: "a1", EmployeeID: "e1", MetersDone: d("8"), HistoricalPrice: d("1200"), TotalEarned: d("9600"), SettledAt: &settled},
		&entity.TripAssignment{ID: "a2", EmployeeID: "e2", MetersDone: d("2"), HistoricalPrice: d("1200"), TotalEarned: d("2400"), SettledAt: &settled},
	)
	require.NoError(t, repos.Trips.CreateMaterial(ctx, &entity.TripMaterial{ID: "m1", TripID: "t1", StockItemID: "s1",
		QuantityOut: d("10"), QuantityReturned: d("3"), QuantityUsed: d("7")}))
	// abierta: no cuenta como mano de obra
	e.trip(t, &entity.WorkTrip{ID: "t2", Date: march(6), Description: "Centro", Status: entity.TripStatusOpen},
		&entity.TripAssignment{ID: "a3", EmployeeID: "e1", MetersDone: d("4"), HistoricalPrice: d("1000"), TotalEarned: d("4000")},
	)
	// otro mes
	e.trip(t, &entity.WorkTrip{ID: "t3", Date: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC), Description: "Abril", Status: entity.TripStatusClosed},
		&entity.TripAssignment{ID: "a4", EmployeeID: "e1", MetersDone: d("1"), HistoricalPrice: d("1000"), TotalEarned: d("1000"), SettledAt: &settled},
	)

	e.tx(t, "x1", march(2), "500", entity.TxTypeExpense, entity.CategoryMaterials)
	e.tx(t, "x2", march(3), "300", entity.TxTypeExpense, entity.CategoryPayroll)
	e.tx(t, "x3", march(4), "200", entity.TxTypeExpense, entity.CategoryAdvances)
	e.tx(t, "x4", march(7), "15000", entity.TxTypeIncome, "Honorarios / Servicios")
	e.tx(t, "x5", march(8), "100", entity.TxTypeExpense, "Combustible / Flota")
	return e
}

func (e *env) trip(t *testing.T, trip *entity.WorkTrip, as ...*entity.TripAssignment) {
	t.Helper()
	require.NoError(t, e.repos.Trips.Create(e.ctx, trip))
	for _, a := range as {
		a.TripID = trip.ID
		require.NoError(t, e.repos.Trips.CreateAssignment(e.ctx, a))
	}
}

func (e *env) tx(t *testing.T, id string, at time.Time, amount, txType, category string) {
	t.Helper()
	require.NoError(t, e.repos.Transactions.Create(e.ctx, &entity.Transaction{
		ID: id, Date: at, Amount: d(amount), Type: txType, CategoryID: e.cats[category].ID, Description: id,
	}))
}

func TestSummary_ManoDeObraYGastosOperativos(t *testing.T) {
	e := setup(t)

	sum, err := e.uc.Summary(e.ctx, 2026, 3)
	require.NoError(t, err)

	assert.Equal(t, "3/2026", sum.Period)
	assert.Equal(t, "12000", sum.LaborCost.String(), "solo salidas cerradas del mes")
	assert.Equal(t, "600", sum.ExpenseCost.String(), "sin jornales ni adelantos")
	assert.Equal(t, "12600", sum.TotalCost.String())
	assert.Equal(t, "15000", sum.Income.String())
	assert.Equal(t, "2400", sum.Balance.String())
}

func TestSummary_PeriodoPorDefectoYValidacion(t *testing.T) {
	e := setup(t)

	sum, err := e.uc.Summary(e.ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "3/2026", sum.Period)

	_, err = e.uc.Summary(e.ctx, 2026, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAccountingPDF(t *testing.T) {
	e := setup(t)

	pdf, name, err := e.uc.AccountingPDF(e.ctx, 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-acc", string(pdf))
	assert.Equal(t, "Reporte_Contable_2026_3.pdf", name)

	rep := e.fake.accounting
	require.NotNil(t, rep)
	require.Len(t, rep.Production, 2)
	assert.Equal(t, "Ana", rep.Production[0].EmployeeName)
	assert.Equal(t, "2400", rep.Production[0].Earned.String())
	assert.Equal(t, "Juan", rep.Production[1].EmployeeName)
	assert.Equal(t, "8", rep.Production[1].Meters.String())
	require.Len(t, rep.Expenses, 2)
	assert.Equal(t, "12000", rep.TotalPayroll.String())
	assert.Equal(t, "600", rep.TotalExpenses.String())
	assert.Equal(t, "12600", rep.Total.String())
}

func TestMonthlyPDF(t *testing.T) {
	e := setup(t)

	_, name, err := e.uc.MonthlyPDF(e.ctx, 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, "Reporte_3_2026.pdf", name)

	rep := e.fake.monthly
	require.NotNil(t, rep)
	assert.Equal(t, "Marzo 2026", rep.Label)
	assert.Equal(t, "15000", rep.Income.String())
	assert.Equal(t, "1100", rep.Expenses.String())
	assert.Equal(t, "13900", rep.Balance.String())
	assert.Len(t, rep.Transactions, 5)
}

func TestTripsXLSX(t *testing.T) {
	e := setup(t)

	_, name, err := e.uc.TripsXLSX(e.ctx, march(1), march(31))
	require.NoError(t, err)
	assert.Equal(t, "Salidas_20260301_20260331.xlsx", name)

	require.Len(t, e.fake.rows, 2)
	first := e.fake.rows[0]
	assert.Equal(t, "Barrio norte", first.Description)
	assert.Equal(t, "Hilux (AB123CD)", first.Vehicle)
	assert.Equal(t, 2, first.Crew)
	assert.Equal(t, "10", first.Meters.String())
	assert.Equal(t, "12000", first.Earned.String())
	assert.Equal(t, "7", first.MaterialsUsed.String())

	_, _, err = e.uc.TripsXLSX(e.ctx, march(5), march(5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTripSheetPDF(t *testing.T) {
	e := setup(t)

	_, name, err := e.uc.TripSheetPDF(e.ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Salida_20260305_t1.pdf", name)

	s := e.fake.sheet
	require.NotNil(t, s)
	assert.Equal(t, "Hilux (AB123CD)", s.VehicleName)
	require.Len(t, s.Crew, 2)
	assert.True(t, s.Crew[0].Settled)
	assert.Equal(t, "12000", s.TotalEarned.String())
	require.Len(t, s.Materials, 1)
	assert.Equal(t, "Cable UTP", s.Materials[0].Name)

	_, _, err = e.uc.TripSheetPDF(e.ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionsYCategorias(t *testing.T) {
	e := setup(t)

	cat, err := e.uc.CreateCategory(e.ctx, dto.CreateCategoryRequest{Name: "Alquiler", Type: "expense"})
	require.NoError(t, err)
	assert.Equal(t, entity.TxTypeExpense, cat.Type)

	_, err = e.uc.CreateCategory(e.ctx, dto.CreateCategoryRequest{Name: "alquiler", Type: "EXPENSE"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	created, err := e.uc.CreateTransaction(e.ctx, dto.CreateTransactionRequest{
		Amount: d("800"), Type: "EXPENSE", CategoryID: cat.ID, Description: "Depósito",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alquiler", created.CategoryName)
	assert.Equal(t, march(20), created.Date)

	list, err := e.uc.ListTransactions(e.ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, created.ID, list.Items[0].ID, "orden por fecha descendente")

	require.NoError(t, e.uc.DeleteTransaction(e.ctx, created.ID))
	assert.ErrorIs(t, e.uc.DeleteTransaction(e.ctx, created.ID), domain.ErrNotFound)

	_, err = e.uc.CreateTransaction(e.ctx, dto.CreateTransactionRequest{Amount: d("1"), Type: "OTRO", CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.uc.CreateTransaction(e.ctx, dto.CreateTransactionRequest{Amount: d("1"), Type: "INCOME", CategoryID: "zzz"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.uc.CreateTransaction(e.ctx, dto.CreateTransactionRequest{Amount: decimal.Zero, Type: "INCOME", CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSeedCategories_Idempotente(t *testing.T) {
	e := setup(t)

	require.NoError(t, e.uc.SeedCategories(e.ctx))
	require.NoError(t, e.uc.SeedCategories(e.ctx))

	cats, err := e.uc.ListCategories(e.ctx)
	require.NoError(t, err)
	assert.Len(t, cats, len(entity.DefaultCategories))
}

func TestUploadExpense_RegistraGastoYComprobante(t *testing.T) {
	e := setup(t)

	doc, err := e.uc.UploadExpense(e.ctx, dto.UploadExpenseRequest{
		Description: " Nafta camioneta ", Amount: d("250"), Date: "2026-03-12", Filename: "ticket.PDF",
	}, strings.NewReader("%PDF-ticket"))
	require.NoError(t, err)
	assert.Equal(t, "Nafta camioneta", doc.Description)
	assert.Equal(t, "pdf", doc.FileType)
	assert.Equal(t, "2026/03/ticket.PDF", doc.FilePath)
	assert.Equal(t, "%PDF-ticket", e.docs.saved[doc.FilePath])
	require.NotNil(t, doc.TransactionID)

	txs, err := e.repos.Transactions.ListBetween(e.ctx, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), march(13))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	tx := txs[0]
	assert.Equal(t, *doc.TransactionID, tx.ID)
	assert.Equal(t, entity.TxTypeExpense, tx.Type)
	assert.Equal(t, e.cats[entity.CategoryReceipts].ID, tx.CategoryID)
	assert.Equal(t, "Comprobante: Nafta camioneta", tx.Description)

	sum, err := e.uc.Summary(e.ctx, 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, "250", sum.ReceiptsCost.String())
	assert.Equal(t, "850", sum.ExpenseCost.String(), "el comprobante cuenta una sola vez")

	_, _, err = e.uc.AccountingPDF(e.ctx, 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, e.fake.accounting.ReceiptCount)
	assert.Len(t, e.fake.accounting.Expenses, 3)
}

func TestUploadExpense_Validacion(t *testing.T) {
	e := setup(t)
	file := func() io.Reader { return strings.NewReader("x") }

	cases := []struct {
		name string
		in   dto.UploadExpenseRequest
		file io.Reader
	}{
		{"sin descripción", dto.UploadExpenseRequest{Amount: d("1"), Filename: "a.jpg"}, file()},
		{"monto cero", dto.UploadExpenseRequest{Description: "x", Amount: decimal.Zero, Filename: "a.jpg"}, file()},
		{"sin archivo", dto.UploadExpenseRequest{Description: "x", Amount: d("1"), Filename: "a.jpg"}, nil},
		{"fecha inválida", dto.UploadExpenseRequest{Description: "x", Amount: d("1"), Filename: "a.jpg", Date: "12/03/2026"}, file()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.uc.UploadExpense(e.ctx, tc.in, tc.file)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, e.docs.saved)
}

type failingTx struct{}

func (failingTx) Run(context.Context, func(repository.Store) error) error {
	return errors.New("conexión perdida")
}

func TestUploadExpense_BorraArchivoSiFallaLaTransaccion(t *testing.T) {
	e := setup(t)
	uc := finance.NewUseCase(e.repos, failingTx{}, e.fake, e.fake, e.docs)

	_, err := uc.UploadExpense(e.ctx, dto.UploadExpenseRequest{Description: "x", Amount: d("10"), Filename: "a.jpg", Date: "2026-03-01"},
		strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, []string{"2026/03/a.jpg"}, e.docs.removed)
	assert.Empty(t, e.docs.saved)
}

func TestListExpenses_PorMesOTodos(t *testing.T) {
	e := setup(t)
	for _, in := range []dto.UploadExpenseRequest{
		{Description: "marzo 1", Amount: d("10"), Filename: "a.jpg", Date: "2026-03-02"},
		{Description: "marzo 2", Amount: d("20"), Filename: "b.jpg", Date: "2026-03-15"},
		{Description: "abril", Amount: d("30"), Filename: "c.jpg", Date: "2026-04-01"},
	} {
		_, err := e.uc.UploadExpense(e.ctx, in, strings.NewReader("x"))
		require.NoError(t, err)
	}

	month, err := e.uc.ListExpenses(e.ctx, 2026, 3)
	require.NoError(t, err)
	require.Len(t, month, 2)
	assert.Equal(t, "marzo 2", month[0].Description)

	all, err := e.uc.ListExpenses(e.ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "abril", all[0].Description)

	_, err = e.uc.ListExpenses(e.ctx, 2026, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
