package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/Cuadrilla-api/internal/application/analytics"
	"github.com/jhoicas/Cuadrilla-api/internal/application/auth"
	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/application/finance"
	"github.com/jhoicas/Cuadrilla-api/internal/application/inventory"
	"github.com/jhoicas/Cuadrilla-api/internal/application/payroll"
	"github.com/jhoicas/Cuadrilla-api/internal/application/trip"
	"github.com/jhoicas/Cuadrilla-api/internal/application/usecase"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/excel"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/memory"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/Cuadrilla-api/internal/interfaces/http"
)

const (
	operatorEmail    = "oficina@cuadrilla.test"
	operatorPassword = "clave-segura"
)

// memIdempotency store de respuestas en memoria.
type memIdempotency struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memIdempotency) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memIdempotency) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(operatorPassword), bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.New()
	repos := store.Repos()
	log := zerolog.Nop()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(auth.Operator{Email: operatorEmail, PasswordHash: string(hash)},
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		TripUC:        trip.NewUseCase(repos, store, trip.NopLocker{}, time.Minute, log),
		PayrollUC:     payroll.NewUseCase(repos, store, log),
		StockUC:       inventory.NewStockUseCase(repos, store),
		Replenishment: inventory.NewReplenishmentUseCase(repos, 7),
		EmployeeUC:    usecase.NewEmployeeUseCase(repos.Employees, repos.Groups),
		ConfigUC:      usecase.NewConfigUseCase(repos.Config),
		VehicleUC:     usecase.NewVehicleUseCase(repos.Vehicles),
		AttendanceUC:  usecase.NewAttendanceUseCase(repos.Attendance, repos.Employees),
		FinanceUC:     finance.NewUseCase(repos, store, pdf.NewMarotoReportGenerator("Cuadrilla"), excel.NewExporter(), storage.NewLocal(t.TempDir())),
		DashboardUC:   appanalytics.NewDashboardUseCase(repos.Transactions, repos.Trips),
		JWTSecret:     testJWTSecret,
		Idempotency:   &memIdempotency{data: map[string][]byte{}},
		Log:           log,
	})

	c := &apiClient{t: t, app: app}
	var login dto.LoginResponse
	resp := c.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: operatorEmail, Password: operatorPassword}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	c.token = login.Token
	return c
}

// do envía body como JSON y decodifica la respuesta en out (si no es nil).
func (c *apiClient) do(method, path string, body any, out any, headers ...string) *http.Response {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	if out != nil && resp.StatusCode < 300 {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (c *apiClient) setPrice(value string) {
	c.t.Helper()
	resp := c.do(http.MethodPut, "/api/config", dto.ConfigRequest{Key: "meter_price", Value: value}, nil)
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	c := newAPI(t)
	c.token = ""
	resp := c.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: operatorEmail, Password: "otra"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	c := newAPI(t)
	c.token = ""
	resp := c.do(http.MethodGet, "/api/trips", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSalida_CicloCompleto(t *testing.T) {
	c := newAPI(t)
	c.setPrice("1000")

	var emp dto.EmployeeResponse
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/employees", dto.CreateEmployeeRequest{Name: "Juan"}, &emp).StatusCode)

	var item dto.StockItemResponse
	resp := c.do(http.MethodPost, "/api/stock", map[string]any{"name": "Cable", "cost_amount": 2000, "initial_quantity": 20}, &item)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.TripResponse
	resp = c.do(http.MethodPost, "/api/trips", map[string]any{
		"description": "Tendido barrio norte",
		"employees":   []map[string]any{{"employee_id": emp.ID}},
		"materials":   []map[string]any{{"stock_item_id": item.ID, "quantity_out": 10}},
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, created.Employees, 1)
	require.Len(t, created.Materials, 1)
	assert.Equal(t, "OPEN", created.Status)
	assert.Equal(t, "1000", created.Employees[0].HistoricalPrice.String())

	var progressed dto.TripResponse
	resp = c.do(http.MethodPut, "/api/trips/"+created.ID+"/progress", map[string]any{
		"employees": []map[string]any{{"id": created.Employees[0].ID, "meters_done": 5}},
	}, &progressed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "5000", progressed.Employees[0].TotalEarned.String())

	c.setPrice("1200")

	closeBody := map[string]any{
		"employees": []map[string]any{{"id": created.Employees[0].ID, "meters_done": 8}},
		"materials": []map[string]any{{"id": created.Materials[0].ID, "quantity_returned": 3}},
	}
	var closed dto.TripResponse
	resp = c.do(http.MethodPost, "/api/trips/"+created.ID+"/close", closeBody, &closed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CLOSED", closed.Status)
	assert.Equal(t, "1200", closed.Employees[0].HistoricalPrice.String())
	assert.Equal(t, "9600", closed.Employees[0].TotalEarned.String())
	assert.Equal(t, "7", closed.Materials[0].QuantityUsed.String())

	var items []dto.StockItemResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/stock", nil, &items).StatusCode)
	require.Len(t, items, 1)
	assert.Equal(t, "13", items[0].Quantity.String())

	resp = c.do(http.MethodPost, "/api/trips/"+created.ID+"/close", closeBody, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSalida_NoEncontrada(t *testing.T) {
	c := newAPI(t)
	resp := c.do(http.MethodGet, "/api/trips/no-existe", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSalida_DescripcionVacia(t *testing.T) {
	c := newAPI(t)
	resp := c.do(http.MethodPost, "/api/trips", map[string]any{"description": " "}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIdempotency_RepiteRespuesta(t *testing.T) {
	c := newAPI(t)
	body := map[string]any{"description": "Centro"}

	var first, second dto.TripResponse
	resp := c.do(http.MethodPost, "/api/trips", body, &first, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = c.do(http.MethodPost, "/api/trips", body, &second, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("Idempotent-Replayed"))
	assert.Equal(t, first.ID, second.ID)

	var list dto.TripListResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/trips", nil, &list).StatusCode)
	assert.Len(t, list.Items, 1)
}

func TestIdempotency_MismaClaveOtroCuerpo(t *testing.T) {
	c := newAPI(t)

	resp := c.do(http.MethodPost, "/api/trips", map[string]any{"description": "Centro"}, nil, apphttp.HeaderIdempotencyKey, "k-2")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = c.do(http.MethodPost, "/api/trips", map[string]any{"description": "Norte"}, nil, apphttp.HeaderIdempotencyKey, "k-2")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var list dto.TripListResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/trips", nil, &list).StatusCode)
	assert.Len(t, list.Items, 1)
}

func TestSalida_SegundoCierreConMismaClaveSeRechaza(t *testing.T) {
	c := newAPI(t)
	c.setPrice("1000")

	var emp dto.EmployeeResponse
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/employees", dto.CreateEmployeeRequest{Name: "Juan"}, &emp).StatusCode)
	var created dto.TripResponse
	resp := c.do(http.MethodPost, "/api/trips", map[string]any{
		"description": "Centro",
		"employees":   []map[string]any{{"employee_id": emp.ID}},
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	closeWith := func(meters int) *http.Response {
		return c.do(http.MethodPost, "/api/trips/"+created.ID+"/close", map[string]any{
			"employees": []map[string]any{{"id": created.Employees[0].ID, "meters_done": meters}},
		}, nil, apphttp.HeaderIdempotencyKey, "cierre-1")
	}
	require.Equal(t, http.StatusOK, closeWith(8).StatusCode)
	resp = closeWith(20)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Idempotent-Replayed"))

	var got dto.TripResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/trips/"+created.ID, nil, &got).StatusCode)
	assert.Equal(t, "8", got.Employees[0].MetersDone.String())
	assert.Equal(t, "8000", got.Employees[0].TotalEarned.String())
}

func TestComprobantes_SubirYListar(t *testing.T) {
	c := newAPI(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("description", "Nafta"))
	require.NoError(t, w.WriteField("amount", "250.50"))
	require.NoError(t, w.WriteField("date", "2026-03-12"))
	part, err := w.CreateFormFile("file", "ticket.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/finance/expenses", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var doc dto.ExpenseDocumentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "jpg", doc.FileType)
	assert.Equal(t, "250.5", doc.Amount.String())
	require.NotNil(t, doc.TransactionID)

	var docs []dto.ExpenseDocumentResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/finance/expenses?year=2026&month=3", nil, &docs).StatusCode)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)

	var sum dto.FinanceSummaryResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/finance/summary?year=2026&month=3", nil, &sum).StatusCode)
	assert.Equal(t, "250.5", sum.ReceiptsCost.String())

	resp = c.do(http.MethodPost, "/api/finance/expenses", map[string]any{"description": "sin archivo"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalendario_SalidasCerradas(t *testing.T) {
	c := newAPI(t)
	c.setPrice("1000")

	var emp dto.EmployeeResponse
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/employees", dto.CreateEmployeeRequest{Name: "Juan"}, &emp).StatusCode)
	var created dto.TripResponse
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/trips", map[string]any{
		"description": "Centro",
		"employees":   []map[string]any{{"employee_id": emp.ID}},
	}, &created).StatusCode)

	var events []dto.CalendarEventDTO
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/calendar/events", nil, &events).StatusCode)
	assert.Empty(t, events, "la salida abierta no aparece")

	resp := c.do(http.MethodPost, "/api/trips/"+created.ID+"/close", map[string]any{
		"employees": []map[string]any{{"id": created.Employees[0].ID, "meters_done": 3}},
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/calendar/events", nil, &events).StatusCode)
	require.Len(t, events, 1)
	assert.Equal(t, created.ID, events[0].ID)
	assert.Equal(t, "3", events[0].ExtendedProps.Meters.String())
	assert.Equal(t, 1, events[0].ExtendedProps.DriverCount)

	resp = c.do(http.MethodGet, "/api/calendar/events?month=13&year=2026", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConfig_ClaveInexistente(t *testing.T) {
	c := newAPI(t)
	var out dto.ConfigResponse
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/config/meter_price", nil, &out).StatusCode)
	assert.Equal(t, "0", out.Value)
}

func TestAsistencia_FechaInvalida(t *testing.T) {
	c := newAPI(t)
	resp := c.do(http.MethodGet, "/api/attendance/16-10-2026", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlanillaSalidas_XLSX(t *testing.T) {
	c := newAPI(t)
	resp := c.do(http.MethodGet, "/api/finance/reports/trips?from=2026-03-01&to=2026-03-31", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Salidas_20260301_20260401.xlsx")
}
