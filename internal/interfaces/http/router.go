package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/Cuadrilla-api/internal/application/analytics"
	"github.com/jhoicas/Cuadrilla-api/internal/application/auth"
	"github.com/jhoicas/Cuadrilla-api/internal/application/finance"
	"github.com/jhoicas/Cuadrilla-api/internal/application/inventory"
	"github.com/jhoicas/Cuadrilla-api/internal/application/payroll"
	"github.com/jhoicas/Cuadrilla-api/internal/application/trip"
	"github.com/jhoicas/Cuadrilla-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	TripUC        *trip.UseCase
	PayrollUC     *payroll.UseCase
	StockUC       *inventory.StockUseCase
	Replenishment *inventory.ReplenishmentUseCase
	EmployeeUC    *usecase.EmployeeUseCase
	ConfigUC      *usecase.ConfigUseCase
	VehicleUC     *usecase.VehicleUseCase
	AttendanceUC  *usecase.AttendanceUseCase
	FinanceUC     *finance.UseCase
	DashboardUC   *appanalytics.DashboardUseCase
	JWTSecret     string

	// Opcional: sin store los POST no se deduplican.
	Idempotency    IdempotencyStore
	IdempotencyTTL time.Duration
	Log            zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(auth.RoleAdmin))

	ttl := deps.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	idem := Idempotency(deps.Idempotency, ttl, deps.Log)

	// Salidas de trabajo
	tripHandler := NewTripHandler(deps.TripUC)
	financeHandler := NewFinanceHandler(deps.FinanceUC)
	trips := protected.Group("/trips")
	trips.Post("/", idem, tripHandler.Create)
	trips.Get("/", tripHandler.List)
	trips.Get("/:id", tripHandler.GetByID)
	trips.Put("/:id/progress", tripHandler.UpdateProgress)
	// Sin idempotency: un segundo cierre tiene que responder 409, nunca repetir el primero.
	trips.Post("/:id/close", tripHandler.Close)
	trips.Get("/:id/sheet", financeHandler.TripSheetPDF)
	protected.Get("/calendar/events", tripHandler.Calendar)

	// Empleados, grupos, jornales y adelantos
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.PayrollUC)
	groups := protected.Group("/groups")
	groups.Post("/", employeeHandler.CreateGroup)
	groups.Get("/", employeeHandler.ListGroups)
	groups.Delete("/:id", employeeHandler.DeleteGroup)

	employees := protected.Group("/employees")
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Delete("/:id", employeeHandler.Delete)
	employees.Post("/:id/payroll", idem, employeeHandler.RecordPayroll)
	employees.Post("/:id/advances", idem, employeeHandler.RecordAdvance)
	employees.Get("/:id/history", employeeHandler.History)

	// Stock de materiales
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.Replenishment)
	stock := protected.Group("/stock")
	stock.Post("/", idem, inventoryHandler.Create)
	stock.Get("/", inventoryHandler.List)
	stock.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)
	stock.Post("/:id/use", idem, inventoryHandler.Use)
	stock.Post("/:id/sell", idem, inventoryHandler.Sell)

	// Configuración
	configHandler := NewConfigHandler(deps.ConfigUC)
	protected.Get("/config/:key", configHandler.Get)
	protected.Put("/config", configHandler.Set)

	// Flota
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles := protected.Group("/vehicles")
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Post("/:id/service", vehicleHandler.RegisterService)

	// Asistencia
	attendanceHandler := NewAttendanceHandler(deps.AttendanceUC)
	protected.Post("/attendance", attendanceHandler.Save)
	protected.Get("/attendance/:date", attendanceHandler.Get)

	// Finanzas
	fin := protected.Group("/finance")
	fin.Post("/transactions", idem, financeHandler.CreateTransaction)
	fin.Get("/transactions", financeHandler.ListTransactions)
	fin.Delete("/transactions/:id", financeHandler.DeleteTransaction)
	fin.Post("/categories", financeHandler.CreateCategory)
	fin.Get("/categories", financeHandler.ListCategories)
	fin.Post("/expenses", financeHandler.UploadExpense)
	fin.Get("/expenses", financeHandler.ListExpenses)
	fin.Get("/summary", financeHandler.Summary)
	fin.Get("/reports/accounting", financeHandler.AccountingPDF)
	fin.Get("/reports/monthly", financeHandler.MonthlyPDF)
	fin.Get("/reports/trips", financeHandler.TripsXLSX)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
