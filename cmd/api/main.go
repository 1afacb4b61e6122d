package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Cuadrilla-api/docs"
	appanalytics "github.com/jhoicas/Cuadrilla-api/internal/application/analytics"
	"github.com/jhoicas/Cuadrilla-api/internal/application/auth"
	"github.com/jhoicas/Cuadrilla-api/internal/application/finance"
	"github.com/jhoicas/Cuadrilla-api/internal/application/inventory"
	"github.com/jhoicas/Cuadrilla-api/internal/application/payroll"
	"github.com/jhoicas/Cuadrilla-api/internal/application/trip"
	"github.com/jhoicas/Cuadrilla-api/internal/application/usecase"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/excel"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Cuadrilla-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Cuadrilla-api/internal/infrastructure/redis"
	"github.com/jhoicas/Cuadrilla-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Cuadrilla-api/internal/interfaces/http"
	"github.com/jhoicas/Cuadrilla-api/pkg/config"
	"github.com/jhoicas/Cuadrilla-api/pkg/logger"
)

// txStore repositorios sin transacción + ejecutor de transacciones.
type txStore interface {
	Run(ctx context.Context, fn func(repos repository.Store) error) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos repository.Store
		tx    txStore
	)
	switch cfg.App.Store {
	case config.StoreMemory:
		mem := memory.New()
		repos, tx = mem.Repos(), mem
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		repos, tx = postgres.NewStore(pool), postgres.NewTxRunner(pool)
	}

	// Redis opcional: lock de cierre de salidas y cache de idempotencia.
	var (
		locker      trip.Locker = trip.NopLocker{}
		idempotency httpRouter.IdempotencyStore
	)
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		locker = infraredis.NewLockStore(client)
		idempotency = infraredis.NewIdempotencyStore(client)
	}

	tripUC := trip.NewUseCase(repos, tx, locker, cfg.Trips.CloseLockTTL, log.Component("trips"))
	payrollUC := payroll.NewUseCase(repos, tx, log.Component("payroll"))
	stockUC := inventory.NewStockUseCase(repos, tx)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos, cfg.Trips.LeadTimeDays)
	financeUC := finance.NewUseCase(repos, tx, infrapdf.NewMarotoReportGenerator(cfg.App.Name),
		excel.NewExporter(), storage.NewLocal(cfg.Storage.Dir))
	dashboardUC := appanalytics.NewDashboardUseCase(repos.Transactions, repos.Trips)
	authUC := auth.NewAuthUseCase(
		auth.Operator{Email: cfg.Admin.Email, PasswordHash: cfg.Admin.PasswordHash},
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	)

	if err := financeUC.SeedCategories(ctx); err != nil {
		log.Fatal().Err(err).Msg("categorías por defecto")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.AllowedOrigins}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Cuadrilla API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		TripUC:        tripUC,
		PayrollUC:     payrollUC,
		StockUC:       stockUC,
		Replenishment: replenishmentUC,
		EmployeeUC:    usecase.NewEmployeeUseCase(repos.Employees, repos.Groups),
		ConfigUC:      usecase.NewConfigUseCase(repos.Config),
		VehicleUC:     usecase.NewVehicleUseCase(repos.Vehicles),
		AttendanceUC:  usecase.NewAttendanceUseCase(repos.Attendance, repos.Employees),
		FinanceUC:     financeUC,
		DashboardUC:   dashboardUC,
		JWTSecret:     cfg.JWT.Secret,
		Idempotency:   idempotency,
		Log:           log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
