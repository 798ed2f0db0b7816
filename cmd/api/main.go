package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Activos-api/internal/application/auth"
	"github.com/jhoicas/Activos-api/internal/application/usecase"
	"github.com/jhoicas/Activos-api/internal/application/workflow"
	infrapdf "github.com/jhoicas/Activos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Activos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Activos-api/internal/interfaces/http"
	"github.com/jhoicas/Activos-api/pkg/config"
	"github.com/jhoicas/Activos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	certRepo := postgres.NewCertificateRepository(pool)
	itemRepo := postgres.NewInspectionItemRepository(pool)
	catalogRepo := postgres.NewItemRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	deptRepo := postgres.NewDepartmentRepository(pool)
	locRepo := postgres.NewLocationRepository(pool)
	stockRepo := postgres.NewStockEntryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor del flujo de aprobación y reconciliación contra el catálogo
	engine := workflow.NewEngine(txRunner, certRepo, itemRepo, deptRepo)
	reconciler := workflow.NewReconciler(txRunner, certRepo, itemRepo, categoryRepo, locRepo)

	// PDF: hoja imprimible del certificado aprobado
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := workflow.NewPDFUseCase(certRepo, itemRepo, deptRepo, stockRepo, pdfGenerator)

	catalogUC := usecase.NewCatalogUseCase(catalogRepo, categoryRepo, locRepo)
	departmentUC := usecase.NewDepartmentUseCase(deptRepo, locRepo)
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo)
	stockEntryUC := usecase.NewStockEntryUseCase(stockRepo)
	authUC := auth.NewAuthUseCase(userRepo, deptRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Activos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:       engine,
		Reconciler:   reconciler,
		PDFUC:        pdfUC,
		CatalogUC:    catalogUC,
		DepartmentUC: departmentUC,
		DashboardUC:  dashboardUC,
		StockEntryUC: stockEntryUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
