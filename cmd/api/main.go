package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/joyeria-pos/internal/application/auth"
	"github.com/jhoicas/joyeria-pos/internal/application/billing"
	"github.com/jhoicas/joyeria-pos/internal/application/cart"
	"github.com/jhoicas/joyeria-pos/internal/application/inventory"
	"github.com/jhoicas/joyeria-pos/internal/application/locator"
	"github.com/jhoicas/joyeria-pos/internal/application/reports"
	"github.com/jhoicas/joyeria-pos/internal/application/storage"
	"github.com/jhoicas/joyeria-pos/internal/application/usecase"
	"github.com/jhoicas/joyeria-pos/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/joyeria-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/joyeria-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/joyeria-pos/internal/infrastructure/ubl"
	httpRouter "github.com/jhoicas/joyeria-pos/internal/interfaces/http"
	"github.com/jhoicas/joyeria-pos/pkg/config"
	"github.com/jhoicas/joyeria-pos/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.RunMigrations(cfg.DB.DSN(), log); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	typeRepo := postgres.NewStorageTypeRepository(pool)
	objectRepo := postgres.NewStorageObjectRepository(pool)
	plRepo := postgres.NewProductLocationRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	storageTxRunner := postgres.NewStorageTxRunner(pool)

	// Motor de movimientos: IN/OUT/ADJUSTMENT/TRANSFER sobre cajas, cada uno
	// dentro de su propia transacción.
	registerMovementUC := inventory.NewRegisterMovementUseCase(
		productRepo, materialRepo, objectRepo, txRunner, log,
	)
	movementHistoryUC := inventory.NewMovementHistoryUseCase(movementRepo)

	locationUC := usecase.NewLocationUseCase(locationRepo, typeRepo)
	storageTypeUC := storage.NewStorageTypeUseCase(locationRepo, typeRepo, objectRepo)
	storageObjectUC := storage.NewStorageObjectUseCase(typeRepo, objectRepo, plRepo, storageTxRunner)
	contentsUC := storage.NewContentsUseCase(
		locationRepo, typeRepo, objectRepo, plRepo,
		productRepo, materialRepo, registerMovementUC,
	)

	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)

	billingCfg := billing.Config{
		Prefix:        cfg.Billing.Prefix,
		VerifyBaseURL: cfg.Billing.VerifyBaseURL,
	}
	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, registerMovementUC,
		customerRepo, productRepo, locationRepo, typeRepo, objectRepo, invoiceRepo,
		billingCfg, log,
	)
	cartUC := cart.NewCartUseCase(cartRepo, productRepo, invoiceUC)

	// PDF: representación imprimible de la factura, con QR de verificación.
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Business)
	invoicePDFUC := billing.NewPDFUseCase(
		invoiceRepo, customerRepo, locationRepo, productRepo, pdfGenerator,
	)
	xmlExporter := ubl.NewInvoiceExporter(cfg.Business)
	invoiceXMLUC := billing.NewXMLUseCase(
		invoiceRepo, customerRepo, locationRepo, invoicePDFUC, xmlExporter,
	)

	userUC := usecase.NewUserUseCase(userRepo)
	locatorUC := locator.NewStoreLocatorUseCase(locationRepo)
	reportsUC := reports.NewReportsUseCase(reportRepo, excel.NewStockReportBuilder())
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Joyería POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		LocationUC:       locationUC,
		StorageTypeUC:    storageTypeUC,
		StorageObjectUC:  storageObjectUC,
		ContentsUC:       contentsUC,
		ProductUC:        productUC,
		CategoryUC:       categoryUC,
		MaterialUC:       materialUC,
		RegisterMovement: registerMovementUC,
		MovementHistory:  movementHistoryUC,
		CartUC:           cartUC,
		CustomerUC:       customerUC,
		InvoiceUC:        invoiceUC,
		PDFUC:            invoicePDFUC,
		XMLUC:            invoiceXMLUC,
		UserUC:           userUC,
		LocatorUC:        locatorUC,
		ReportsUC:        reportsUC,
		JWTSecret:        cfg.JWT.Secret,
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
