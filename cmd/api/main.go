package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lot-pos/lot-api/internal/application/alerts"
	"github.com/lot-pos/lot-api/internal/application/auth"
	appevents "github.com/lot-pos/lot-api/internal/application/events"
	"github.com/lot-pos/lot-api/internal/application/reports"
	"github.com/lot-pos/lot-api/internal/application/sales"
	"github.com/lot-pos/lot-api/internal/application/usecase"
	"github.com/lot-pos/lot-api/internal/infrastructure/cache"
	infraevents "github.com/lot-pos/lot-api/internal/infrastructure/events"
	infrapdf "github.com/lot-pos/lot-api/internal/infrastructure/pdf"
	"github.com/lot-pos/lot-api/internal/infrastructure/postgres"
	httpRouter "github.com/lot-pos/lot-api/internal/interfaces/http"
	"github.com/lot-pos/lot-api/pkg/config"
	"github.com/lot-pos/lot-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	tagRepo := postgres.NewTagRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	comboRepo := postgres.NewComboRepository(pool)
	invByProductRepo := postgres.NewInventoryByProductRepository(pool)
	invByBatchRepo := postgres.NewInventoryByBatchRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	categoryReportRepo := postgres.NewCategoryReportRepository(pool)
	averageReportRepo := postgres.NewStockAverageReportRepository(pool)
	alertRepo := postgres.NewStockAlertRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de stock: Redis si está configurado, si no implementación nula.
	var stockCache sales.StockCache = sales.NopStockCache{}
	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewStockCache(cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		stockCache = redisCache
	}

	// Servicios de aplicación
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	reportSvc := reports.NewService(
		categoryRepo, invByProductRepo, categoryReportRepo, averageReportRepo,
		pdfGenerator, log,
	)

	// Bus de eventos: los reportes se regeneran tras cada venta; si Kafka está
	// configurado, el evento también se publica fuera del proceso.
	bus := appevents.NewBus(log, 0)
	bus.Subscribe(reports.NewSaleReportConsumer(reportSvc, log))
	if cfg.Kafka.Enabled() {
		kafkaPublisher := infraevents.NewKafkaPublisher(cfg.Kafka, log)
		defer kafkaPublisher.Close()
		bus.Subscribe(kafkaPublisher)
	}
	bus.Start()
	defer bus.Close()

	saleSvc := sales.NewService(
		txRunner, saleRepo, invByProductRepo, productRepo, comboRepo,
		bus, stockCache, log,
	)
	alertSvc := alerts.NewService(alertRepo)
	authSvc := auth.NewService(userRepo, log, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, unitRepo, tagRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	unitUC := usecase.NewUnitUseCase(unitRepo)
	tagUC := usecase.NewTagUseCase(tagRepo)
	branchUC := usecase.NewBranchUseCase(branchRepo)
	comboUC := usecase.NewComboUseCase(comboRepo, productRepo)
	inventoryUC := usecase.NewInventoryUseCase(invByProductRepo, invByBatchRepo, productRepo, stockCache)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthSvc:     authSvc,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		UnitUC:      unitUC,
		TagUC:       tagUC,
		BranchUC:    branchUC,
		ComboUC:     comboUC,
		InventoryUC: inventoryUC,
		SaleSvc:     saleSvc,
		ReportSvc:   reportSvc,
		AlertSvc:    alertSvc,
		JWTSecret:   cfg.JWT.Secret,
		SwaggerPath: "./docs/swagger.json",
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
