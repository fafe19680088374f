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

	_ "github.com/jhoicas/Swasthya-api/docs"
	"github.com/jhoicas/Swasthya-api/internal/application/auth"
	"github.com/jhoicas/Swasthya-api/internal/application/clinic"
	"github.com/jhoicas/Swasthya-api/internal/application/documents"
	"github.com/jhoicas/Swasthya-api/internal/application/reports"
	"github.com/jhoicas/Swasthya-api/internal/application/usecase"
	"github.com/jhoicas/Swasthya-api/internal/infrastructure/mongodb"
	infrapdf "github.com/jhoicas/Swasthya-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Swasthya-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Swasthya-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/Swasthya-api/internal/infrastructure/sms"
	"github.com/jhoicas/Swasthya-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Swasthya-api/internal/interfaces/http"
	"github.com/jhoicas/Swasthya-api/pkg/config"
	"github.com/jhoicas/Swasthya-api/pkg/logger"
)

// @title                       Swasthya API
// @version                     1.0
// @description                 Back-office de la sección de salud: formularios de almacén, Jinshi Khata y clínica antirrábica.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("office", cfg.Office.Name).
		Str("fiscal_year", cfg.Office.FiscalYear).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registry := documents.NewRegistry(docRepo, txRunner, cfg.Office.FiscalYear, log)
	reportsUC := reports.NewUseCase(docRepo, itemRepo, infrapdf.NewMarotoPDFGenerator(), xlsx.NewExporter(),
		cfg.Office.Name, cfg.Office.FiscalYear)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	storeUC := usecase.NewStoreUseCase(storeRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, storeRepo, movementRepo, cfg.Office.FiscalYear)

	// Clínica antirrábica: solo si hay MongoDB configurado
	var clinicUC *clinic.UseCase
	if cfg.Mongo.Enabled() {
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		mongoClient, err := mongodb.Connect(connectCtx, cfg.Mongo.URI, cfg.Mongo.DBName)
		if err != nil {
			cancel()
			log.Fatal().Err(err).Msg("conexión a MongoDB")
		}
		rabiesRepo, err := mongodb.NewRabiesRepo(connectCtx, mongoClient)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("repositorio de la clínica")
		}
		defer func() { _ = mongoClient.Close(context.Background()) }()
		clinicUC = clinic.NewUseCase(rabiesRepo, sms.NewClient(cfg.SMS, log), cfg.Office.Name, cfg.Office.FiscalYear, log)
	} else {
		log.Warn().Msg("MONGO_URI vacío: clínica antirrábica deshabilitada")
	}

	var reminders scheduler.Reminders
	if clinicUC != nil {
		reminders = clinicUC
	}
	sched := scheduler.New(cfg.Scheduler, reminders, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("tareas programadas")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Swasthya API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": cfg.App.Name,
			"modules": fiber.Map{"rabies": clinicUC != nil},
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		StoreUC:      storeUC,
		ItemUC:       itemUC,
		CalculatorUC: usecase.NewCalculatorUseCase(),
		Documents:    registry,
		Reports:      reportsUC,
		Clinic:       clinicUC,
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

	sched.Stop()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
