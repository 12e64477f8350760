// @title           Nova Salud API
// @version         1.0
// @description     API de la botica Nova Salud: clientes, productos, ventas con control de stock y panel diario.
// @BasePath        /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Escriba "Bearer" seguido de un espacio y el token JWT.
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

	_ "github.com/novasalud/clinic-api/docs"
	appanalytics "github.com/novasalud/clinic-api/internal/application/analytics"
	"github.com/novasalud/clinic-api/internal/application/auth"
	"github.com/novasalud/clinic-api/internal/application/sales"
	"github.com/novasalud/clinic-api/internal/application/usecase"
	infrapdf "github.com/novasalud/clinic-api/internal/infrastructure/pdf"
	"github.com/novasalud/clinic-api/internal/infrastructure/postgres"
	httpRouter "github.com/novasalud/clinic-api/internal/interfaces/http"
	"github.com/novasalud/clinic-api/pkg/config"
	"github.com/novasalud/clinic-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
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

	if cfg.DB.RunMigrations {
		applied, err := postgres.Migrate(ctx, pool, log.Named("migrate").Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Int("applied", applied).Msg("migraciones al día")
	}

	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	salesSvc := sales.NewService(txRunner, saleRepo, clientRepo, userRepo, productRepo, log.Zerolog()).
		WithReceipts(infrapdf.NewReceiptGenerator(cfg.App.Name))

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Zerolog())
	clientUC := usecase.NewClientUseCase(clientRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, cfg.Inventory.LowStockThreshold)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Zerolog()),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http").Zerolog()))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Nova Salud API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ClientUC:    clientUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		UserUC:      userUC,
		DashboardUC: dashboardUC,
		Sales:       salesSvc,
		JWTSecret:   cfg.JWT.Secret,
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
