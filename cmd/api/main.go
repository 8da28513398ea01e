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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/stock-control/internal/application/analytics"
	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/application/inventory"
	"github.com/jhoicas/stock-control/internal/application/usecase"
	infraexport "github.com/jhoicas/stock-control/internal/infrastructure/export"
	infranotify "github.com/jhoicas/stock-control/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/stock-control/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-control/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-control/internal/infrastructure/security"
	httpRouter "github.com/jhoicas/stock-control/internal/interfaces/http"
	"github.com/jhoicas/stock-control/pkg/config"
	"github.com/jhoicas/stock-control/pkg/logger"
	"github.com/jhoicas/stock-control/pkg/money"
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

	if err := postgres.Migrate(postgres.StdDB(pool)); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	hasher := security.NewBcryptHasher(0)

	userUC := usecase.NewUserUseCase(userRepo, hasher)
	created, err := userUC.EnsureAdmin(ctx, usecase.SeedAdmin{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	if created {
		log.Warn().Str("email", cfg.Seed.AdminEmail).Msg("administrador inicial creado o reactivado; cambie la contraseña")
	}

	notifier := infranotify.NewLogNotifier(log.Component("notify"))
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, notifier)
	historyUC := inventory.NewHistoryUseCase(movementRepo, cfg.Inventory.MovementsLimit)
	lowStockUC := inventory.NewLowStockUseCase(productRepo)
	productUC := usecase.NewProductUseCase(productRepo, cfg.Inventory.DefaultMinQuantity)

	// PDF y XML del reporte de inventario
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name, money.NewFormatter(cfg.App.CurrencyLocale))
	reportUC := appanalytics.NewReportUseCase(productRepo, movementRepo, pdfGenerator, infraexport.NewXMLExporter())

	authUC := auth.NewAuthUseCase(userRepo, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Control API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        productUC,
		UserUC:           userUC,
		RegisterMovement: registerMovementUC,
		History:          historyUC,
		LowStock:         lowStockUC,
		ReportUC:         reportUC,
		Cookie: httpRouter.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
			TTL:    time.Duration(cfg.JWT.Expiration) * time.Minute,
		},
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
