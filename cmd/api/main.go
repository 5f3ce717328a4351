// @title        Restaurant Analytics API
// @version      1.0
// @description  Ledger de inventario y análisis de compras, entregas a cocina y ventas de un restaurante.
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
// @description  Token JWT con prefijo "Bearer "
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

	_ "github.com/jhoicas/restaurant-analytics/docs"
	"github.com/jhoicas/restaurant-analytics/internal/application/analytics"
	"github.com/jhoicas/restaurant-analytics/internal/application/auth"
	"github.com/jhoicas/restaurant-analytics/internal/application/inventory"
	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
	"github.com/jhoicas/restaurant-analytics/internal/bootstrap"
	"github.com/jhoicas/restaurant-analytics/internal/domain/analysis"
	inframetrics "github.com/jhoicas/restaurant-analytics/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/restaurant-analytics/internal/infrastructure/pdf"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/tabular"
	httpRouter "github.com/jhoicas/restaurant-analytics/internal/interfaces/http"
	"github.com/jhoicas/restaurant-analytics/pkg/config"
	"github.com/jhoicas/restaurant-analytics/pkg/logger"
)

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
		Str("backend", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := bootstrap.OpenBackend(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	var metrics ports.Metrics = ports.NopMetrics{}
	var prom *inframetrics.Prometheus
	if cfg.Metrics.Enabled {
		prom = inframetrics.New("restaurant")
		metrics = prom
	}
	notifier := bootstrap.Notifier(cfg.Telegram, log.Component("telegram"))
	publisher, closePublisher := bootstrap.Publisher(cfg.Kafka, log.Component("kafka"))
	defer closePublisher()

	rules := bootstrap.Rules(cfg.Policy)
	ledgerUC := inventory.NewLedgerUseCase(backend.TxRunner, rules, publisher, metrics, log.Component("ledger"))
	queryUC := inventory.NewQueryUseCase(backend.Items, rules, notifier, metrics, log.Component("alerts"))
	importUC := inventory.NewPurchaseImportUseCase(tabular.NewPurchaseSheetReader(), backend.Items, ledgerUC)
	txUC := inventory.NewTransactionUseCase(backend.Transactions, tabular.NewExporter(), cfg.Policy.RetentionDays, log.Component("transactions"))
	categoryUC := inventory.NewCategoryUseCase(backend.Categories, backend.TxRunner)
	reportUC := analytics.NewReportUseCase(
		backend.Datasets,
		analysis.New(bootstrap.Policy(cfg.Policy)),
		tabular.NewParser(),
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		metrics,
		log.Component("analytics"),
	)
	authUC := auth.NewAuthUseCase(backend.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	if err := authUC.EnsureUsers(ctx, bootstrap.SeedUsers(cfg.Auth.SeedUsers)); err != nil {
		log.Fatal().Err(err).Msg("crear usuarios iniciales")
	}
	if _, err := txUC.Prune(ctx); err != nil {
		log.Warn().Err(err).Msg("poda inicial de transacciones")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Restaurant Analytics API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "backend": cfg.Storage.Backend})
	})
	if prom != nil {
		app.Get("/metrics", adaptor.HTTPHandler(prom.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Ledger:       ledgerUC,
		Query:        queryUC,
		Import:       importUC,
		Transactions: txUC,
		Categories:   categoryUC,
		Reports:      reportUC,
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
