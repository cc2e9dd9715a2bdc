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
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/logbook-api/internal/application/inventory"
	"github.com/jhoicas/logbook-api/internal/application/logbook"
	infraamqp "github.com/jhoicas/logbook-api/internal/infrastructure/amqp"
	"github.com/jhoicas/logbook-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/logbook-api/internal/infrastructure/pdf"
	"github.com/jhoicas/logbook-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/logbook-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/logbook-api/internal/interfaces/http"
	"github.com/jhoicas/logbook-api/pkg/config"
	"github.com/jhoicas/logbook-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
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

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	publisher, err := infraamqp.NewPublisher(cfg.AMQP, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a RabbitMQ")
	}

	// Redis es opcional: sin él el limitador no actúa.
	var scripter goredis.Scripter
	rdb := infraredis.NewClient(ctx, cfg.Redis, log)
	if rdb != nil {
		scripter = rdb
	}

	m := metrics.New(true)

	logRepo := postgres.NewLogEntryRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	storeUC := logbook.NewStoreUseCase(logRepo, log)
	verifyUC := logbook.NewVerifyUseCase(txRunner, publisher, m, log)
	receiptUC := logbook.NewReceiptUseCase(logRepo, infrapdf.NewReceiptGenerator(cfg.App.Name))
	catalogUC := inventory.NewCatalogUseCase(itemRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpRouter.MetricsMiddleware(m))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Log Book API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name, "db": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db": "up"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		LogBook:   storeUC,
		Verifier:  verifyUC,
		Receipts:  receiptUC,
		Inventory: catalogUC,
		JWTSecret: cfg.JWT.Secret,
		Redis:     scripter,
		RateLimit: cfg.RateLimit,
		Log:       log,
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
	if err := publisher.Close(); err != nil {
		log.Error().Err(err).Msg("cierre de RabbitMQ")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("cierre de Redis")
		}
	}

	log.Info().Msg("aplicación detenida")
}
