package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	goredis "github.com/redis/go-redis/v9"
	"github.com/tu-usuario/inventory-core/internal/application/inventory"
	infracache "github.com/tu-usuario/inventory-core/internal/infrastructure/cache"
	"github.com/tu-usuario/inventory-core/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/inventory-core/internal/interfaces/http"
	"github.com/tu-usuario/inventory-core/pkg/config"
	"github.com/tu-usuario/inventory-core/pkg/logger"
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

	// Repositorios atados al pool (lecturas fuera de transacción).
	stockRepo := postgres.NewStockLevelRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	resRepo := postgres.NewReservationRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	suggRepo := postgres.NewReorderSuggestionRepository(pool)
	catalog := postgres.NewProductCatalog(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de snapshots: Redis si está configurado, memoria si no.
	var snapCache inventory.SnapshotCache
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		snapCache = infracache.NewRedisCache(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de snapshots sobre Redis")
	} else {
		snapCache = infracache.NewMemoryCache()
		log.Info().Msg("cache de snapshots en memoria")
	}

	clock := inventory.SystemClock{}
	mutator := inventory.NewApplyMovementUseCase(txRunner, catalog, clock, cfg.Inventory.LockTimeout, log)
	snapshotUC := inventory.NewSnapshotUseCase(stockRepo, snapCache)
	alertEngine := inventory.NewAlertEngine(alertRepo, suggRepo, catalog, clock, log, cfg.Inventory.DefaultReorderPoint)
	mutator.SetSideEffects(snapshotUC, alertEngine)

	transferUC := inventory.NewTransferUseCase(mutator, log)
	reservationUC := inventory.NewReservationUseCase(mutator, resRepo, clock, log)

	// Barrido periódico de reservas vencidas. La cadencia es un detalle de
	// despliegue; la operación en sí es idempotente y re-ejecutable.
	expiryCtx, stopExpiry := context.WithCancel(ctx)
	defer stopExpiry()
	go runExpiryLoop(expiryCtx, reservationUC, clock, cfg.Inventory.ExpiryInterval, log)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Mutator:     mutator,
		Transfer:    transferUC,
		Reservation: reservationUC,
		Snapshot:    snapshotUC,
		Alerts:      alertEngine,
		MovRepo:     movRepo,
		StockRepo:   stockRepo,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("API de inventario escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando aplicación")
	stopExpiry()
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("shutdown HTTP")
	}
}
