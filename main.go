package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"decor-booking/cmd"
	"decor-booking/internal/data/repository"
	"decor-booking/internal/idempotency"
	"decor-booking/internal/payment"
	"decor-booking/internal/wire"
	"decor-booking/internal/worker"
	"decor-booking/pkg/database"
	"decor-booking/pkg/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	_ "time/tzdata"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)
	if config.Booking.BypassSlotCheck {
		logger.Warn("Slot conflict checks are bypassed, double bookings are possible")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	idem, closeIdem := idempotencyStore(ctx, config.Redis, logger)
	defer closeIdem()

	checkout := payment.NewStripeCheckout(config.Stripe, logger)

	app := wire.Wiring(repos, checkout, idem, config, logger)

	sweeper := worker.NewSweeper(app.Service.Booking, config.Booking.SweepSchedule, logger)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start orphan sweeper", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sweeper.Stop(stopCtx)
	}()

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("HTTP server stopped", zap.Error(err))
	}
	logger.Info("Shutdown complete")
}

// idempotencyStore uses Redis when enabled and reachable, otherwise an
// in-process store that only dedupes within this instance.
func idempotencyStore(ctx context.Context, config utils.RedisConfig, logger *zap.Logger) (idempotency.Store, func()) {
	if !config.Enabled {
		logger.Info("Redis disabled, using in-memory idempotency store")
		return idempotency.NewMemoryStore(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable, using in-memory idempotency store",
			zap.String("addr", config.Addr),
			zap.Error(err),
		)
		client.Close()
		return idempotency.NewMemoryStore(), func() {}
	}

	logger.Info("Redis connected", zap.String("addr", config.Addr))
	return idempotency.NewRedisStore(client, logger), func() { client.Close() }
}
