// Worker process for deferred jobs: the cancellation backstop that makes
// sure no test reservation outlives its run.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"utrippin_backend/internal/events"
	"utrippin_backend/internal/hotels"
	"utrippin_backend/internal/hotels/service"
	"utrippin_backend/internal/ratehawk"
	"utrippin_backend/internal/scheduler"
	"utrippin_backend/platform/config"
	"utrippin_backend/platform/db"
	"utrippin_backend/platform/logger"
	"utrippin_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	provider := ratehawk.New(cfg, log)

	hotelsModule := hotels.NewModule(hotels.Deps{
		Provider:    provider,
		Pool:        pool,
		Bus:         eventBus,
		FailureMode: service.ParseFailureMode(cfg.GetProviderFailureMode()),
	}, validator.New(), log)

	worker, err := scheduler.NewWorker(cfg, hotelsModule.Service, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	log.Info("worker listening")
	worker.Run(ctx)
	log.Info("worker stopped")
}
