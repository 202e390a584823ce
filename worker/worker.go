package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/alan-mat/careerpath/internal/searchlog"
	"github.com/alan-mat/careerpath/internal/tasks"
)

type WorkerConfig struct {
	Concurrency int
}

func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		Concurrency: 10,
	}
}

// Worker persists queued search logs into a store.
type Worker struct {
	config WorkerConfig

	rdb   *redis.Client
	store searchlog.Store
}

func New(config WorkerConfig, rdb *redis.Client, store searchlog.Store) *Worker {
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConfig().Concurrency
	}
	return &Worker{
		config: config,
		rdb:    rdb,
		store:  store,
	}
}

// Mux routes every task type the worker understands.
func (w *Worker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeSearchLog, tasks.NewSearchLogTaskHandler(w.store))
	return mux
}

// Start processes tasks until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	asynqServer := asynq.NewServerFromRedisClient(
		w.rdb,
		asynq.Config{
			Concurrency: w.config.Concurrency,
		},
	)

	if err := asynqServer.Start(w.Mux()); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}
	slog.Info("Worker started", "concurrency", w.config.Concurrency)

	<-ctx.Done()
	slog.Info("Worker shutting down")
	asynqServer.Shutdown()
	return nil
}
