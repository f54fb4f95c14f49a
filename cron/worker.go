package cron

import (
	"context"
	"fmt"
	"log"

	"stayloft/config"
	"stayloft/services/reservation"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeHoldsSweep is the scheduled task that evicts expired holds.
const TypeHoldsSweep = "holds:sweep"

// InitHoldReaper starts the background hold reaper: a scheduled task
// enqueued on the configured interval plus a worker that runs the
// expiry sweep. The returned stop function shuts both down; holds
// whose TTL has passed may overstay by at most one sweep interval.
func InitHoldReaper(engine *reservation.Engine, logger *zap.Logger) (stop func()) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeHoldsSweep, func(ctx context.Context, task *asynq.Task) error {
		if evicted := engine.SweepExpiredHolds(); evicted > 0 {
			logger.Info("hold reaper evicted expired holds", zap.Int("count", evicted))
		}
		return nil
	})

	interval := config.AppConfig.HoldSweepSeconds
	if interval <= 0 {
		interval = 60
	}
	scheduler := asynq.NewScheduler(redisOpts, nil)
	spec := fmt.Sprintf("@every %ds", interval)
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeHoldsSweep, nil)); err != nil {
		log.Fatalf("failed to register hold sweep task: %v", err)
	}

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatalf("hold reaper worker failed: %v", err)
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("hold reaper scheduler failed: %v", err)
		}
	}()

	return func() {
		scheduler.Shutdown()
		srv.Shutdown()
	}
}
