package cron

import (
	"context"

	"fairway/config"
	bookingRepo "fairway/database/repository/booking"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeStateAudit = "booking:state_audit"

const auditBatchLimit = 200

// InitStateAuditWorker runs the async worker and its schedule in background.
// The audit flags bookings whose (validation_status, status) pair is outside
// the legal set, typically a booking write that failed after its validation
// write landed. It reports and leaves repair to staff; there is no safe
// automatic recovery for that gap.
func InitStateAuditWorker(repo bookingRepo.BookingRepository, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuditDB,
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
	mux.HandleFunc(TypeStateAudit, handleStateAudit(repo, logger))

	go func() {
		logger.Info("starting state audit worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("state audit worker stopped", zap.Error(err))
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("@every 10m", asynq.NewTask(TypeStateAudit, nil)); err != nil {
		logger.Error("failed to register state audit schedule", zap.Error(err))
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("state audit scheduler stopped", zap.Error(err))
		}
	}()
}

func handleStateAudit(repo bookingRepo.BookingRepository, logger *zap.Logger) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		bookings, err := repo.FindInvalidStatusPairs(auditBatchLimit)
		if err != nil {
			logger.Error("state audit query failed", zap.Error(err))
			return err
		}
		if len(bookings) == 0 {
			logger.Debug("state audit clean")
			return nil
		}

		for _, b := range bookings {
			logger.Warn("booking holds an invalid status pair",
				zap.String("booking_id", b.ID),
				zap.String("validation_status", b.ValidationStatus),
				zap.String("status", b.Status))
		}
		logger.Warn("state audit found inconsistent bookings", zap.Int("count", len(bookings)))
		return nil
	}
}
