// Package main runs the background email worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alaqsa-transport/backend/config"
	"github.com/alaqsa-transport/backend/internal/bookings"
	"github.com/alaqsa-transport/backend/internal/contact"
	"github.com/alaqsa-transport/backend/internal/emaillogs"
	"github.com/alaqsa-transport/backend/internal/mailer"
	"github.com/alaqsa-transport/backend/internal/routes"
	"github.com/alaqsa-transport/backend/internal/vehicles"
	"github.com/alaqsa-transport/backend/internal/worker"
	"github.com/alaqsa-transport/backend/pkg/database"
	"github.com/alaqsa-transport/backend/pkg/queue"
	"github.com/alaqsa-transport/backend/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	mail := mailer.NewMailer(cfg.Email.APIKey, cfg.Email.FromAddress, cfg.Email.FromName, logger)
	jobQueue := queue.NewQueue(rdb.Client, logger)
	processor := worker.NewEmailProcessor(
		bookings.NewRepository(pool),
		routes.NewRepository(pool),
		vehicles.NewRepository(pool),
		contact.NewRepository(pool),
		emaillogs.NewRepository(pool),
		mail,
		jobQueue,
		logger,
	)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Run(workerCtx)
	logger.Info("email worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	time.Sleep(2 * time.Second)
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
