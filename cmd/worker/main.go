package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/AhmedDR200/Library-API/internal/app"
	"github.com/AhmedDR200/Library-API/internal/mail"
	"github.com/AhmedDR200/Library-API/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var sender mail.Sender
	if cfg.SESFromEmail == "" {
		logger.Warn("SES_FROM_EMAIL not set, reset emails will be logged instead of sent")
		sender = mail.LogSender{Logger: logger}
	} else {
		sesSender, err := mail.NewSESSender(ctx, cfg.SESRegion, cfg.SESFromEmail)
		if err != nil {
			logger.Error("configure ses sender", slog.Any("error", err))
			os.Exit(1)
		}
		sender = sesSender
	}

	worker := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:  asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:     logger,
		ResetEmail: jobs.NewResetEmailHandler(sender, logger),
	})

	logger.Info("worker starting", slog.String("redis", cfg.RedisAddr))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
