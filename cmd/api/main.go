package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/AhmedDR200/Library-API/internal/app"
	"github.com/AhmedDR200/Library-API/internal/auth"
	"github.com/AhmedDR200/Library-API/internal/authors"
	"github.com/AhmedDR200/Library-API/internal/books"
	"github.com/AhmedDR200/Library-API/internal/observability"
	"github.com/AhmedDR200/Library-API/internal/platform/cache"
	"github.com/AhmedDR200/Library-API/internal/platform/db"
	"github.com/AhmedDR200/Library-API/internal/platform/migrate"
	"github.com/AhmedDR200/Library-API/internal/uploads"
	"github.com/AhmedDR200/Library-API/internal/users"
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

	if err := migrate.Up(ctx, cfg.PGDSN); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, book cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	hasher := auth.NewHasher(0)
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.SessionTTL, cfg.ResetTTL)
	guard := auth.NewMiddleware(tokens, logger)

	authService := auth.NewService(auth.NewRepository(pool), hasher, tokens, jobsClient, cfg.ResetLinkBase, logger)
	usersService := users.NewService(users.NewRepository(pool), hasher)
	authorsService := authors.NewService(authors.NewRepository(pool))
	booksService := books.NewService(books.NewRepository(pool), books.NewCache(redisClient, cfg.BookCacheTTL), logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		AuthHandler:    auth.NewHandler(logger, authService),
		UsersHandler:   users.NewHandler(logger, usersService, guard),
		AuthorsHandler: authors.NewHandler(logger, authorsService, guard),
		BooksHandler:   books.NewHandler(logger, booksService, guard),
		UploadsHandler: uploads.NewHandler(logger, guard, cfg.UploadDir),
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", slog.Any("error", err))
		}
	}()

	logger.Info("server listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server run", slog.Any("error", err))
		os.Exit(1)
	}
}
