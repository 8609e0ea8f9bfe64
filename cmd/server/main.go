package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"reviewflow/internal/cache"
	"reviewflow/internal/config"
	"reviewflow/internal/data"
	"reviewflow/internal/server/httpapi"
	"reviewflow/internal/service"
	"reviewflow/internal/storage"
	"reviewflow/pkg/db"
	"reviewflow/pkg/kafka"
	"reviewflow/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	logger := logging.New(zapLogger)
	ctx = logging.ContextWithLogger(ctx, logger)

	cfg, err := config.New()
	if err != nil {
		logger.Fatal(ctx, "cannot create config", zap.Error(err))
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "cannot create db", zap.Error(err))
	}
	defer pool.Close()

	assignmentRepo := data.NewAssignmentRepository(pool)
	reviewRepo := data.NewReviewRepository(pool)
	roleRepo := data.NewRoleRepository(pool)

	blobStore, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "cannot create blob store", zap.Error(err))
	}

	redisConn := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	roleCache := cache.NewRoleCache(redisConn, time.Duration(cfg.RoleCacheTTL)*time.Second)

	producer, err := kafka.NewProducer(kafka.Config{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	})
	if err != nil {
		logger.Fatal(ctx, "cannot create kafka producer", zap.Error(err))
	}
	defer producer.Close()

	workflow := service.NewWorkflowService(
		assignmentRepo,
		reviewRepo,
		blobStore,
		producer,
		cfg.RubricCriteria,
		logger,
	)
	roles := service.NewRoleDirectory(roleRepo, roleCache)

	handler := httpapi.NewHandler(workflow)
	router := httpapi.NewRouter(handler, roles, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(ctx, "Starting HTTP server...", zap.Int("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "failed to serve", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "shutdown error", zap.Error(err))
	}
	logger.Info(shutdownCtx, "Server stopped")
}
