package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/IBM/rotisserie/orchestrator/internal/controller"
	"github.com/IBM/rotisserie/orchestrator/internal/db"
	"github.com/IBM/rotisserie/orchestrator/internal/entity"
	"github.com/IBM/rotisserie/orchestrator/internal/orchestrator"
	"github.com/IBM/rotisserie/orchestrator/internal/twitch"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postgresClient, err := db.NewPostgresClient(ctx, os.Getenv(entity.EnvPostgres), logger)
	if err != nil {
		logger.Fatal("postgres unreachable", zap.Error(err))
	}
	defer postgresClient.Close()

	client := redis.NewClient(&redis.Options{
		Addr:     getEnv(entity.EnvRedis, "localhost:6379"),
		Password: os.Getenv(entity.EnvRedisPassword),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis unreachable", zap.Error(err))
	}

	streamsAPI := os.Getenv(entity.EnvStreamsAPI)
	if streamsAPI == "" {
		logger.Fatal("streams API not configured", zap.String("env", entity.EnvStreamsAPI))
	}
	lister := twitch.New(streamsAPI, os.Getenv(entity.EnvClientID))

	workKey := getEnv(entity.EnvReadKey, entity.DefaultReadKey)
	interval := time.Duration(getEnvInt(entity.EnvInterval, entity.DefaultInterval)) * time.Second

	svc := orchestrator.New(
		lister,
		postgresClient,
		client,
		workKey,
		getEnv(entity.EnvGameTitle, entity.DefaultGameTitle),
		getEnvInt(entity.EnvLimit, entity.DefaultLimit),
		interval,
		logger,
	)

	go func() {
		if err := svc.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("scan loop stopped", zap.Error(err))
		}
	}()

	host := os.Getenv(entity.EnvHost)
	port := getEnv(entity.EnvPort, entity.DefaultPort)
	srv := controller.NewServer(host, port, postgresClient, client, workKey, logger)
	logger.Info("orchestrator listening", zap.String("port", port))
	if err := srv.Start(); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}

func getEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}
