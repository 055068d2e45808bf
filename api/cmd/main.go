package main

import (
	"context"
	"os"

	"github.com/IBM/rotisserie/api/internal/controller"
	"github.com/IBM/rotisserie/api/internal/entity"
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

	client := redis.NewClient(&redis.Options{
		Addr:     getEnv(entity.EnvRedis, "localhost:6379"),
		Password: os.Getenv(entity.EnvRedisPassword),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("redis unreachable", zap.Error(err))
	}

	host := os.Getenv(entity.EnvHost)
	port := getEnv(entity.EnvPort, entity.DefaultPort)
	rankKey := getEnv(entity.EnvWriteKey, entity.DefaultWriteKey)
	playerURL := getEnv(entity.EnvPlayerURL, entity.DefaultPlayerURL)

	srv := controller.NewServer(host, port, client, rankKey, playerURL, logger)
	logger.Info("api listening", zap.String("port", port))
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
