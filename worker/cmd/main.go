package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/IBM/rotisserie/worker/internal/capture"
	"github.com/IBM/rotisserie/worker/internal/config"
	"github.com/IBM/rotisserie/worker/internal/db"
	"github.com/IBM/rotisserie/worker/internal/entity"
	"github.com/IBM/rotisserie/worker/internal/feed"
	"github.com/IBM/rotisserie/worker/internal/frame"
	"github.com/IBM/rotisserie/worker/internal/metrics"
	"github.com/IBM/rotisserie/worker/internal/ocrclient"
	"github.com/IBM/rotisserie/worker/internal/resolver"
	"github.com/IBM/rotisserie/worker/internal/worker"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	client := redis.NewClient(&redis.Options{
		Addr:     config.GetEnv(entity.EnvRedis, "localhost:6379"),
		Password: os.Getenv(entity.EnvRedisPassword),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("redis unreachable", zap.Error(err))
	}

	game := config.GetEnv(entity.EnvGame, "pubg")
	profile, ok := entity.ProfileFor(game)
	if !ok {
		logger.Fatal("unknown game", zap.String("game", game))
	}
	if spec := os.Getenv(entity.EnvCrop); spec != "" {
		crop, err := parseCrop(spec)
		if err != nil {
			logger.Fatal("bad crop rectangle", zap.String("crop", spec), zap.Error(err))
		}
		profile.Crop = crop
	}

	mode := worker.Mode(config.GetEnv(entity.EnvMode, string(worker.ModeBatch)))
	m := metrics.New()

	var updates worker.Feed
	if brokers := os.Getenv(entity.EnvKafka); brokers != "" {
		producer, err := feed.Connect(strings.Split(brokers, ","), logger)
		if err != nil {
			logger.Fatal("kafka unreachable", zap.Error(err))
		}
		defer producer.Close()
		updates = producer
	}

	if addr := os.Getenv(entity.EnvMetricsAddr); addr != "" && mode == worker.ModeLoop {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", m.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("metrics listener", zap.Error(err))
			}
		}()
	}

	svc := worker.New(worker.Deps{
		Queue:    db.NewQueue(client, config.GetEnv(entity.EnvReadKey, entity.DefaultReadKey)),
		Ranks:    db.NewRanks(client, config.GetEnv(entity.EnvWriteKey, entity.DefaultWriteKey)),
		Resolver: resolver.New(config.GetEnv(entity.EnvProvider, entity.DefaultProvider), os.Getenv(entity.EnvToken), logger),
		Capturer: capture.New(capture.DefaultTimeout, logger),
		Extract: func(path string, crop entity.CropRect) (worker.Still, error) {
			return frame.FirstFrame(path, crop)
		},
		Recognizer: ocrclient.New(config.GetEnv(entity.EnvOCR, entity.DefaultOCRAddr), profile.ProcessPath),
		Feed:       updates,
		Profile:    profile,
		Mode:       mode,
		WorkDir:    config.GetEnv(entity.EnvWorkDir, os.TempDir()),
		Metrics:    m,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("worker failed", zap.Error(err))
	}
}

// parseCrop reads an "x,y,width,height" override.
func parseCrop(spec string) (entity.CropRect, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return entity.CropRect{}, fmt.Errorf("want x,y,width,height, got %q", spec)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return entity.CropRect{}, err
		}
		vals[i] = n
	}
	return entity.CropRect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}
