// Package orchestrator discovers live broadcasts and feeds the work
// queue. Each scan cycle lists the channels currently broadcasting the
// configured game, pends them for the workers and records the sighting
// in the registry.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/rotisserie/orchestrator/internal/db"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Lister enumerates live broadcasts for a game.
type Lister interface {
	LiveStreams(ctx context.Context, game string, limit int) ([]string, error)
}

// Registry records stream sightings.
type Registry interface {
	RecordSighting(ctx context.Context, name string, when time.Time) error
}

type Service struct {
	lister   Lister
	registry Registry
	redis    *redis.Client
	workKey  string
	game     string
	limit    int
	interval time.Duration
	logger   *zap.Logger
}

func New(lister Lister, registry Registry, client *redis.Client, workKey, game string, limit int, interval time.Duration, logger *zap.Logger) *Service {
	return &Service{
		lister:   lister,
		registry: registry,
		redis:    client,
		workKey:  workKey,
		game:     game,
		limit:    limit,
		interval: interval,
		logger:   logger.Named("orchestrator"),
	}
}

// RunCycle performs one scan and returns the number of live streams
// found. Registry write failures are logged but do not fail the cycle;
// the queue seeding is what the workers depend on.
func (r *Service) RunCycle(ctx context.Context) (int, error) {
	names, err := r.lister.LiveStreams(ctx, r.game, r.limit)
	if err != nil {
		return 0, fmt.Errorf("list streams: %w", err)
	}

	added, err := db.SeedWork(ctx, r.redis, r.workKey, names...)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for _, name := range names {
		if err := r.registry.RecordSighting(ctx, name, now); err != nil {
			r.logger.Warn("record sighting failed", zap.String("stream", name), zap.Error(err))
		}
	}

	r.logger.Info("scan cycle complete",
		zap.Int("live", len(names)),
		zap.Int64("pended", added))
	return len(names), nil
}

// Start scans immediately and then on every interval tick until the
// context is canceled. A failed cycle is logged and retried on the next
// tick.
func (r *Service) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.RunCycle(ctx); err != nil {
			r.logger.Error("scan cycle failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
