// Package db reads the leaderboard out of the shared Rank Store.
package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Ranked is one leaderboard entry in store terms.
type Ranked struct {
	Stream string
	Alive  int
}

// Leaderboard returns up to limit entries ordered ascending by alive
// count, fewest remaining players first. limit <= 0 returns everything.
func Leaderboard(ctx context.Context, client *redis.Client, key string, limit int64) ([]Ranked, error) {
	stop := limit - 1
	if limit <= 0 {
		stop = -1
	}

	rows, err := client.ZRangeWithScores(ctx, key, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	entries := make([]Ranked, 0, len(rows))
	for _, row := range rows {
		stream, ok := row.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, Ranked{Stream: stream, Alive: int(row.Score)})
	}
	return entries, nil
}
